package bankfetch

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"study-shell/internal/logger"
	"study-shell/internal/quiz"
)

// Client downloads question banks over HTTP. Non-2xx responses and undecodable payloads
// are errors; nothing is retried.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{httpClient: httpClient, log: log}
}

func (c *Client) FetchBank(ctx context.Context, bankURL string) (*quiz.Bank, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bankURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("question bank %s returned status %d", bankURL, resp.StatusCode)
	}

	bank, issues, err := quiz.DecodeBank(resp.Body)
	if err != nil {
		return nil, err
	}
	logIssues(c.log, bankURL, issues)
	return bank, nil
}

// Source binds the client to one bank URL.
func (c *Client) Source(bankURL string) quiz.Source {
	return quiz.SourceFunc(func(ctx context.Context) (*quiz.Bank, error) {
		return c.FetchBank(ctx, bankURL)
	})
}

// FileSource reads the bank from a file of fsys on every fetch.
type FileSource struct {
	FS   fs.FS
	Name string
	Log  *logger.Logger
}

func (s FileSource) FetchBank(_ context.Context) (*quiz.Bank, error) {
	f, err := s.FS.Open(s.Name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bank, issues, err := quiz.DecodeBank(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	logIssues(s.Log, s.Name, issues)
	return bank, nil
}

func logIssues(log *logger.Logger, origin string, issues []quiz.Issue) {
	if log == nil {
		return
	}
	for _, issue := range issues {
		log.Warn("question bank record skipped", "origin", origin, "issue", issue.String())
	}
}
