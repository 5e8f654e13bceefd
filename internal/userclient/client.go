package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"study-shell/internal/quiz"
)

const (
	defaultServer  = "http://127.0.0.1:8080"
	defaultAPIBase = "/api/quiz"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client drives the quiz of one page on a remote HTTP shell. The session cookie issued by
// the page load is kept in the client's cookie jar.
type Client struct {
	baseURL    string
	apiBase    string
	httpClient *http.Client
	locator    quiz.PageLocator
	pageKey    string
}

type pageRequest struct {
	Page string `json:"page"`
}

type answerRequest struct {
	Page       string `json:"page"`
	QuestionID int    `json:"question_id"`
	Option     int    `json:"option"`
}

type quizResponse struct {
	Page        string       `json:"page"`
	View        quiz.View    `json:"view"`
	OverlayHTML string       `json:"overlay_html"`
	Result      *quiz.Result `json:"result,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewClient(baseURL string, httpClient *http.Client, locator quiz.PageLocator) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		copied := *httpClient
		copied.Jar = jar
		httpClient = &copied
	}

	return &Client{
		baseURL:    baseURL,
		apiBase:    defaultAPIBase,
		httpClient: httpClient,
		locator:    locator,
	}, nil
}

// LoadPage fetches a page the way a browser would, which starts a fresh quiz for it on
// the server. location is a path on the server or an absolute URL.
func (c *Client) LoadPage(ctx context.Context, location string) error {
	pageKey, err := c.locator.PageKey(location)
	if err != nil {
		return err
	}

	target := location
	if parsed, err := url.Parse(location); err != nil || parsed.Scheme == "" {
		target = c.baseURL + "/" + strings.TrimLeft(location, "/")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode != http.StatusOK {
		return &APIError{StatusCode: response.StatusCode, Message: "load page: " + response.Status}
	}
	c.pageKey = pageKey
	return nil
}

func (c *Client) PageKey() string { return c.pageKey }

// View returns the page's quiz state. A page without questions has no quiz on the server
// and is reported as an inactive view.
func (c *Client) View(ctx context.Context) (quiz.View, error) {
	var payload quizResponse
	err := c.doJSON(ctx, http.MethodGet, c.apiBase+"/state?"+url.Values{"page": {c.pageKey}}.Encode(), nil, &payload)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return quiz.View{PageKey: c.pageKey}, nil
	}
	if err != nil {
		return quiz.View{}, err
	}
	return payload.View, nil
}

func (c *Client) Open(ctx context.Context) (quiz.View, error) {
	return c.pageAction(ctx, "open")
}

func (c *Client) Close(ctx context.Context) (quiz.View, error) {
	return c.pageAction(ctx, "close")
}

func (c *Client) Reset(ctx context.Context) (quiz.View, error) {
	return c.pageAction(ctx, "reset")
}

func (c *Client) Submit(ctx context.Context, questionID, option int) (quiz.Result, quiz.View, error) {
	var payload quizResponse
	request := answerRequest{Page: c.pageKey, QuestionID: questionID, Option: option}
	if err := c.doJSON(ctx, http.MethodPost, c.apiBase+"/answers", request, &payload); err != nil {
		return quiz.Result{}, quiz.View{}, err
	}
	if payload.Result == nil {
		return quiz.Result{}, quiz.View{}, errors.New("response carries no result")
	}
	return *payload.Result, payload.View, nil
}

func (c *Client) pageAction(ctx context.Context, action string) (quiz.View, error) {
	var payload quizResponse
	if err := c.doJSON(ctx, http.MethodPost, c.apiBase+"/"+action, pageRequest{Page: c.pageKey}, &payload); err != nil {
		return quiz.View{}, err
	}
	return payload.View, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}

// DescribeError turns transport failures into a message naming the server.
func DescribeError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	}
	return err
}
