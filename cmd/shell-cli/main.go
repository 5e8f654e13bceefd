package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"study-shell/internal/bankfetch"
	"study-shell/internal/cli"
	"study-shell/internal/config"
	"study-shell/internal/logger"
	"study-shell/internal/quiz"
	"study-shell/internal/sessionstore"
	"study-shell/internal/userclient"
)

func main() {
	page := flag.String("page", "", "page location, e.g. content/pages/p1.html or /pages/p1.html (required)")
	bank := flag.String("bank", "", "question bank file or URL (default: derived from --page)")
	server := flag.String("server", "", "shell-server base URL; when set the quiz runs remotely")
	session := flag.String("session", "cli", "session id for the reload flag in local mode")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP timeout")
	flag.Parse()

	if strings.TrimSpace(*page) == "" {
		fmt.Fprintln(os.Stderr, "error: --page is required")
		os.Exit(1)
	}

	if err := run(*page, *bank, *server, *session, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(page, bank, server, sessionID string, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	locator := quiz.PageLocator{
		Marker:   cfg.Content.Marker,
		Suffix:   cfg.Content.Suffix,
		BankFile: cfg.Content.BankFile,
	}
	httpClient := &http.Client{Timeout: timeout}

	if server != "" {
		client, err := userclient.NewClient(server, httpClient, locator)
		if err != nil {
			return err
		}
		if err := client.LoadPage(ctx, page); err != nil {
			return userclient.DescribeError(err, server)
		}
		return cli.Run(ctx, os.Stdin, os.Stdout, client)
	}

	sessions, err := sessionstore.Open(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer sessions.Close()

	if bank == "" {
		bank = locator.BankLocation(page)
	}

	engine := quiz.LoadPage(ctx, page, quiz.PageSetup{
		Locator: locator,
		Source:  bankSource(bank, httpClient, log),
		Session: sessionstore.NewFlag(ctx, sessions, sessionID, quiz.OpenFlagName, log),
		Log:     log,
	})
	return cli.Run(ctx, os.Stdin, os.Stdout, cli.NewLocalController(engine))
}

func bankSource(location string, httpClient *http.Client, log *logger.Logger) quiz.Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return bankfetch.NewClient(httpClient, log).Source(location)
	}
	return bankfetch.FileSource{
		FS:   os.DirFS(filepath.Dir(location)),
		Name: filepath.Base(location),
		Log:  log,
	}
}
