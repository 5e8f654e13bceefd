package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"study-shell/internal/banksync"
	"study-shell/internal/config"
	"study-shell/internal/httpapi"
	"study-shell/internal/logger"
	"study-shell/internal/quiz"
	"study-shell/internal/sessionstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
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

	sessions, err := sessionstore.Open(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer sessions.Close()

	bank := banksync.NewCache(filepath.Join(cfg.Content.Dir, cfg.Content.BankFile), log)
	if err := bank.Reload(); err != nil {
		// Pages still load; their quizzes stay inactive until the bank becomes readable.
		log.Warn("question bank not loaded", "error", err)
	}

	handler := httpapi.NewRouter(httpapi.Options{
		Content: os.DirFS(cfg.Content.Dir),
		Locator: quiz.PageLocator{
			Marker:   cfg.Content.Marker,
			Suffix:   cfg.Content.Suffix,
			BankFile: cfg.Content.BankFile,
		},
		Source:      bank,
		Sessions:    sessions,
		Log:         log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		EngineTTL:   cfg.Session.TTL,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("shell-server listening", "addr", cfg.HTTP.Addr, "content_dir", cfg.Content.Dir, "session_driver", cfg.Session.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if cfg.Content.Watch {
		g.Go(func() error {
			return bank.Watch(gctx)
		})
	}

	return g.Wait()
}
