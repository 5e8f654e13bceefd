package banksync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"study-shell/internal/logger"
	"study-shell/internal/quiz"
)

var ErrNotLoaded = errors.New("question bank not loaded")

// Cache holds the last good bank read from a file. Reloads swap the whole bank; readers
// never observe a partially updated one.
type Cache struct {
	path string
	log  *logger.Logger
	bank atomic.Pointer[quiz.Bank]
}

func NewCache(path string, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.NewNop()
	}
	return &Cache{path: path, log: log.With("bank_file", path)}
}

func (c *Cache) Path() string { return c.path }

// Reload reads and decodes the file. On failure the previous bank stays in place.
func (c *Cache) Reload() error {
	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	bank, issues, err := quiz.DecodeBank(f)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		c.log.Warn("question bank record skipped", "issue", issue.String())
	}

	c.bank.Store(bank)
	c.log.Info("question bank loaded", "pages", bank.Len(), "questions", bank.QuestionCount())
	return nil
}

func (c *Cache) Current() *quiz.Bank {
	return c.bank.Load()
}

func (c *Cache) FetchBank(_ context.Context) (*quiz.Bank, error) {
	bank := c.bank.Load()
	if bank == nil {
		return nil, ErrNotLoaded
	}
	return bank, nil
}

// Watch reloads the bank whenever its file is written, created or renamed into place.
// The parent directory is watched because editors often replace files instead of writing
// them in place. Watch blocks until ctx is done.
func (c *Cache) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(c.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(c.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := c.Reload(); err != nil {
				c.log.Error("question bank reload failed, keeping previous bank", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warn("question bank watcher error", "error", err)
		}
	}
}
