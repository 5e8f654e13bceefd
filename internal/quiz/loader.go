package quiz

import (
	"context"
	"errors"

	"study-shell/internal/logger"
)

// Source yields the current question bank.
type Source interface {
	FetchBank(ctx context.Context) (*Bank, error)
}

type SourceFunc func(ctx context.Context) (*Bank, error)

func (f SourceFunc) FetchBank(ctx context.Context) (*Bank, error) {
	return f(ctx)
}

// Loader fetches the bank at most once and answers page lookups from it. A failed fetch
// leaves the bank empty for the Loader's lifetime.
type Loader struct {
	source Source
	log    *logger.Logger
	bank   *Bank
}

func NewLoader(source Source, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{source: source, log: log}
}

func (l *Loader) Load(ctx context.Context, pageKey string) (PageQuestionSet, bool) {
	bank := l.Bank(ctx)
	set, ok := bank.Lookup(pageKey)
	if !ok {
		l.log.Debug("no questions for page", "page_key", pageKey, "bank_pages", bank.Len())
		return nil, false
	}
	return set, true
}

// Bank fetches the bank on first use.
func (l *Loader) Bank(ctx context.Context) *Bank {
	if l.bank != nil {
		return l.bank
	}
	if l.source == nil {
		l.bank = EmptyBank()
		return l.bank
	}

	bank, err := l.source.FetchBank(ctx)
	if err == nil && bank == nil {
		err = errors.New("source returned no bank")
	}
	if err != nil {
		l.log.Error("failed to load question bank", "error", err)
		l.bank = EmptyBank()
		return l.bank
	}

	l.log.Debug("question bank loaded", "pages", bank.Len())
	l.bank = bank
	return l.bank
}
