package quiz

import (
	"context"
	"errors"
	"testing"
)

func TestLoaderFetchesOnce(t *testing.T) {
	calls := 0
	bank := NewBank(map[string]PageQuestionSet{"p1.html": scenarioSet()})
	loader := NewLoader(SourceFunc(func(context.Context) (*Bank, error) {
		calls++
		return bank, nil
	}), nil)

	for i := 0; i < 3; i++ {
		if _, ok := loader.Load(context.Background(), "p1.html"); !ok {
			t.Fatalf("expected questions for p1.html")
		}
	}
	if _, ok := loader.Load(context.Background(), "p2.html"); ok {
		t.Fatalf("expected p2.html to be absent")
	}
	if calls != 1 {
		t.Fatalf("source called %d times, want 1", calls)
	}
}

func TestLoaderFailureLeavesBankEmpty(t *testing.T) {
	calls := 0
	loader := NewLoader(SourceFunc(func(context.Context) (*Bank, error) {
		calls++
		return nil, errors.New("status 404")
	}), nil)

	if _, ok := loader.Load(context.Background(), "p1.html"); ok {
		t.Fatalf("expected absent set after fetch failure")
	}
	if _, ok := loader.Load(context.Background(), "p1.html"); ok {
		t.Fatalf("expected absent set after fetch failure")
	}
	if calls != 1 {
		t.Fatalf("failed fetch retried: %d calls", calls)
	}
	if loader.Bank(context.Background()).Len() != 0 {
		t.Fatalf("expected empty bank")
	}
}

func TestLoaderWithoutSource(t *testing.T) {
	loader := NewLoader(nil, nil)
	if _, ok := loader.Load(context.Background(), "p1.html"); ok {
		t.Fatalf("expected absent set without a source")
	}
}
