package httpapi

import (
	"errors"
	"testing"
	"time"

	"study-shell/internal/quiz"
)

func TestRegistryWithAndReplace(t *testing.T) {
	registry := NewRegistry(time.Hour)
	set := quiz.PageQuestionSet{{ID: 1, Text: "Q", Options: []string{"a", "b"}}}

	first := quiz.NewEngine("p1.html", set, nil, nil)
	registry.Put("s1", first)

	var got *quiz.Engine
	if err := registry.With("s1", "p1.html", func(engine *quiz.Engine) error {
		got = engine
		return nil
	}); err != nil {
		t.Fatalf("With returned error: %v", err)
	}
	if got != first {
		t.Fatalf("With returned a different engine")
	}

	second := quiz.NewEngine("p1.html", set, nil, nil)
	registry.Put("s1", second)
	_ = registry.With("s1", "p1.html", func(engine *quiz.Engine) error {
		got = engine
		return nil
	})
	if got != second || registry.Len() != 1 {
		t.Fatalf("page reload must replace the engine")
	}

	if err := registry.With("s2", "p1.html", func(*quiz.Engine) error { return nil }); !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("other session error = %v, want ErrEngineNotFound", err)
	}

	wantErr := errors.New("boom")
	if err := registry.With("s1", "p1.html", func(*quiz.Engine) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("With error = %v, want %v", err, wantErr)
	}
}

func TestRegistryPrunesIdleEngines(t *testing.T) {
	registry := NewRegistry(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }
	set := quiz.PageQuestionSet{{ID: 1, Text: "Q", Options: []string{"a", "b"}}}

	registry.Put("s1", quiz.NewEngine("p1.html", set, nil, nil))
	now = now.Add(2 * time.Minute)
	registry.Put("s2", quiz.NewEngine("p1.html", set, nil, nil))

	if registry.Len() != 1 {
		t.Fatalf("Len = %d, want 1", registry.Len())
	}
	if err := registry.With("s1", "p1.html", func(*quiz.Engine) error { return nil }); !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("idle engine still present: %v", err)
	}
}
