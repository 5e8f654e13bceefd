package sessionstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"study-shell/internal/config"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewSQLiteStore(path, time.Hour)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-journal")
	})
	return store
}

func storesUnderTest(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"sqlite": newTestSQLiteStore(t),
	}
}

func TestStoreSetTakeClear(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			set, err := store.Take(ctx, "s1", "open")
			if err != nil || set {
				t.Fatalf("Take on empty store = (%v, %v), want (false, nil)", set, err)
			}

			if err := store.Set(ctx, "s1", "open"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			// Setting twice keeps a single flag.
			if err := store.Set(ctx, "s1", "open"); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}

			if set, err := store.Take(ctx, "s2", "open"); err != nil || set {
				t.Fatalf("flag leaked to another session: (%v, %v)", set, err)
			}
			if set, err := store.Take(ctx, "s1", "open"); err != nil || !set {
				t.Fatalf("Take = (%v, %v), want (true, nil)", set, err)
			}
			if set, err := store.Take(ctx, "s1", "open"); err != nil || set {
				t.Fatalf("flag survived Take: (%v, %v)", set, err)
			}

			if err := store.Set(ctx, "s1", "open"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := store.Clear(ctx, "s1", "open"); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if set, err := store.Take(ctx, "s1", "open"); err != nil || set {
				t.Fatalf("flag survived Clear: (%v, %v)", set, err)
			}
		})
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	if err := store.Set(ctx, "s1", "open"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	now = now.Add(2 * time.Minute)

	if set, _ := store.Take(ctx, "s1", "open"); set {
		t.Fatalf("expected expired flag to read as unset")
	}
}

func TestSQLiteStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := newTestSQLiteStore(t)
	store.ttl = time.Minute
	store.now = func() time.Time { return now }

	if err := store.Set(ctx, "s1", "open"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	now = now.Add(2 * time.Minute)

	if set, err := store.Take(ctx, "s1", "open"); err != nil || set {
		t.Fatalf("Take after expiry = (%v, %v), want (false, nil)", set, err)
	}
}

type failingStore struct {
	err error
}

func (f failingStore) Set(context.Context, string, string) error           { return f.err }
func (f failingStore) Take(context.Context, string, string) (bool, error) { return true, f.err }
func (f failingStore) Clear(context.Context, string, string) error         { return f.err }
func (f failingStore) Close() error                                        { return nil }

func TestFlagTreatsBackendErrorsAsUnset(t *testing.T) {
	flag := NewFlag(context.Background(), failingStore{err: errors.New("backend down")}, "s1", "open", nil)

	flag.MarkOpenAcrossReload()
	flag.ClearOpenFlag()
	if flag.ConsumeOpenFlagIfSet() {
		t.Fatalf("expected backend failure to read as unset")
	}
}

func TestFlagRoundTripThroughStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	flag := NewFlag(context.Background(), store, "s1", "open", nil)

	flag.MarkOpenAcrossReload()
	if !flag.ConsumeOpenFlagIfSet() {
		t.Fatalf("expected flag to be set")
	}
	if flag.ConsumeOpenFlagIfSet() {
		t.Fatalf("expected flag to be consumed")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Session{Driver: "etcd"})
	if !errors.Is(err, config.ErrInvalidSessionDriver) {
		t.Fatalf("expected ErrInvalidSessionDriver, got %v", err)
	}
}

func TestNewRedisStoreRequiresReachableServer(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "", time.Minute); err == nil {
		t.Fatalf("expected error for empty address")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisStore(ctx, "127.0.0.1:1", time.Minute); err == nil {
		t.Fatalf("expected ping error for unreachable server")
	}
}

func TestRedisKeyIsNamespaced(t *testing.T) {
	if got := redisKey("abc", "quizOverlayOpen"); got != "study-shell:flag:abc::quizOverlayOpen" {
		t.Fatalf("redisKey = %q", got)
	}
}
