package httpapi

import (
	"errors"
	"sync"
	"time"

	"study-shell/internal/quiz"
)

var ErrEngineNotFound = errors.New("no quiz loaded for page")

type engineKey struct {
	sessionID string
	pageKey   string
}

type engineEntry struct {
	mu       sync.Mutex
	engine   *quiz.Engine
	lastUsed time.Time
}

// Registry holds the engine of the latest load of each (session, page). Calls on one
// engine are serialized.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[engineKey]*engineEntry
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[engineKey]*engineEntry),
	}
}

// Put replaces the engine of a page for a session. A page load always starts over.
func (r *Registry) Put(sessionID string, engine *quiz.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()
	r.entries[engineKey{sessionID, engine.PageKey()}] = &engineEntry{
		engine:   engine,
		lastUsed: r.now(),
	}
}

// With runs fn on the engine of a page while holding its lock.
func (r *Registry) With(sessionID, pageKey string, fn func(*quiz.Engine) error) error {
	r.mu.Lock()
	entry, ok := r.entries[engineKey{sessionID, pageKey}]
	if ok {
		entry.lastUsed = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return ErrEngineNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.engine)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) pruneLocked() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)
	for key, entry := range r.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(r.entries, key)
		}
	}
}
