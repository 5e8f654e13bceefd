package sessionstore

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	flags map[string]time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		flags: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Set(_ context.Context, sessionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	s.flags[flagKey(sessionID, name)] = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Take(_ context.Context, sessionID, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := flagKey(sessionID, name)
	expiresAt, ok := s.flags[key]
	if !ok {
		return false, nil
	}
	delete(s.flags, key)
	return s.now().Before(expiresAt), nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.flags, flagKey(sessionID, name))
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) pruneLocked() {
	now := s.now()
	for key, expiresAt := range s.flags {
		if !now.Before(expiresAt) {
			delete(s.flags, key)
		}
	}
}
