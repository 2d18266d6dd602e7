// Package msgcache remembers which chat message announced a booking so
// later status changes can edit it instead of posting a new one.
package msgcache

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	Remember(ctx context.Context, key string, messageID int) error
	Lookup(ctx context.Context, key string) (int, bool, error)
	Forget(ctx context.Context, key string) error
}

type entry struct {
	messageID int
	expiresAt time.Time
}

// MemoryStore is the single-process Store. Expired entries are invisible to
// Lookup and removed by Sweep.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]entry{},
	}
}

func (s *MemoryStore) Remember(_ context.Context, key string, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		messageID: messageID,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return 0, false, nil
	}
	return e.messageID, true, nil
}

func (s *MemoryStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
