package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
)

// LRUCacheEntry wraps the cached data with metadata
type LRUCacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

// LRUStore is a size-bounded in-memory store.
type LRUStore struct {
	lru    *lru.Cache[string, *LRUCacheEntry]
	clock  clockwork.Clock
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewLRUStore creates an in-memory store holding at most size entries.
// A nil clock uses real time.
func NewLRUStore(size int, clock clockwork.Clock) (*LRUStore, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	lruCache, err := lru.New[string, *LRUCacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &LRUStore{lru: lruCache, clock: clock}, nil
}

func (s *LRUStore) Get(_ context.Context, key string) ([]byte, error) {
	if entry, ok := s.lru.Get(key); ok {
		if s.clock.Now().Before(entry.ExpiresAt) {
			s.hits.Add(1)
			return entry.Data, nil
		}
		// Entry expired, remove it
		s.lru.Remove(key)
	}
	s.misses.Add(1)
	return nil, nil
}

func (s *LRUStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.lru.Add(key, &LRUCacheEntry{
		Data:      value,
		ExpiresAt: s.clock.Now().Add(ttl),
	})
	return nil
}

// GetCacheStats returns statistics about cache hits and misses
func (s *LRUStore) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":   s.hits.Load(),
		"lru_misses": s.misses.Load(),
	}
}

// Len is the number of entries currently held, including expired ones not
// yet evicted.
func (s *LRUStore) Len() int {
	return s.lru.Len()
}
