// Package memory is an in-memory implementation of cache storage.
package memory

import (
	"context"
	"sync"
	"time"
)

type item struct {
	content   []byte
	expiresAt time.Time
}

// Storage ...
type Storage struct {
	mu    sync.Mutex
	items map[string]item
}

// NewStorage ...
func NewStorage() *Storage {
	return &Storage{
		items: make(map[string]item),
	}
}

// Get returns the cached content or nil when absent or expired.
func (s *Storage) Get(_ context.Context, key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return nil
	}

	if time.Now().After(it.expiresAt) {
		delete(s.items, key)
		return nil
	}

	return it.content
}

// Set stores content for the given ttl and sweeps expired entries.
func (s *Storage) Set(_ context.Context, key string, content []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, it := range s.items {
		if now.After(it.expiresAt) {
			delete(s.items, k)
		}
	}

	s.items[key] = item{
		content:   content,
		expiresAt: now.Add(ttl),
	}
}
