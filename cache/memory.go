package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// MemoryStore is an unbounded in-memory Store. Entries never expire and are
// only removed by Delete or Reset.
type MemoryStore[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[V any]() *MemoryStore[V] {
	return &MemoryStore[V]{
		entries: make(map[string]V),
	}
}

// Get retrieves a value from the store.
func (s *MemoryStore[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	return v, ok
}

// Set stores a value.
func (s *MemoryStore[V]) Set(_ context.Context, key string, value V) {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Delete removes a value. No-op on miss.
func (s *MemoryStore[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of entries.
func (s *MemoryStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns the stored keys, sorted.
func (s *MemoryStore[V]) Keys() []string {
	s.mu.RLock()
	keys := lo.Keys(s.entries)
	s.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Reset drops every entry.
func (s *MemoryStore[V]) Reset() {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
}

// Ensure MemoryStore implements Store
var _ Store[any] = (*MemoryStore[any])(nil)
