package cache

import (
	"context"
	"errors"
)

// Sentinel errors for cache operations.
var (
	ErrNilFunc    = errors.New("cache: function is nil")
	ErrUnhashable = errors.New("cache: argument cannot be used as a key")
)

// Store holds memoized results for a single function.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get never errors; it returns (zero, false) on miss.
// - Ownership: a Store is owned by exactly one Memoizer.
type Store[V any] interface {
	// Get retrieves a stored value. Returns (zero, false) on miss.
	Get(ctx context.Context, key string) (V, bool)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value V)

	// Delete removes a stored value. Idempotent.
	Delete(ctx context.Context, key string)

	// Len returns the number of stored entries.
	Len() int

	// Keys returns the stored keys in ascending order.
	Keys() []string

	// Reset removes every entry.
	Reset()
}
