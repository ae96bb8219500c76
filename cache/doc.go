// Package cache memoizes decorated functions.
//
// A Memoizer owns one Store for the function it wraps. Each call is keyed by
// a Keyer that canonicalizes the arguments (maps sorted by key) and hashes
// them with SHA-256. A hit returns the stored value without invoking the
// function; a miss computes, stores and returns it. Errors are never stored.
//
// Concurrent callers that miss on the same key share one computation.
//
// By default only positional arguments form the key (KeyPositional), so two
// calls that differ only in keyword arguments share an entry. Use
// WithKeyPolicy(KeyFullSignature) to key on both.
package cache
