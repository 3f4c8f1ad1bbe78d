// Package cache stores the outcome of completed verifications so that a
// claim whose definition has not changed is not searched again.
//
// A [Cache] is a byte-oriented key/value store with optional expiry.
// Four backends are provided:
//
//   - [NullCache]: stores nothing; used with --no-cache
//   - [FileCache]: one JSON file per key under the user cache directory
//   - [RedisCache]: a shared Redis instance
//   - [BadgerCache]: an embedded Badger database
//
// Keys come from a [Keyer], which hashes the canonical text of a claim so
// that editing a seed, a candidate list or a lemma invalidates the entry.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for verification results.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
