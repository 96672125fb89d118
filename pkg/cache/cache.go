// Package cache stores finished layouts keyed by a digest of their inputs.
//
// Conversions of the same analysis result, and seeded generator runs with the
// same options, always produce the same layout, so the pipeline can skip the
// work on a repeat request. Five backends implement [Cache]:
//
//   - [NullCache]: stores nothing
//   - [MemoryCache]: a process-local map, the server default
//   - [FileCache]: JSON files under a directory, the CLI default
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a shared MongoDB collection with a TTL index
//
// Keys come from a [Keyer]; [NewScopedKeyer] prefixes them so several
// deployments can share one remote backend. The remote backends retry
// transient failures with [DefaultBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes of cached layouts.
const (
	TTLAnalysis  = 24 * time.Hour
	TTLGenerated = 7 * 24 * time.Hour
)

// entry is a stored value with its expiry, shared by the local backends.
type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func newEntry(data []byte, ttl time.Duration, now time.Time) entry {
	e := entry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}
