// Package cache provides key-value caching for badge rendering.
//
// Two caches back the badge pipeline: the location-normalization cache
// (raw location string -> normalized "City, ST" string, empty string
// meaning "previously failed") and the location-graphic cache (normalized
// location -> rendered SVG bytes). Both are append-mostly and idempotent:
// the same key always maps to the same value, so concurrent renders can
// share a cache with last-writer-wins semantics. Losing a write race only
// costs a redundant geocoding call, never correctness.
//
// Backends:
//   - [FileCache]: entries stored as JSON files under a directory
//   - [RedisCache]: shared cache for multi-worker deployments
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the key-value store injected into the location normalizer and
// the pipeline's graphic cache. Implementations must treat a missing key
// as (nil, false, nil), not an error.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
