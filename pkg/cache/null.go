package cache

import (
	"context"
	"time"
)

// NullCache misses on every read and discards every write. It backs the
// --no-cache flag so the normalizer and graphic pipeline can be handed a
// real Cache instead of a nil they would have to guard against.
type NullCache struct{}

// NewNullCache returns the disabled-cache backend.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
