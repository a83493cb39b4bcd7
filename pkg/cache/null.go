package cache

import (
	"context"
	"time"
)

// NullCache discards everything and always misses. It stands in for a real
// backend when caching is disabled in config, and in tests that want every
// arrange call to hit the engine.
type NullCache struct{}

// NewNullCache returns the disabled-cache backend.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the payload.
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
