// Package cache provides optional caching of computed layout results.
//
// The layout engine is a pure function of its input snapshot, so an arranged
// layout can be cached under a hash of the card geometry that produced it.
// Re-running the engine is cheap (O(n) per pass), but the server arranges the
// same boards repeatedly and a resize-drag can fire on every frame; the cache
// turns those repeats into a lookup.
//
// Three backends are provided:
//   - FileCache: directory of JSON entries, for CLI usage
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: disables caching entirely
//
// Keys are produced by a [Keyer] so every consumer derives them the same way.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for layout artifacts.
type Keyer interface {
	// LayoutKey derives the key for an arranged layout from the hash of the
	// geometry snapshot it was computed from.
	LayoutKey(geometryHash string) string

	// PlacementKey derives the key for a preview position (next-position or
	// free-flow proposals) from the geometry hash and the query.
	PlacementKey(geometryHash, query string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for an arranged layout.
func (k *DefaultKeyer) LayoutKey(geometryHash string) string {
	return hashKey("layout", geometryHash)
}

// PlacementKey generates a key for a placement preview.
func (k *DefaultKeyer) PlacementKey(geometryHash, query string) string {
	return hashKey("placement", geometryHash, query)
}

// ScopedKeyer wraps a Keyer with a prefix so independent boards or tenants
// get separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(geometryHash string) string {
	return k.prefix + k.inner.LayoutKey(geometryHash)
}

// PlacementKey generates a prefixed placement key.
func (k *ScopedKeyer) PlacementKey(geometryHash, query string) string {
	return k.prefix + k.inner.PlacementKey(geometryHash, query)
}
