package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps layout results on disk so repeated CLI invocations against
// the same board skip the arrange pass. Each entry is one JSON file in a flat
// directory; payloads are small (placement lists and preview points) and a
// working set rarely exceeds a few dozen boards, so no sharding is needed.
type FileCache struct {
	dir string
}

// NewFileCache opens (creating if necessary) a layout cache rooted at dir.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// envelope is the on-disk shape of one cached layout: the serialized result
// plus the moment it stops being trusted.
type envelope struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get returns the cached layout payload for key, or a miss if it is absent,
// expired, or unreadable. Stale and corrupt entries are removed on the spot.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !env.ExpiresAt.IsZero() && time.Now().After(env.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return env.Payload, true, nil
}

// Set writes a layout payload under key. A zero ttl keeps the entry until a
// geometry change makes its key unreachable.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{Payload: data}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(c.entryPath(key), raw, 0644)
}

// Delete removes the entry for key, if any.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; entries live on until cleared.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key to its file. Keys carry a "prefix:" namespace and
// arbitrary hash text, so they are re-hashed into a fixed-width safe name.
func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, Hash([]byte(key))+".layout")
}

var _ Cache = (*FileCache)(nil)
