package server

import (
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lmarchetti/cardflow/pkg/errors"
)

// Config is the server configuration, loaded from a TOML file.
//
// Example:
//
//	addr = ":8080"
//
//	[store]
//	backend = "file"
//	dir = "/var/lib/cardflow/boards"
//
//	[cache]
//	backend = "redis"
//	addr = "localhost:6379"
//	ttl = "15m"
type Config struct {
	Addr  string      `toml:"addr"`
	Store StoreConfig `toml:"store"`
	Cache CacheConfig `toml:"cache"`
}

// StoreConfig selects and configures the board store backend.
type StoreConfig struct {
	Backend string `toml:"backend"` // memory (default), file, mongo

	// File backend
	Dir string `toml:"dir"`

	// Mongo backend
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects and configures the layout cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // null (default), file, redis

	// File backend
	Dir string `toml:"dir"`

	// Redis backend
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`

	// TTL bounds cached layout lifetime, e.g. "15m". Empty means no expiry.
	TTL duration `toml:"ttl"`

	// Scope is prepended to every cache key so instances sharing one redis
	// (staging and production, say) cannot read each other's layouts.
	Scope string `toml:"scope"`
}

// duration wraps time.Duration with TOML text unmarshalling.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// in-memory store, caching disabled.
func DefaultConfig() Config {
	return Config{
		Addr:  ":8080",
		Store: StoreConfig{Backend: "memory"},
		Cache: CacheConfig{Backend: "null"},
	}
}

// LoadConfig reads a TOML config file, applying defaults for absent fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "", "memory":
	case "file":
		if c.Store.Dir == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.dir is required for the file backend")
		}
	case "mongo":
		if c.Store.URI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "", "null":
	case "file":
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.dir is required for the file backend")
		}
	case "redis":
		if c.Cache.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}

	return nil
}
