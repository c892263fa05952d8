// Package config loads application configuration from TOML files.
//
// Configuration is optional: every field has a working default, and a
// missing file is not an error. The CLI looks for deciviz.toml in the
// working directory, the server takes an explicit --config path.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/deciviz/deciviz/pkg/cache"
	"github.com/deciviz/deciviz/pkg/store"
)

// Config is the top-level application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Timeouts in seconds.
	ReadTimeout  int `toml:"read_timeout"`
	WriteTimeout int `toml:"write_timeout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of: memory, file, redis, none.
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	// Backend is one of: file, memory, mongo.
	Backend string `toml:"backend"`

	// Dir is the document directory for the file backend.
	Dir string `toml:"dir"`

	// Mongo connection settings for the mongo backend.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// LayoutConfig sets the default layout options.
type LayoutConfig struct {
	Preset    string  `toml:"preset"`
	Spacing   string  `toml:"spacing"`
	Direction string  `toml:"direction"`
	Grid      float64 `toml:"grid"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15,
			WriteTimeout: 30,
		},
		Cache: CacheConfig{
			Backend: "memory",
		},
		Store: StoreConfig{
			Backend:         "file",
			MongoDatabase:   "deciviz",
			MongoCollection: "graphs",
		},
		Layout: LayoutConfig{
			Preset:  "semantic",
			Spacing: "normal",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path or a missing
// file returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "memory", "file", "redis", "none":
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: memory, file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case "file", "memory", "mongo":
	default:
		return fmt.Errorf("invalid store backend: %q (must be one of: file, memory, mongo)", c.Store.Backend)
	}

	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache backend redis requires redis_url")
	}
	if c.Store.Backend == "mongo" && c.Store.MongoURI == "" {
		return fmt.Errorf("store backend mongo requires mongo_uri")
	}
	return nil
}

// BuildCache constructs the configured cache backend.
func (c Config) BuildCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "file":
		return cache.NewFileCache(c.CacheDir())
	case "redis":
		return cache.NewRedisCache(ctx, c.Cache.RedisURL)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// CacheDir returns the file cache directory, defaulting to
// ~/.cache/deciviz when unset.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deciviz-cache"
	}
	return filepath.Join(home, ".cache", "deciviz")
}

// BuildStore constructs the configured document store backend.
func (c Config) BuildStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, c.Store.MongoURI, c.Store.MongoDatabase, c.Store.MongoCollection)
	default:
		return store.NewFileStore(c.Store.Dir)
	}
}
