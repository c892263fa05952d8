package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deciviz/deciviz/pkg/cache"
	"github.com/deciviz/deciviz/pkg/store"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "memory" || cfg.Store.Backend != "file" {
		t.Errorf("backends = %q/%q, want memory/file", cfg.Cache.Backend, cfg.Store.Backend)
	}
	if cfg.Layout.Preset != "semantic" {
		t.Errorf("Preset = %q, want semantic", cfg.Layout.Preset)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deciviz.toml")
	content := `
[server]
addr = ":9090"

[cache]
backend = "none"

[layout]
preset = "grid"
spacing = "spacious"
grid = 16.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Layout.Preset != "grid" || cfg.Layout.Grid != 16 {
		t.Errorf("layout = %+v, want grid preset with 16px grid", cfg.Layout)
	}
	// Untouched sections keep defaults.
	if cfg.Server.WriteTimeout != 30 {
		t.Errorf("WriteTimeout = %d, want default 30", cfg.Server.WriteTimeout)
	}
}

func TestLoadRejectsInvalidBackends(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad store backend", "[store]\nbackend = \"postgres\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "deciviz.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuildCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	c, err := cfg.BuildCache(ctx)
	if err != nil {
		t.Fatalf("BuildCache (memory): %v", err)
	}
	if _, ok := c.(*cache.MemoryCache); !ok {
		t.Errorf("default backend = %T, want *cache.MemoryCache", c)
	}

	cfg.Cache.Backend = "none"
	c, err = cfg.BuildCache(ctx)
	if err != nil {
		t.Fatalf("BuildCache (none): %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T, want *cache.NullCache", c)
	}

	cfg.Cache.Backend = "file"
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.BuildCache(ctx)
	if err != nil {
		t.Fatalf("BuildCache (file): %v", err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("file backend = %T, want *cache.FileCache", c)
	}
}

func TestBuildStore(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Store.Backend = "memory"
	s, err := cfg.BuildStore(ctx)
	if err != nil {
		t.Fatalf("BuildStore (memory): %v", err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("memory backend = %T, want *store.MemoryStore", s)
	}

	cfg.Store.Backend = "file"
	cfg.Store.Dir = t.TempDir()
	s, err = cfg.BuildStore(ctx)
	if err != nil {
		t.Fatalf("BuildStore (file): %v", err)
	}
	if _, ok := s.(*store.FileStore); !ok {
		t.Errorf("file backend = %T, want *store.FileStore", s)
	}
}
