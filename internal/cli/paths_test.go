package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cfgexplorer/pkg/cache"
	"github.com/matzehuels/cfgexplorer/pkg/config"
)

// captureStdout redirects status output to a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestNewCacheUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	c, keyer, err := newCache(config.Default(), false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer c.Close()

	if keyer == nil {
		t.Fatal("newCache() returned nil keyer")
	}
	key := keyer.DotKey("doc", cache.DotKeyOpts{Format: "svg"})
	if err := c.Set(t.Context(), key, []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, appName))
	if err != nil {
		t.Fatalf("cache directory not created under XDG_CACHE_HOME: %v", err)
	}
	if len(entries) == 0 {
		t.Error("cache entry not written under XDG_CACHE_HOME")
	}
}

func TestNewCacheDisabled(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cfg := config.Default()
	cfg.Cache.Disabled = true
	for _, tt := range []struct {
		name    string
		cfg     config.Config
		noCache bool
	}{
		{"config", cfg, false},
		{"flag", config.Default(), true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, _, err := newCache(tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			if _, ok := c.(cache.NullCache); !ok {
				t.Errorf("newCache() = %T, want cache.NullCache", c)
			}
		})
	}
}

func TestCacheKeysScopedToBuild(t *testing.T) {
	_, keyer, err := newCache(config.Default(), true)
	if err != nil {
		t.Fatal(err)
	}
	plain := cache.NewDefaultKeyer().DotKey("doc", cache.DotKeyOpts{})
	scoped := keyer.DotKey("doc", cache.DotKeyOpts{})
	if scoped == plain || !strings.HasSuffix(scoped, plain) {
		t.Errorf("scoped key %q should extend %q", scoped, plain)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "crate.json", "crate"},
		{"", "dir/crate.json", "dir/crate"},
		{"out.svg", "crate.json", "out"},
		{"out.dot", "crate.json", "out"},
		{"out", "crate.json", "out"},
		{"out.txt", "crate.json", "out.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}
