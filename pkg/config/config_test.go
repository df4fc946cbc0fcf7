package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/render"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[canvas]
width = 640

[theme]
current = "#f1fa8c"

[server]
addr = ":9000"
session_ttl = "5m"

[cache]
disabled = true
ttl = "1h"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Canvas.Width != 640 || cfg.Canvas.Height != DefaultCanvasHeight {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Theme.Current != "#f1fa8c" {
		t.Errorf("theme.current = %q", cfg.Theme.Current)
	}
	if cfg.Theme.Background != render.DefaultTheme().Background {
		t.Errorf("theme.background = %q, want default", cfg.Theme.Background)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.SessionTTL.Duration != 5*time.Minute {
		t.Errorf("server = %+v", cfg.Server)
	}
	if !cfg.Cache.Disabled || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{"syntax", `[canvas`, errors.ErrCodeInvalidFormat},
		{"bad duration", "[server]\nsession_ttl = \"soon\"", errors.ErrCodeInvalidFormat},
		{"zero width", "[canvas]\nwidth = 0", errors.ErrCodeInvalidInput},
		{"negative cell", "[tui]\ncell_height = -1", errors.ErrCodeInvalidInput},
		{"bad color", "[theme]\nedge = \"grey\"", errors.ErrCodeInvalidInput},
		{"zero ttl", "[server]\nsession_ttl = \"0s\"", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	// Explicit missing file is an error.
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	// Default location missing yields defaults.
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Canvas != Default().Canvas {
		t.Errorf("canvas = %+v, want defaults", cfg.Canvas)
	}

	// Round trip through the default location.
	path, _ := Path()
	want := Default()
	want.TUI.CellWidth = 10
	if err := want.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load after Write: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if p, _ := Path(); p != filepath.Join("/xdg/config", AppName, "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	cfg := Default()
	if d, _ := cfg.CacheDir(); d != filepath.Join("/xdg/cache", AppName) {
		t.Errorf("CacheDir() = %q", d)
	}
	cfg.Cache.Dir = "/tmp/custom"
	if d, _ := cfg.CacheDir(); d != "/tmp/custom" {
		t.Errorf("CacheDir() with dir = %q", d)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if p, _ := Path(); p != filepath.Join(home, ".config", AppName, "config.toml") {
		t.Errorf("Path() without XDG = %q", p)
	}
}
