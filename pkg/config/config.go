// Package config loads cfgexplorer settings from a TOML file.
//
// The default location follows the XDG convention:
// $XDG_CONFIG_HOME/cfgexplorer/config.toml, falling back to
// ~/.config/cfgexplorer/config.toml. A missing file is not an error; every
// field has a default and a file only needs to name what it overrides.
//
//	[canvas]
//	width = 1280
//	height = 800
//
//	[theme]
//	current = "#f1fa8c"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "30m"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/render"
)

// AppName names the config and cache directories.
const AppName = "cfgexplorer"

// Defaults.
const (
	DefaultCanvasWidth      = 1200.0
	DefaultCanvasHeight     = 800.0
	DefaultCellWidth        = 8.0
	DefaultCellHeight       = 16.0
	DefaultAddr             = "127.0.0.1:8080"
	DefaultSessionTTL       = 30 * time.Minute
	DefaultMaxDocumentBytes = 32 << 20
	DefaultCacheTTL         = 7 * 24 * time.Hour
)

// Config is the complete settings file.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Theme  render.Theme `toml:"theme"`
	TUI    TUIConfig    `toml:"tui"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// CanvasConfig sizes headless frames.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// TUIConfig maps terminal cells to canvas units.
type TUIConfig struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// ServerConfig configures the HTTP session host.
type ServerConfig struct {
	Addr             string   `toml:"addr"`
	SessionTTL       Duration `toml:"session_ttl"`
	MaxDocumentBytes int64    `toml:"max_document_bytes"`
}

// CacheConfig configures the render cache.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	Disabled bool     `toml:"disabled"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a Go duration string ("30m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		Theme:  render.DefaultTheme(),
		TUI:    TUIConfig{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight},
		Server: ServerConfig{
			Addr:             DefaultAddr,
			SessionTTL:       Duration{DefaultSessionTTL},
			MaxDocumentBytes: DefaultMaxDocumentBytes,
		},
		Cache: CacheConfig{TTL: Duration{DefaultCacheTTL}},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the file at path over the defaults. An empty path means
// [Path]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	cfg.Theme = cfg.Theme.Merge(render.DefaultTheme())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects non-positive sizes and malformed colors.
func (c Config) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"canvas.width", c.Canvas.Width},
		{"canvas.height", c.Canvas.Height},
		{"tui.cell_width", c.TUI.CellWidth},
		{"tui.cell_height", c.TUI.CellHeight},
		{"server.max_document_bytes", float64(c.Server.MaxDocumentBytes)},
	}
	for _, d := range dims {
		if err := errors.ValidateDimension(d.name, d.value); err != nil {
			return err
		}
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.session_ttl must be positive")
	}
	return c.Theme.Validate()
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the render cache directory: the configured one, else
// $XDG_CACHE_HOME/cfgexplorer, else ~/.cache/cfgexplorer.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Write encodes c as TOML to path, creating parent directories.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
