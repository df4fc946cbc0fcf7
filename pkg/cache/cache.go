// Package cache stores rendered artifacts keyed by document content.
//
// The CLI caches Graphviz output, which is the only expensive, repeatable
// step in cfgexplorer: the same function of the same document always
// produces the same DOT and SVG bytes. Keys hash the document together with
// every option that affects the output, so a changed document or option
// never hits a stale entry.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory, with expiry
//   - [NullCache]: never stores anything (--no-cache)
//
// Wrap either with [Instrument] to report hits and misses to the
// observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// Keyer builds cache keys.
type Keyer interface {
	// DotKey keys Graphviz output for one function, identified by its
	// FunctionHash.
	DotKey(fnHash string, opts DotKeyOpts) string

	// FrameKey keys a headless explorer frame of one function.
	FrameKey(fnHash string, opts FrameKeyOpts) string
}

// DotKeyOpts are the options that change Graphviz output.
type DotKeyOpts struct {
	Function int      `json:"function"`
	Format   string   `json:"format"`
	Detailed bool     `json:"detailed,omitempty"`
	Keys     []string `json:"keys,omitempty"`
	Theme    string   `json:"theme,omitempty"`
}

// FrameKeyOpts are the options that change a headless frame.
type FrameKeyOpts struct {
	Function int      `json:"function"`
	Keys     []string `json:"keys,omitempty"`
	Format   string   `json:"format"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Theme    string   `json:"theme,omitempty"`
}

// DefaultKeyer hashes the function hash and options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DotKey(fnHash string, opts DotKeyOpts) string {
	return hashKey("dot", fnHash, opts)
}

func (DefaultKeyer) FrameKey(fnHash string, opts FrameKeyOpts) string {
	return hashKey("frame", fnHash, opts)
}
