package cache

// ScopedKeyer wraps a Keyer with a prefix.
// The CLI scopes keys by build version so a new release never reads
// artifacts rendered by an older one.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DotKey generates a prefixed key for Graphviz output.
func (k *ScopedKeyer) DotKey(fnHash string, opts DotKeyOpts) string {
	return k.prefix + k.inner.DotKey(fnHash, opts)
}

// FrameKey generates a prefixed key for a headless frame.
func (k *ScopedKeyer) FrameKey(fnHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(fnHash, opts)
}
