package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "svg", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	// Expired entries miss and are removed.
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	// Corrupt entries miss.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("svg"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("corrupt entry should miss")
	}

	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}
}

func TestClearDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := ClearDir(dir)
	if err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	if n != 3 {
		t.Errorf("ClearDir removed %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after ClearDir", len(entries))
	}

	if n, err := ClearDir(filepath.Join(dir, "missing")); n != 0 || err != nil {
		t.Errorf("ClearDir(missing) = %d, %v", n, err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestFunctionHash(t *testing.T) {
	fn := graph.FunctionDoc{
		Name:   "demo::pick",
		Blocks: []graph.BlockDoc{{ID: 0, Role: graph.RoleEntry}},
	}
	h1, err := FunctionHash(&fn)
	if err != nil {
		t.Fatalf("FunctionHash: %v", err)
	}
	h2, _ := FunctionHash(&fn)
	if h1 != h2 {
		t.Error("FunctionHash should be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("FunctionHash length = %d, want 64", len(h1))
	}

	tests := []struct {
		name   string
		modify func(*graph.FunctionDoc)
	}{
		{"Name", func(f *graph.FunctionDoc) { f.Name = "demo::other" }},
		{"Summary", func(f *graph.FunctionDoc) { f.Blocks[0].Summary = "entry" }},
		{"Entry", func(f *graph.FunctionDoc) { f.EntryBlock = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := fn
			changed.Blocks = append([]graph.BlockDoc(nil), fn.Blocks...)
			tt.modify(&changed)
			h, err := FunctionHash(&changed)
			if err != nil {
				t.Fatalf("FunctionHash: %v", err)
			}
			if h == h1 {
				t.Error("changed function should hash differently")
			}
		})
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	dk1 := k.DotKey("doc", DotKeyOpts{Function: 0, Format: "svg"})
	dk2 := k.DotKey("doc", DotKeyOpts{Function: 1, Format: "svg"})
	dk3 := k.DotKey("other", DotKeyOpts{Function: 0, Format: "svg"})
	if dk1 == dk2 || dk1 == dk3 {
		t.Error("different functions or documents should produce different keys")
	}
	if !strings.HasPrefix(dk1, "dot:") {
		t.Errorf("DotKey unexpected: %s", dk1)
	}
	if dk1 != k.DotKey("doc", DotKeyOpts{Function: 0, Format: "svg"}) {
		t.Error("DotKey should be deterministic")
	}

	fk1 := k.FrameKey("doc", FrameKeyOpts{Keys: []string{"j"}, Format: "png", Width: 800, Height: 600})
	fk2 := k.FrameKey("doc", FrameKeyOpts{Keys: []string{"k"}, Format: "png", Width: 800, Height: 600})
	if fk1 == fk2 {
		t.Error("different key replays should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1:")
	key := scoped.DotKey("doc", DotKeyOpts{Format: "svg"})
	if key != "v1:"+NewDefaultKeyer().DotKey("doc", DotKeyOpts{Format: "svg"}) {
		t.Errorf("ScopedKeyer DotKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.FrameKey("doc", FrameKeyOpts{})
	if !strings.HasPrefix(key, "prefix:frame:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets, bytes int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(_ context.Context, _ string, n int) {
	h.sets++
	h.bytes += n
}

func TestInstrument(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	c := Instrument(fc, "dot")

	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("abcd"), 0)
	c.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 || hooks.bytes != 4 {
		t.Errorf("hooks = %+v", *hooks)
	}
}
