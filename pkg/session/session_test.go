package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
)

func TestNewAssignsUUID(t *testing.T) {
	a, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, _ := New(nil, nil)
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Error("session ids should be unique")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return clock }

	s, _ := New(nil, nil)
	if err := store.Set(ctx, s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}

	// Access extends the deadline.
	clock = clock.Add(50 * time.Second)
	if _, err := store.Get(ctx, s.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	clock = clock.Add(50 * time.Second)
	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get after extension: %v", err)
	}
	if got != s {
		t.Error("Get returned a different session")
	}

	// Idle past the ttl expires.
	clock = clock.Add(2 * time.Minute)
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get expired error = %v, want SESSION_NOT_FOUND", err)
	}
	if store.Len() != 0 {
		t.Errorf("expired session not dropped, Len = %d", store.Len())
	}

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get missing error = %v", err)
	}
	if err := store.Set(ctx, &Session{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Set without id error = %v", err)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	clock := time.Now()
	store := NewMemoryStore(0)
	store.now = func() time.Time { return clock }

	old, _ := New(nil, nil)
	store.Set(ctx, old)
	clock = clock.Add(DefaultTTL - time.Minute)
	fresh, _ := New(nil, nil)
	store.Set(ctx, fresh)
	clock = clock.Add(2 * time.Minute)

	n, err := store.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Errorf("Cleanup = %d, %v; want 1, nil", n, err)
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session dropped: %v", err)
	}

	store.Delete(ctx, fresh.ID)
	store.Delete(ctx, fresh.ID)
	if store.Len() != 0 {
		t.Errorf("Len after Delete = %d", store.Len())
	}
}
