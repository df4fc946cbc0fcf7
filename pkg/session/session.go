// Package session holds live explorer sessions for the HTTP host.
//
// Each session owns one explorer controller and the SVG surface it paints
// on. The controller is single-threaded, so a session carries a mutex and
// handlers lock it for the duration of one event.
//
// Sessions live in memory only and expire after a period of inactivity:
// every successful [Store.Get] extends the deadline by the session TTL.
//
// # Usage
//
//	store := session.NewMemoryStore(30 * time.Minute)
//	sess, err := session.New(ex, surface)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if err != nil {
//	    return err // SESSION_NOT_FOUND
//	}
//	sess.Lock()
//	handled := sess.Explorer.HandleKey("j")
//	sess.Unlock()
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cfgexplorer/pkg/explorer"
	"github.com/matzehuels/cfgexplorer/pkg/render/sink"
)

// DefaultTTL is the default idle lifetime of a session.
const DefaultTTL = 30 * time.Minute

// Session is one explorer and its surface.
type Session struct {
	sync.Mutex

	ID        string
	Explorer  *explorer.Explorer
	Surface   *sink.SVG
	CreatedAt time.Time

	expiresAt time.Time
}

// New creates a session with a random id. The store sets the deadline.
func New(ex *explorer.Explorer, surface *sink.SVG) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id.String(),
		Explorer:  ex,
		Surface:   surface,
		CreatedAt: time.Now(),
	}, nil
}

// ExpiresAt returns the current deadline.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// IsExpired reports whether the deadline has passed at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.expiresAt.IsZero() && now.After(s.expiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a live session by ID and extends its deadline.
	// A missing or expired session returns a SESSION_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session and starts its deadline.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Len returns the number of stored sessions, expired or not.
	Len() int
}
