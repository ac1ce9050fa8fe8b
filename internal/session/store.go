package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"cinebook/internal/seatmap"
)

// ErrNotFound is returned when a session id is unknown or has expired.
var ErrNotFound = errors.New("booking session not found")

// Store keeps open booking sessions in memory.  Sessions are keyed by a
// random uuid and expire after a fixed TTL; an expired session is treated
// exactly like a discarded one, so any eventual payment result for it is
// ignored.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	onEvict  func()
}

// NewStore creates a Store whose sessions live for ttl after opening.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// OnEvict registers a callback invoked once per session removed from the
// store, on every removal path: explicit Delete, lazy expiry in Get, and
// Sweep.  Set it before the store starts serving; it backs the active
// sessions gauge, so open and evict counts must stay symmetric.
func (st *Store) OnEvict(fn func()) {
	st.onEvict = fn
}

// Open creates a new session for the given user and showtime, seeded with
// the occupancy snapshot, and registers it under a fresh uuid.
func (st *Store) Open(userID, showtimeID uint64, basePriceCents int64, cfg seatmap.RowConfig, occupied map[string]string) *Session {
	s := New(uuid.NewString(), userID, showtimeID, basePriceCents, cfg, occupied, st.ttl)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given id for the given user.  Expired
// sessions are removed lazily and reported as not found.  The user check
// keeps one user from driving another user's checkout.
func (st *Store) Get(id string, userID uint64) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || s.UserID != userID {
		return nil, ErrNotFound
	}
	if s.Expired(time.Now().UTC()) {
		st.Delete(id)
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete discards a session.  Deleting an unknown id is a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	_, existed := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if existed && st.onEvict != nil {
		st.onEvict()
	}
}

// Len returns the number of registered sessions, expired ones included
// until the next sweep.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes all expired sessions and returns how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	n := 0
	for id, s := range st.sessions {
		if s.Expired(now) {
			delete(st.sessions, id)
			n++
		}
	}
	st.mu.Unlock()
	if st.onEvict != nil {
		for i := 0; i < n; i++ {
			st.onEvict()
		}
	}
	return n
}

// StartSweeper runs Sweep on the given interval until the context is
// cancelled.  Run it in a goroutine from main.
func (st *Store) StartSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			st.Sweep(now.UTC())
		}
	}
}
