// Package session provides an in-memory TTL store for per-user dialog state.
package session

import (
	"sync"
	"time"

	"github.com/chatfin/finbot/internal/model"
)

// entry wraps a dialog session with its expiry time.
type entry struct {
	expiry  time.Time
	session *model.DialogSession
}

// Store is a thread-safe session store with TTL expiry. An expired session
// behaves as if the user cancelled the dialog.
type Store struct {
	entries map[int64]entry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	store := &Store{
		entries: make(map[int64]entry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go store.cleanup()

	return store
}

// Get returns the user's session if it exists and has not expired.
func (s *Store) Get(userID int64) (*model.DialogSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[userID]
	if !exists || time.Now().After(e.expiry) {
		return nil, false
	}

	return e.session, true
}

// Put stores the user's session, resetting its TTL.
func (s *Store) Put(userID int64, session *model.DialogSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = entry{
		session: session,
		expiry:  time.Now().Add(s.ttl),
	}
}

// Delete removes the user's session.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// cleanup periodically removes expired entries.
func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for userID, e := range s.entries {
				if now.After(e.expiry) {
					delete(s.entries, userID)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	close(s.stopCh)
}
