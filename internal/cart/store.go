package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the live carts for all browsing sessions, keyed by a
// random session id.  Sessions expire after an idle TTL; expiry is
// enforced lazily on access and swept opportunistically, the same way
// seat holds age out in a checkout flow.  Everything lives in process
// memory: navigating away or letting the session lapse discards the
// cart, and nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time // injectable for tests
}

type session struct {
	cart      *Cart
	expiresAt time.Time
}

// NewStore creates a session store whose carts expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session for the given cart and returns its
// generated id.
func (s *Store) Create(c *Cart) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = &session{cart: c, expiresAt: s.now().Add(s.ttl)}
	return id
}

// Get returns the cart for a session id, extending its expiry.  The
// second return is false when the session is unknown or has lapsed.
func (s *Store) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.expiresAt = s.now().Add(s.ttl)
	return sess.cart, true
}

// Delete removes a session.  No-op when the id is unknown.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live (unswept) sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.sessions)
}

// sweepLocked drops every lapsed session.  Callers must hold s.mu.
func (s *Store) sweepLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
