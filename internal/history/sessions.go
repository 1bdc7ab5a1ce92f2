package history

import (
	"sync"
	"time"
)

// Sessions hands out one Store per session. A session's store lives until
// End is called for it or it sits idle for longer than the TTL.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*session
	ttl    time.Duration
	now    func() time.Time
}

type session struct {
	store    *Store
	lastSeen time.Time
}

// NewSessions creates a registry whose sessions expire after ttl without
// access. A ttl of zero or less keeps sessions until End.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		stores: make(map[string]*session),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the store for sessionID, creating it on first use.
func (s *Sessions) Get(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess, ok := s.stores[sessionID]
	if !ok {
		sess = &session{store: NewStore()}
		s.stores[sessionID] = sess
	}
	sess.lastSeen = now
	return sess.store
}

// Lookup returns the store for sessionID without creating one.
func (s *Sessions) Lookup(sessionID string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.stores[sessionID]
	if !ok {
		return nil, false
	}
	if s.expired(sess, now) {
		delete(s.stores, sessionID)
		return nil, false
	}
	sess.lastSeen = now
	return sess.store, true
}

// End drops the session's store. It reports whether the session existed.
func (s *Sessions) End(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.stores[sessionID]
	delete(s.stores, sessionID)
	return ok && !s.expired(sess, s.now())
}

// Sweep drops every idle session and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *Sessions) sweepLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	removed := 0
	for id, sess := range s.stores {
		if s.expired(sess, now) {
			delete(s.stores, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
