package services

import (
	"sync"
	"time"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// DefaultSessionTTL bounds how long an abandoned conversation keeps its
// in-memory progress before being evicted.
const DefaultSessionTTL = time.Hour

// sessionStore keeps per-voter workflow progress keyed by voter id.
// Entries untouched for longer than the TTL are swept on access.
type sessionStore[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[domain.VoterID]*sessionEntry[T]
}

type sessionEntry[T any] struct {
	val     T
	touched time.Time
}

func newSessionStore[T any](ttl time.Duration) *sessionStore[T] {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionStore[T]{
		ttl:     ttl,
		entries: make(map[domain.VoterID]*sessionEntry[T]),
	}
}

func (s *sessionStore[T]) Get(id domain.VoterID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	e, ok := s.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.touched = time.Now()
	return e.val, true
}

func (s *sessionStore[T]) Put(id domain.VoterID, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[id] = &sessionEntry[T]{val: val, touched: time.Now()}
}

func (s *sessionStore[T]) Delete(id domain.VoterID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *sessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *sessionStore[T]) sweepLocked() {
	now := time.Now()
	for id, e := range s.entries {
		if now.Sub(e.touched) > s.ttl {
			delete(s.entries, id)
		}
	}
}

// voterLocks serializes interactions per voter so near-simultaneous
// taps cannot interleave a read-modify-write cycle against the store.
// Entries are reference-counted and removed once the last holder
// releases, so the map stays bounded by concurrent voters rather than
// growing with every voter ever seen.
type voterLocks struct {
	mu    sync.Mutex
	locks map[domain.VoterID]*voterLock
}

type voterLock struct {
	mu   sync.Mutex
	refs int
}

func newVoterLocks() *voterLocks {
	return &voterLocks{locks: make(map[domain.VoterID]*voterLock)}
}

// Lock acquires the voter's mutex and returns the matching unlock.
func (v *voterLocks) Lock(id domain.VoterID) func() {
	v.mu.Lock()
	l, ok := v.locks[id]
	if !ok {
		l = &voterLock{}
		v.locks[id] = l
	}
	l.refs++
	v.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		v.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(v.locks, id)
		}
		v.mu.Unlock()
	}
}

func (v *voterLocks) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.locks)
}
