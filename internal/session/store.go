// Package session maps browser sessions to their address books. State is
// held per session token, never in package-level globals, so concurrent
// sessions are isolated by construction.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/vportier/barycentre/internal/addressbook"
)

// Store holds one address book per session token and evicts sessions that
// have been idle longer than the TTL.
//
// The mutex protects the session map and the last-seen bookkeeping only.
// The books themselves need no locking: a session's requests are sequential,
// and the janitor never touches a book, it only drops map entries.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*state
	ttl      time.Duration
	clock    clock.Clock
	log      *slog.Logger
}

type state struct {
	book     *addressbook.Book
	lastSeen time.Time
}

// NewStore creates a session store with the given idle TTL. The clock is
// injectable so eviction is testable without sleeping.
func NewStore(log *slog.Logger, ttl time.Duration, clk clock.Clock) *Store {
	return &Store{
		sessions: make(map[string]*state),
		ttl:      ttl,
		clock:    clk,
		log:      log,
	}
}

// NewToken returns a fresh session token for the session cookie.
func NewToken() string {
	return uuid.NewString()
}

// Get returns the address book for the given token, creating the session on
// first use, and refreshes the session's idle timer.
func (s *Store) Get(token string) *addressbook.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[token]
	if !ok {
		st = &state{book: addressbook.New()}
		s.sessions[token] = st
	}
	st.lastSeen = s.clock.Now()

	return st.book
}

// Reset replaces the session's address book with an empty one.
func (s *Store) Reset(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[token]; ok {
		st.book = addressbook.New()
		st.lastSeen = s.clock.Now()
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Run sweeps idle sessions until the context is cancelled. The sweep cadence
// is a quarter of the TTL, so a session outlives its last request by at most
// 1.25 TTLs.
func (s *Store) Run(ctx context.Context) {
	const sweepsPerTTL = 4
	ticker := s.clock.Ticker(s.ttl / sweepsPerTTL)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "Session janitor started", "ttl", s.ttl)

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Session janitor stopped.")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep drops every session whose last request is older than the TTL.
func (s *Store) sweep(ctx context.Context) {
	cutoff := s.clock.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	for token, st := range s.sessions {
		if st.lastSeen.Before(cutoff) {
			delete(s.sessions, token)
			s.log.DebugContext(ctx, "Evicted idle session", "entries", st.book.Len())
		}
	}
}
