package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
)

// DefaultSessionIdleTTL evicts sessions unused for this long.
const DefaultSessionIdleTTL = 30 * time.Minute

// SessionRegistry creates results sessions and evicts idle ones.
type SessionRegistry struct {
	deps     SessionDeps
	storeFor func(sessionID string) domain.StateStore
	idleTTL  time.Duration
	newID    func() string
	log      *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*ResultsSession

	// background tracks the matrix fetches of every session
	background sync.WaitGroup
}

// NewSessionRegistry creates a registry. storeFor returns the state store of
// one session, typically a namespaced view of a shared store. A non-positive
// idleTTL uses DefaultSessionIdleTTL.
func NewSessionRegistry(deps SessionDeps, storeFor func(sessionID string) domain.StateStore, idleTTL time.Duration) *SessionRegistry {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	r := &SessionRegistry{
		storeFor: storeFor,
		idleTTL:  idleTTL,
		newID:    uuid.NewString,
		sessions: make(map[string]*ResultsSession),
	}
	deps.background = &r.background
	r.deps = deps.withDefaults()
	r.log = r.deps.Logger
	return r
}

// Create starts a new session.
func (r *SessionRegistry) Create(ctx context.Context) *ResultsSession {
	id := r.newID()
	deps := r.deps
	deps.Store = r.storeFor(id)

	session := NewResultsSession(ctx, id, deps)

	r.mu.Lock()
	r.sessions[id] = session
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	r.log.Debug().Str("session_id", id).Msg("session created")
	return session
}

// Ephemeral creates an unregistered session backed by store, for one-shot
// searches. It never fetches the price matrix since no later request can
// read its calendar.
func (r *SessionRegistry) Ephemeral(ctx context.Context, store domain.StateStore) *ResultsSession {
	deps := r.deps
	deps.Store = store
	deps.skipMatrix = true
	return NewResultsSession(ctx, r.newID(), deps)
}

// Get returns a live session or domain.ErrSessionNotFound.
func (r *SessionRegistry) Get(id string) (*ResultsSession, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return session, nil
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict removes sessions idle for longer than the idle TTL and returns how many were removed.
func (r *SessionRegistry) Evict() int {
	cutoff := r.deps.Clock.Now().Add(-r.idleTTL)

	r.mu.Lock()
	removed := 0
	for id, session := range r.sessions {
		if session.LastUsed().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	if removed > 0 {
		r.log.Info().Int("evicted", removed).Int("active", count).Msg("idle sessions evicted")
	}
	return removed
}

// Wait blocks until the background matrix fetches of all sessions have finished.
func (r *SessionRegistry) Wait() {
	r.background.Wait()
}

// Run evicts idle sessions every interval until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Evict()
		}
	}
}
