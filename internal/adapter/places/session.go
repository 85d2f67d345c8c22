package places

import (
	"context"
	"errors"
	"sync"

	"github.com/yuvia/flight-results/internal/domain"
)

// ErrSuperseded is returned to a query that finished after a newer one started.
var ErrSuperseded = errors.New("autocomplete query superseded")

// Session serializes autocomplete for one input box. Starting a query cancels
// the previous one, and a result that arrives after a newer query started is
// discarded with ErrSuperseded, so only the latest term can populate suggestions.
type Session struct {
	suggester domain.PlaceSuggester

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewSession wraps a suggester.
func NewSession(suggester domain.PlaceSuggester) *Session {
	return &Session{suggester: suggester}
}

// Suggest runs the query for term as the newest generation.
func (s *Session) Suggest(ctx context.Context, term string) ([]domain.Place, error) {
	queryCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	places, err := s.suggester.Suggest(queryCtx, term)

	s.mu.Lock()
	current := gen == s.gen
	if current {
		s.cancel = nil
	}
	s.mu.Unlock()

	if !current {
		return nil, ErrSuperseded
	}
	return places, err
}

// Generation returns the number of queries started so far.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

var _ domain.PlaceSuggester = (*Session)(nil)
