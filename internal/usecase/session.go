package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
)

// SessionDeps are the collaborators shared by results sessions.
type SessionDeps struct {
	// Source fetches offers and the price matrix
	Source domain.FlightSource

	// Places resolves free-text city names to codes; nil disables resolution
	Places domain.PlaceSuggester

	// Store persists selections and recent searches; required
	Store domain.StateStore

	// Autocomplete builds the per-session suggester; nil falls back to Places
	Autocomplete func() domain.PlaceSuggester

	// MatrixTimeout bounds the background price-matrix fetch; 0 means DefaultMatrixTimeout
	MatrixTimeout time.Duration

	Clock    timeutil.Clock
	Location *time.Location
	Logger   *logger.Logger

	// background tracks matrix fetches; the registry shares one across its sessions
	background *sync.WaitGroup

	// skipMatrix disables the matrix fetch for sessions nobody can ask for a calendar
	skipMatrix bool
}

// DefaultMatrixTimeout bounds a background price-matrix fetch.
const DefaultMatrixTimeout = 15 * time.Second

// ResultsSession holds the state of one results page: the scored working
// set, the last query and its currency, the price matrix and the persisted
// selections. Safe for concurrent use.
type ResultsSession struct {
	id        string
	source    domain.FlightSource
	places    domain.PlaceSuggester
	suggester domain.PlaceSuggester
	clock     timeutil.Clock
	loc       *time.Location
	log       *logger.Logger

	matrixTimeout time.Duration
	skipMatrix    bool
	background    *sync.WaitGroup

	favorites *Selection
	compare   *Selection
	recent    *RecentSearches

	mu       sync.RWMutex
	flights  []domain.ScoredFlight
	query    *domain.SearchQuery
	currency string
	matrix   []domain.MatrixEntry
	lastUsed time.Time

	// matrixDone is closed when the matrix fetch of the latest search ends
	matrixDone chan struct{}
}

// NewResultsSession creates a session and restores its persisted selections.
// A selection that cannot be restored starts empty.
func NewResultsSession(ctx context.Context, id string, deps SessionDeps) *ResultsSession {
	deps = deps.withDefaults()

	s := &ResultsSession{
		id:        id,
		source:    deps.Source,
		places:    deps.Places,
		suggester: deps.Places,
		clock:     deps.Clock,
		loc:       deps.Location,
		log:       deps.Logger.WithSession(id),

		matrixTimeout: deps.MatrixTimeout,
		skipMatrix:    deps.skipMatrix,
		background:    deps.background,

		favorites: NewSelection(deps.Store, FavoritesKey),
		compare:   NewSelection(deps.Store, CompareKey),
		recent:    NewRecentSearches(deps.Store),
		currency:  domain.DefaultCurrency,
		lastUsed:  deps.Clock.Now(),
	}
	if deps.Autocomplete != nil {
		s.suggester = deps.Autocomplete()
	}

	for _, sel := range []*Selection{s.favorites, s.compare} {
		if err := sel.Load(ctx); err != nil {
			s.log.Warn().Err(err).Msg("selection not restored")
		}
	}
	return s
}

func (d SessionDeps) withDefaults() SessionDeps {
	if d.Clock == nil {
		d.Clock = timeutil.NewRealClock()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Logger == nil {
		d.Logger = logger.Component("session")
	}
	if d.MatrixTimeout <= 0 {
		d.MatrixTimeout = DefaultMatrixTimeout
	}
	if d.background == nil {
		d.background = &sync.WaitGroup{}
	}
	return d
}

// ID returns the session id.
func (s *ResultsSession) ID() string {
	return s.id
}

// Search validates the query, resolves missing codes, fetches offers and
// replaces the working set. The price matrix is fetched in the background
// and never delays the returned view; see Calendar and AwaitCalendar.
//
// Behavior:
//   - Invalid input fails with domain.ErrInvalidRequest before any network call
//   - A search failure wraps domain.ErrSearchUnavailable and keeps the previous working set
//   - A matrix failure is logged and yields an empty calendar
//   - Offers without a positive price never enter the working set
//   - A successful search is recorded in the recent searches
func (s *ResultsSession) Search(ctx context.Context, q domain.SearchQuery) (ResultsView, error) {
	s.touch()

	if err := q.Validate(); err != nil {
		return ResultsView{}, err
	}
	q.Normalize(s.clock.Now().In(s.loc))
	if err := s.resolveCodes(ctx, &q); err != nil {
		return ResultsView{}, err
	}

	flights, err := s.source.Search(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("search failed")
		return ResultsView{}, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}

	priced := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if f.Price > 0 {
			priced = append(priced, f)
		}
	}
	scored := RecalculateScores(priced)

	done := make(chan struct{})
	s.mu.Lock()
	s.flights = scored
	s.query = &q
	s.currency = q.Currency
	s.matrix = nil
	s.matrixDone = done
	s.mu.Unlock()

	if s.skipMatrix {
		close(done)
	} else {
		s.loadMatrix(ctx, q, done)
	}

	s.log.Info().
		Str("origin", q.Origin).
		Str("destination", q.Destination).
		Int("offers", len(flights)).
		Int("kept", len(scored)).
		Msg("search completed")

	if _, err := s.recent.Add(ctx, RecentFromQuery(q)); err != nil {
		s.log.Warn().Err(err).Msg("recent search not saved")
	}

	return s.View(DefaultViewOptions())
}

// loadMatrix fetches the price matrix of q without blocking. The result is
// kept only while done still belongs to the latest search; done is closed
// once the fetch has finished either way.
func (s *ResultsSession) loadMatrix(ctx context.Context, q domain.SearchQuery, done chan struct{}) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.matrixTimeout)

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		defer cancel()
		defer close(done)

		matrix, err := s.source.PriceMatrix(ctx, q)
		if err != nil {
			s.log.Warn().Err(err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("price matrix unavailable")
			return
		}

		s.mu.Lock()
		current := s.matrixDone == done
		if current {
			s.matrix = matrix
		}
		s.mu.Unlock()

		s.log.Debug().Int("matrix_days", len(matrix)).Bool("current", current).Msg("price matrix loaded")
	}()
}

// resolveCodes fills a missing origin or destination code with the first
// autocomplete hit for the free-text city name. Both ends resolve concurrently.
func (s *ResultsSession) resolveCodes(ctx context.Context, q *domain.SearchQuery) error {
	resolve := func(ctx context.Context, code *string, city, label string) error {
		if *code != "" {
			return nil
		}
		if s.places == nil {
			return domain.WrapInvalidRequest("%s code is required", label)
		}
		places, err := s.places.Suggest(ctx, city)
		if err != nil {
			return fmt.Errorf("%w: resolve %s %q: %w", domain.ErrSearchUnavailable, label, city, err)
		}
		if len(places) == 0 {
			return domain.WrapInvalidRequest("unknown %s %q", label, city)
		}
		*code = strings.ToUpper(places[0].Code)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return resolve(gctx, &q.Origin, q.OriginCity, "origin") })
	g.Go(func() error { return resolve(gctx, &q.Destination, q.DestinationCity, "destination") })
	return g.Wait()
}

// View renders the working set with opts. It fails with domain.ErrNoResults
// before the first successful search.
func (s *ResultsSession) View(opts ViewOptions) (ResultsView, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.query == nil {
		return ResultsView{}, domain.ErrNoResults
	}
	if opts.Currency == "" {
		opts.Currency = s.currency
	}
	return BuildView(s.flights, opts), nil
}

// Flight returns one flight of the working set by id.
func (s *ResultsSession) Flight(id string) (domain.ScoredFlight, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.flights {
		if s.flights[i].ID == id {
			return s.flights[i], nil
		}
	}
	return domain.ScoredFlight{}, fmt.Errorf("%w: %s", domain.ErrFlightNotFound, id)
}

// Flights returns a copy of the working set in scoring order.
func (s *ResultsSession) Flights() []domain.ScoredFlight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ScoredFlight, len(s.flights))
	copy(out, s.flights)
	return out
}

// Query returns the last successful query.
func (s *ResultsSession) Query() (domain.SearchQuery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.query == nil {
		return domain.SearchQuery{}, false
	}
	return *s.query, true
}

// Calendar returns the price calendar of the last search with the cheapest
// and the searched departure day marked. It does not wait for a matrix still
// being fetched, so the calendar is empty until the matrix lands.
func (s *ResultsSession) Calendar() ([]domain.CalendarDay, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.query == nil {
		return nil, domain.ErrNoResults
	}
	return BuildCalendar(s.matrix, s.query.DepartDate), nil
}

// AwaitCalendar waits for the price matrix of the last search, or for ctx to
// end, and returns the calendar available at that point.
func (s *ResultsSession) AwaitCalendar(ctx context.Context) ([]domain.CalendarDay, error) {
	s.mu.RLock()
	done := s.matrixDone
	s.mu.RUnlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	return s.Calendar()
}

// CalendarPending reports whether the price matrix of the last search is still being fetched.
func (s *ResultsSession) CalendarPending() bool {
	s.mu.RLock()
	done := s.matrixDone
	s.mu.RUnlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Wait blocks until every background price-matrix fetch has finished.
func (s *ResultsSession) Wait() {
	s.background.Wait()
}

// FavoritesView is the resolved favorites list with the recommended pick.
type FavoritesView struct {
	IDs     []string              `json:"ids"`
	Flights []domain.ScoredFlight `json:"flights"`
	Choice  *domain.ScoredFlight  `json:"choice"`
}

// CompareView is the compare table with the recommended pick.
type CompareView struct {
	CompareTable
	IDs    []string             `json:"ids"`
	Choice *domain.ScoredFlight `json:"choice"`
}

// Favorites returns the favorites selection.
func (s *ResultsSession) Favorites() *Selection {
	return s.favorites
}

// Compare returns the compare selection.
func (s *ResultsSession) Compare() *Selection {
	return s.compare
}

// AddFavorite selects a flight of the working set as favorite.
func (s *ResultsSession) AddFavorite(ctx context.Context, id string) error {
	if _, err := s.Flight(id); err != nil {
		return err
	}
	return s.favorites.Add(ctx, id)
}

// AddCompare selects a flight of the working set for comparison.
func (s *ResultsSession) AddCompare(ctx context.Context, id string) error {
	if _, err := s.Flight(id); err != nil {
		return err
	}
	return s.compare.Add(ctx, id)
}

// FavoritesView resolves the favorites against the working set.
func (s *ResultsSession) FavoritesView() FavoritesView {
	flights := s.favorites.Resolve(s.Flights())
	return FavoritesView{
		IDs:     s.favorites.IDs(),
		Flights: flights,
		Choice:  PickChoice(flights),
	}
}

// CompareView resolves the compare selection and projects it onto dir.
func (s *ResultsSession) CompareView(dir Direction) CompareView {
	flights := s.compare.Resolve(s.Flights())
	return CompareView{
		CompareTable: CompareRows(flights, dir),
		IDs:          s.compare.IDs(),
		Choice:       PickChoice(flights),
	}
}

// RecentSearches lists the searches recorded by this session's store.
func (s *ResultsSession) RecentSearches(ctx context.Context) ([]domain.RecentSearch, error) {
	return s.recent.List(ctx)
}

// Suggest autocompletes a city or airport for this session. A newer call
// supersedes an older in-flight one when the session suggester supports it.
func (s *ResultsSession) Suggest(ctx context.Context, term string) ([]domain.Place, error) {
	s.touch()
	if s.suggester == nil {
		return []domain.Place{}, nil
	}
	return s.suggester.Suggest(ctx, term)
}

// LastUsed returns when the session was last accessed.
func (s *ResultsSession) LastUsed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsed
}

func (s *ResultsSession) touch() {
	now := s.clock.Now()
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}
