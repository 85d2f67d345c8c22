// Package integration provides helpers and integration tests for the flight
// results service. The tests run the real upstream client, dictionary cache,
// places client, session registry and HTTP handlers against a fake search
// API that serves the JSON fixtures from test/testdata.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/yuvia/flight-results/internal/adapter/dictionary"
	httpAdapter "github.com/yuvia/flight-results/internal/adapter/http"
	"github.com/yuvia/flight-results/internal/adapter/places"
	"github.com/yuvia/flight-results/internal/adapter/storage"
	"github.com/yuvia/flight-results/internal/adapter/upstream"
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/ratelimit"
	"github.com/yuvia/flight-results/internal/infrastructure/retry"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
	"github.com/yuvia/flight-results/internal/usecase"
	"github.com/yuvia/flight-results/test/testutil"
)

// Now is the fixed clock of the stack; the fixtures depart in June 2030.
var Now = time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)

// ============================================================================
// Fake upstream
// ============================================================================

// Upstream is a fake search API. Each endpoint serves its fixture until a
// status override is set.
type Upstream struct {
	Server *httptest.Server

	searchCalls atomic.Int32
	matrixCalls atomic.Int32
	dictCalls   atomic.Int32
	placesCalls atomic.Int32

	mu           sync.Mutex
	searchStatus int
	matrixStatus int
	dictStatus   int
	searchDelay  time.Duration
	matrixGate   chan struct{}
	lastSearch   map[string]string

	search, matrix, dicts, places []byte
}

// NewUpstream starts a fake upstream serving the testdata fixtures.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{
		search: testutil.LoadTestJSON(t, "search_mow_led.json"),
		matrix: testutil.LoadTestJSON(t, "matrix_mow_led.json"),
		dicts:  testutil.LoadTestJSON(t, "dictionaries.json"),
		places: testutil.LoadTestJSON(t, "places_kaz.json"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		u.searchCalls.Add(1)
		u.mu.Lock()
		status, delay := u.searchStatus, u.searchDelay
		u.lastSearch = flatten(r)
		u.mu.Unlock()
		if delay > 0 {
			time.Sleep(delay)
		}
		u.reply(w, status, u.search)
	})
	mux.HandleFunc("/api/matrix", func(w http.ResponseWriter, r *http.Request) {
		u.matrixCalls.Add(1)
		u.mu.Lock()
		status, gate := u.matrixStatus, u.matrixGate
		u.mu.Unlock()
		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		u.reply(w, status, u.matrix)
	})
	mux.HandleFunc("/api/dicts", func(w http.ResponseWriter, r *http.Request) {
		u.dictCalls.Add(1)
		u.reply(w, u.status(&u.dictStatus), u.dicts)
	})
	mux.HandleFunc("/places", func(w http.ResponseWriter, r *http.Request) {
		u.placesCalls.Add(1)
		u.reply(w, 0, u.places)
	})

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Server.Close)
	return u
}

func (u *Upstream) status(field *int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return *field
}

func (u *Upstream) reply(w http.ResponseWriter, status int, body []byte) {
	if status != 0 && status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func flatten(r *http.Request) map[string]string {
	out := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// FailSearch makes /api/search answer with status; 0 restores the fixture.
func (u *Upstream) FailSearch(status int) {
	u.mu.Lock()
	u.searchStatus = status
	u.mu.Unlock()
}

// FailMatrix makes /api/matrix answer with status; 0 restores the fixture.
func (u *Upstream) FailMatrix(status int) {
	u.mu.Lock()
	u.matrixStatus = status
	u.mu.Unlock()
}

// FailDictionaries makes /api/dicts answer with status; 0 restores the fixture.
func (u *Upstream) FailDictionaries(status int) {
	u.mu.Lock()
	u.dictStatus = status
	u.mu.Unlock()
}

// DelaySearch holds every /api/search response for d.
func (u *Upstream) DelaySearch(d time.Duration) {
	u.mu.Lock()
	u.searchDelay = d
	u.mu.Unlock()
}

// HoldMatrix holds every /api/matrix response until the returned release
// func is called. Release is idempotent and also runs on test cleanup.
func (u *Upstream) HoldMatrix(t *testing.T) (release func()) {
	t.Helper()
	gate := make(chan struct{})
	u.mu.Lock()
	u.matrixGate = gate
	u.mu.Unlock()
	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }
	t.Cleanup(release)
	return release
}

// LastSearchParams returns the query parameters of the latest /api/search call.
func (u *Upstream) LastSearchParams() map[string]string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastSearch
}

func (u *Upstream) SearchCalls() int { return int(u.searchCalls.Load()) }
func (u *Upstream) MatrixCalls() int { return int(u.matrixCalls.Load()) }
func (u *Upstream) DictCalls() int   { return int(u.dictCalls.Load()) }
func (u *Upstream) PlacesCalls() int { return int(u.placesCalls.Load()) }

// ============================================================================
// Application stack
// ============================================================================

// Stack is the wired application over a fake upstream.
type Stack struct {
	Upstream     *Upstream
	Client       *upstream.Client
	Dictionaries *dictionary.Cache
	Places       *places.Client
	Sessions     *usecase.SessionRegistry
	Store        domain.StateStore
	Clock        *timeutil.MockClock
	Echo         *echo.Echo
}

// StackOption customizes NewStack.
type StackOption func(*stackConfig)

type stackConfig struct {
	store    domain.StateStore
	upstream *Upstream
	skipLoad bool
}

// WithStore replaces the default memory store, e.g. with a Redis store.
func WithStore(store domain.StateStore) StackOption {
	return func(c *stackConfig) { c.store = store }
}

// WithUpstream reuses an existing fake upstream.
func WithUpstream(u *Upstream) StackOption {
	return func(c *stackConfig) { c.upstream = u }
}

// WithoutDictionaryLoad leaves the dictionary cache empty at startup.
func WithoutDictionaryLoad() StackOption {
	return func(c *stackConfig) { c.skipLoad = true }
}

// fastRetry keeps failure tests quick.
var fastRetry = retry.UpstreamConfig.
	WithMaxAttempts(2).
	WithInitialDelay(time.Millisecond).
	WithMaxDelay(5 * time.Millisecond)

// NewStack wires the service the way cmd/server does.
func NewStack(t *testing.T, opts ...StackOption) *Stack {
	t.Helper()
	cfg := &stackConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.upstream == nil {
		cfg.upstream = NewUpstream(t)
	}
	if cfg.store == nil {
		cfg.store = storage.NewMemoryStore()
	}

	clock := timeutil.NewMockClock(Now)
	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL: cfg.upstream.Server.URL,
		Timeout: 2 * time.Second,
		Retry:   fastRetry,
	},
		upstream.WithLimiter(ratelimit.NewEndpointLimiter(ratelimit.Config{RequestsPerSecond: 1000, Burst: 1000})),
		upstream.WithNormalizer(upstream.NewNormalizer(nil, upstream.DefaultLinkPolicy(), time.UTC)),
		upstream.WithLogger(logger.Nop()),
	)

	dicts := dictionary.NewCache(client, storage.WithNamespace(cfg.store, "dict"), clock, time.Hour)
	if !cfg.skipLoad {
		require.NoError(t, dicts.Load(context.Background()))
	}
	client.UseResolver(dicts)

	placesClient, err := places.NewClient(places.Config{
		URL:       cfg.upstream.Server.URL + "/places",
		Locale:    "ru",
		CacheSize: 16,
		Timeout:   time.Second,
		Limit:     8,
	}, nil)
	require.NoError(t, err)

	store := cfg.store
	sessions := usecase.NewSessionRegistry(usecase.SessionDeps{
		Source: client,
		Places: placesClient,
		Autocomplete: func() domain.PlaceSuggester {
			return places.NewSession(placesClient)
		},
		Clock:    clock,
		Location: time.UTC,
		Logger:   logger.Nop(),
	}, func(id string) domain.StateStore {
		return storage.WithNamespace(store, "session:"+id)
	}, 30*time.Minute)
	t.Cleanup(sessions.Wait)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpAdapter.RegisterRoutes(e, httpAdapter.NewFlightHandler(httpAdapter.HandlerConfig{
		Sessions:        sessions,
		Places:          placesClient,
		Dictionaries:    dicts,
		DefaultCurrency: "RUB",
		Clock:           clock,
	}))

	return &Stack{
		Upstream:     cfg.upstream,
		Client:       client,
		Dictionaries: dicts,
		Places:       placesClient,
		Sessions:     sessions,
		Store:        store,
		Clock:        clock,
		Echo:         e,
	}
}

// ============================================================================
// HTTP helpers
// ============================================================================

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Envelope is the standard response wrapper with a typed payload.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// Do executes a request against the stack's router.
func (s *Stack) Do(method, path string, body any) Response {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return Response{Code: rec.Code, Body: rec.Body.Bytes(), Headers: rec.Header()}
}

// Decode parses a response envelope.
func Decode[T any](t *testing.T, r Response) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	require.NoError(t, json.Unmarshal(r.Body, &env), string(r.Body))
	return env
}

// CreateSession creates a results session and returns its id.
func (s *Stack) CreateSession(t *testing.T) string {
	t.Helper()
	resp := s.Do(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Body))
	env := Decode[httpAdapter.SessionDTO](t, resp)
	require.NotEmpty(t, env.Data.ID)
	return env.Data.ID
}

// RoundTripBody is a MOW to LED round trip matching the fixtures.
func RoundTripBody() map[string]any {
	return map[string]any{
		"origin":      "MOW",
		"destination": "LED",
		"departDate":  "2030-06-01",
		"returnDate":  "2030-06-05",
		"adults":      1,
	}
}

// RoundTripQuery is RoundTripBody as a domain query.
func RoundTripQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Origin:      "MOW",
		Destination: "LED",
		DepartDate:  "2030-06-01",
		ReturnDate:  "2030-06-05",
		Adults:      1,
		Currency:    "RUB",
	}
}
