package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
)

// newSessionAPI wires the full chain in front of a few routes shaped like the
// results-session API and captures every log entry as JSON.
func newSessionAPI(t *testing.T, config RecoveryConfig) (*echo.Echo, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "test"}, &buf)

	e := echo.New()
	SetupWithConfig(e, log, config)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	sessions := e.Group("/api/v1/sessions")
	sessions.POST("/:id/search", func(c echo.Context) error {
		Logger(c).Info().Msg("search accepted")
		return c.JSON(http.StatusOK, map[string]bool{"calendarPending": true})
	})
	sessions.GET("/:id/flights/:flightId", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("flightId")})
	})
	sessions.GET("/:id/compare", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "no results yet")
	})
	sessions.GET("/:id/calendar", func(c echo.Context) error {
		panic("matrix not ready")
	})
	sessions.GET("/:id/recent", func(c echo.Context) error {
		var recent []string
		_ = recent[3]
		return nil
	})
	return e, &buf
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func entryWithMessage(t *testing.T, entries []map[string]any, msg string) map[string]any {
	t.Helper()
	for _, e := range entries {
		if e["message"] == msg {
			return e
		}
	}
	require.Failf(t, "log entry not found", "message %q in %v", msg, entries)
	return nil
}

// =====================================================
// Request ID Tests
// =====================================================

func TestRequestID_ReusesClientID(t *testing.T) {
	e, buf := newSessionAPI(t, DefaultRecoveryConfig())

	rec := serve(e, http.MethodPost, "/api/v1/sessions/s-42/search", http.Header{RequestIDHeader: {"web-7f3a"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "web-7f3a", rec.Header().Get(RequestIDHeader))
	for _, entry := range logEntries(t, buf) {
		assert.Equal(t, "web-7f3a", entry["request_id"], entry["message"])
	}
}

func TestRequestID_ReplacesUnusableClientID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "missing", id: ""},
		{name: "contains whitespace", id: "search 42"},
		{name: "contains newline", id: "abc\ndef"},
		{name: "non ascii", id: "поиск-1"},
		{name: "too long", id: strings.Repeat("x", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newSessionAPI(t, DefaultRecoveryConfig())
			header := http.Header{}
			if tt.id != "" {
				header[RequestIDHeader] = []string{tt.id}
			}

			rec := serve(e, http.MethodGet, "/api/v1/sessions/s-42/flights/su-1", header)

			got := rec.Header().Get(RequestIDHeader)
			assert.NotEqual(t, tt.id, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "replacement id should be a UUID")
		})
	}
}

func TestLogger_CarriesRequestAndSession(t *testing.T) {
	e, buf := newSessionAPI(t, DefaultRecoveryConfig())

	rec := serve(e, http.MethodPost, "/api/v1/sessions/s-42/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entry := entryWithMessage(t, logEntries(t, buf), "search accepted")
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry["request_id"])
	assert.Equal(t, "s-42", entry["session_id"])
}

func TestLogger_FallsBackToGlobalOutsideChain(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())

	assert.Same(t, logger.Global(), Logger(c))
	assert.Empty(t, GetRequestID(c))
}

// =====================================================
// Access Log Tests
// =====================================================

func TestRequestLogger_SessionRoutes(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		wantRoute   string
		wantStatus  int
		wantLevel   string
		wantSession string
		wantFlight  string
		wantQuery   string
	}{
		{
			name:        "session search",
			method:      http.MethodPost,
			target:      "/api/v1/sessions/s-42/search?currency=RUB",
			wantRoute:   "/api/v1/sessions/:id/search",
			wantStatus:  http.StatusOK,
			wantLevel:   "info",
			wantSession: "s-42",
			wantQuery:   "currency=RUB",
		},
		{
			name:        "flight detail",
			method:      http.MethodGet,
			target:      "/api/v1/sessions/s-42/flights/su-1",
			wantRoute:   "/api/v1/sessions/:id/flights/:flightId",
			wantStatus:  http.StatusOK,
			wantLevel:   "info",
			wantSession: "s-42",
			wantFlight:  "su-1",
		},
		{
			name:        "client error is a warning",
			method:      http.MethodGet,
			target:      "/api/v1/sessions/s-9/compare",
			wantRoute:   "/api/v1/sessions/:id/compare",
			wantStatus:  http.StatusNotFound,
			wantLevel:   "warn",
			wantSession: "s-9",
		},
		{
			name:       "health checks stay at debug",
			method:     http.MethodGet,
			target:     "/health",
			wantRoute:  "/health",
			wantStatus: http.StatusOK,
			wantLevel:  "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := newSessionAPI(t, DefaultRecoveryConfig())

			rec := serve(e, tt.method, tt.target, http.Header{"User-Agent": {"yuvia-web/2.1"}})
			require.Equal(t, tt.wantStatus, rec.Code)

			entry := entryWithMessage(t, logEntries(t, buf), "request")
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.wantRoute, entry["route"])
			assert.Equal(t, strings.SplitN(tt.target, "?", 2)[0], entry["path"])
			assert.Equal(t, float64(tt.wantStatus), entry["status"])
			assert.Equal(t, "yuvia-web/2.1", entry["user_agent"])
			assert.Contains(t, entry, "duration")

			assertOptionalField(t, entry, "session_id", tt.wantSession)
			assertOptionalField(t, entry, "flight_id", tt.wantFlight)
			assertOptionalField(t, entry, "query", tt.wantQuery)
		})
	}
}

func assertOptionalField(t *testing.T, entry map[string]any, key, want string) {
	t.Helper()
	if want == "" {
		assert.NotContains(t, entry, key)
		return
	}
	assert.Equal(t, want, entry[key], key)
}

func TestRequestLogger_ClientIP(t *testing.T) {
	e, buf := newSessionAPI(t, DefaultRecoveryConfig())

	serve(e, http.MethodGet, "/api/v1/sessions/s-42/flights/su-1", http.Header{"X-Real-Ip": {"192.168.1.100"}})

	entry := entryWithMessage(t, logEntries(t, buf), "request")
	assert.Equal(t, "192.168.1.100", entry["client_ip"])
}

// =====================================================
// Recovery Tests
// =====================================================

func TestRecover_PanicInSessionRoute(t *testing.T) {
	e, buf := newSessionAPI(t, DefaultRecoveryConfig())

	var rec *httptest.ResponseRecorder
	require.NotPanics(t, func() {
		rec = serve(e, http.MethodGet, "/api/v1/sessions/s-42/calendar", http.Header{RequestIDHeader: {"cal-1"}})
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", errObj["code"])
	assert.NotContains(t, rec.Body.String(), "matrix not ready", "panic details stay in the log")

	entries := logEntries(t, buf)
	panicEntry := entryWithMessage(t, entries, "panic recovered")
	assert.Equal(t, "error", panicEntry["level"])
	assert.Equal(t, "matrix not ready", panicEntry["panic"])
	assert.Equal(t, "/api/v1/sessions/:id/calendar", panicEntry["route"])
	assert.Equal(t, "s-42", panicEntry["session_id"])
	assert.Equal(t, "cal-1", panicEntry["request_id"])
	stack, _ := panicEntry["stack"].(string)
	assert.Contains(t, stack, "goroutine")

	access := entryWithMessage(t, entries, "request")
	assert.Equal(t, "error", access["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), access["status"])
}

func TestRecover_RuntimeError(t *testing.T) {
	e, buf := newSessionAPI(t, DefaultRecoveryConfig())

	rec := serve(e, http.MethodGet, "/api/v1/sessions/s-42/recent", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	panicEntry := entryWithMessage(t, logEntries(t, buf), "panic recovered")
	assert.Contains(t, panicEntry["panic"], "index out of range")
}

func TestRecoverWithConfig_DisablePrintStack(t *testing.T) {
	e, buf := newSessionAPI(t, RecoveryConfig{DisablePrintStack: true})

	rec := serve(e, http.MethodGet, "/api/v1/sessions/s-42/calendar", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, entryWithMessage(t, logEntries(t, buf), "panic recovered"), "stack")
}

func TestRecover_LeavesNormalRequestsAlone(t *testing.T) {
	e, buf := newSessionAPI(t, DefaultRecoveryConfig())

	rec := serve(e, http.MethodGet, "/api/v1/sessions/s-42/flights/su-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"su-1"}`, rec.Body.String())
	for _, entry := range logEntries(t, buf) {
		assert.NotEqual(t, "panic recovered", entry["message"])
	}
}

// =====================================================
// Metrics Middleware Tests
// =====================================================

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/api/v1/sessions/:id/flights/:flightId", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/sessions/:id/flights/:flightId", "200")
	before := promtest.ToFloat64(counter)

	for _, path := range []string{"/api/v1/sessions/a/flights/1", "/api/v1/sessions/b/flights/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, before+2, promtest.ToFloat64(counter))
}

func TestMetrics_RecordsHandlerErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/boom", "418")
	before := promtest.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, promtest.ToFloat64(counter))
}
