package integration

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/yuvia/flight-results/internal/adapter/http"
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

// ============================================================================
// One-shot search
// ============================================================================

func TestSearch_NormalizesFixtureOffers(t *testing.T) {
	s := NewStack(t)

	resp := s.Do(http.MethodPost, "/api/v1/flights/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	env := Decode[httpAdapter.SearchResultDTO](t, resp)
	require.True(t, env.Success)

	view := env.Data.View
	assert.Equal(t, 3, view.Total, "unpriced and malformed offers are dropped")
	assert.Equal(t, 3, view.Matched)

	byID := make(map[string]domain.ScoredFlight, len(view.Flights))
	for _, f := range view.Flights {
		byID[f.ID] = f
	}
	require.Contains(t, byID, "su-morning")
	require.Contains(t, byID, "dp-night")
	require.Contains(t, byID, "s7-transfer")
	assert.NotContains(t, byID, "free-offer")

	su := byID["su-morning"]
	assert.Equal(t, "Аэрофлот", su.AirlineName, "dictionary keys are matched case-insensitively")
	assert.Equal(t, "Санкт-Петербург", su.DestCity)
	assert.Equal(t, "RUB", su.Currency)
	assert.True(t, su.HasReturn())

	assert.Equal(t, 4100.0, byID["dp-night"].Price, "string prices are parsed")
	assert.Equal(t, 5600.0, byID["s7-transfer"].Price, "price objects are unwrapped")
	assert.Equal(t, 1, byID["s7-transfer"].Transfers)

	for _, f := range view.Flights {
		assert.Positive(t, f.Price, f.ID)
		assert.GreaterOrEqual(t, f.Rating, 6.0, f.ID)
		assert.LessOrEqual(t, f.Rating, 9.7, f.ID)
		if f.Outbound != nil && f.Return != nil {
			assert.Equal(t, f.Outbound.DurationMinutes+f.Return.DurationMinutes, f.DurationMinutes, f.ID)
			assert.Equal(t, f.Outbound.Transfers+f.Return.Transfers, f.Transfers, f.ID)
		}
	}

	assert.Equal(t, 4100.0, view.Summary.Min)
	assert.Equal(t, "RUB", view.Summary.Currency)
	assert.Equal(t, 3, view.Summary.Count)

	params := s.Upstream.LastSearchParams()
	assert.Equal(t, "MOW", params["origin"])
	assert.Equal(t, "LED", params["destination"])
	assert.Equal(t, "no", params["oneway"])
	assert.Equal(t, "2030-06-05", params["ret"])
	assert.Equal(t, "RUB", params["currency"])
}

func TestSearch_TopPicks(t *testing.T) {
	s := NewStack(t)

	resp := s.Do(http.MethodPost, "/api/v1/flights/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	view := Decode[httpAdapter.SearchResultDTO](t, resp).Data.View

	require.NotEmpty(t, view.Top)
	assert.LessOrEqual(t, len(view.Top), 3)

	seen := map[string]bool{}
	var cheapest *domain.ScoredFlight
	for i := range view.Top {
		pick := view.Top[i]
		assert.False(t, seen[pick.ID], "duplicate pick %s", pick.ID)
		seen[pick.ID] = true
		assert.True(t, pick.IsTop)
		if pick.TopType == domain.TopCheap {
			cheapest = &view.Top[i]
		}
	}
	if cheapest != nil {
		assert.Equal(t, "dp-night", cheapest.ID)
	}

	flagged := 0
	for _, f := range view.Flights {
		if f.IsTop {
			flagged++
			assert.True(t, seen[f.ID])
		}
	}
	assert.Equal(t, len(view.Top), flagged)
}

func TestSession_Calendar(t *testing.T) {
	s := NewStack(t)
	base := "/api/v1/sessions/" + s.CreateSession(t)

	resp := s.Do(http.MethodPost, base+"/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	resp = s.Do(http.MethodGet, base+"/calendar", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	days := Decode[[]domain.CalendarDay](t, resp).Data

	require.Len(t, days, 5, "unpriced matrix days are dropped")
	dates := make([]string, 0, len(days))
	cheapest := []string{}
	for _, d := range days {
		dates = append(dates, d.Date)
		if d.Cheapest {
			cheapest = append(cheapest, d.Date)
		}
		assert.Equal(t, d.Date == "2030-06-01", d.Selected, d.Date)
		assert.Equal(t, "RUB", d.Currency)
	}
	assert.Equal(t, []string{"2030-05-30", "2030-05-31", "2030-06-01", "2030-06-02", "2030-06-04"}, dates)
	assert.Equal(t, []string{"2030-06-01", "2030-06-02"}, cheapest)
}

func TestSession_SearchDoesNotWaitForSlowMatrix(t *testing.T) {
	s := NewStack(t)
	release := s.Upstream.HoldMatrix(t)
	base := "/api/v1/sessions/" + s.CreateSession(t)

	start := time.Now()
	resp := s.Do(http.MethodPost, base+"/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Less(t, time.Since(start), time.Second)

	data := Decode[httpAdapter.SearchResultDTO](t, resp).Data
	assert.Equal(t, 3, data.View.Total)
	assert.True(t, data.CalendarPending)

	time.AfterFunc(20*time.Millisecond, release)
	resp = s.Do(http.MethodGet, base+"/calendar", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Len(t, Decode[[]domain.CalendarDay](t, resp).Data, 5)
	assert.Equal(t, 1, s.Upstream.MatrixCalls())
}

func TestSearch_OneShotSkipsMatrix(t *testing.T) {
	s := NewStack(t)

	resp := s.Do(http.MethodPost, "/api/v1/flights/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.False(t, Decode[httpAdapter.SearchResultDTO](t, resp).Data.CalendarPending)
	assert.Zero(t, s.Upstream.MatrixCalls())
}

func TestSearch_WithView(t *testing.T) {
	tests := []struct {
		name    string
		view    map[string]any
		wantIDs []string
	}{
		{
			name:    "no night departures",
			view:    map[string]any{"triggers": []string{"no_night_dep"}, "sort": "price_asc"},
			wantIDs: []string{"s7-transfer", "su-morning"},
		},
		{
			name:    "direct only",
			view:    map[string]any{"triggers": []string{"direct_only"}, "sort": "price_asc"},
			wantIDs: []string{"dp-night", "su-morning"},
		},
		{
			name:    "airline filter",
			view:    map[string]any{"airlines": []string{"s7"}},
			wantIDs: []string{"s7-transfer"},
		},
		{
			name:    "price ceiling",
			view:    map[string]any{"priceMax": 6000, "sort": "price_desc"},
			wantIDs: []string{"s7-transfer", "dp-night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(t)
			body := RoundTripBody()
			body["view"] = tt.view

			resp := s.Do(http.MethodPost, "/api/v1/flights/search", body)
			require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
			view := Decode[httpAdapter.SearchResultDTO](t, resp).Data.View

			ids := make([]string, 0, len(view.Flights))
			for _, f := range view.Flights {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, 3, view.Total)
		})
	}
}

func TestSearch_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int
	}{
		{name: "server error is retried", status: http.StatusServiceUnavailable, wantCalls: 2},
		{name: "client error is not retried", status: http.StatusBadRequest, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(t)
			s.Upstream.FailSearch(tt.status)

			resp := s.Do(http.MethodPost, "/api/v1/flights/search", RoundTripBody())
			assert.Equal(t, http.StatusServiceUnavailable, resp.Code, string(resp.Body))
			env := Decode[any](t, resp)
			require.NotNil(t, env.Error)
			assert.Equal(t, "SEARCH_UNAVAILABLE", env.Error.Code)
			assert.Equal(t, tt.wantCalls, s.Upstream.SearchCalls())
		})
	}
}

func TestSession_MatrixFailureKeepsResults(t *testing.T) {
	s := NewStack(t)
	s.Upstream.FailMatrix(http.StatusInternalServerError)

	base := "/api/v1/sessions/" + s.CreateSession(t)

	resp := s.Do(http.MethodPost, base+"/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, 3, Decode[httpAdapter.SearchResultDTO](t, resp).Data.View.Total)

	resp = s.Do(http.MethodGet, base+"/calendar", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Empty(t, Decode[[]domain.CalendarDay](t, resp).Data)

	resp = s.Do(http.MethodPost, base+"/view", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, 3, Decode[usecase.ResultsView](t, resp).Data.Matched)
}

func TestSearch_ValidationNeverCallsUpstream(t *testing.T) {
	s := NewStack(t)

	body := RoundTripBody()
	delete(body, "returnDate")
	resp := s.Do(http.MethodPost, "/api/v1/flights/search", body)
	assert.Equal(t, http.StatusBadRequest, resp.Code, string(resp.Body))
	assert.Zero(t, s.Upstream.SearchCalls())
	assert.Zero(t, s.Upstream.MatrixCalls())
}

func TestSearch_ResolvesCityNameThroughPlaces(t *testing.T) {
	s := NewStack(t)

	body := RoundTripBody()
	body["destination"] = ""
	body["destinationCity"] = "Казань"
	resp := s.Do(http.MethodPost, "/api/v1/flights/search", body)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	assert.Equal(t, "KZN", s.Upstream.LastSearchParams()["destination"])
	assert.Equal(t, 1, s.Upstream.PlacesCalls())
}

// ============================================================================
// Sessions
// ============================================================================

func TestSession_FullFlow(t *testing.T) {
	s := NewStack(t)
	id := s.CreateSession(t)
	base := "/api/v1/sessions/" + id

	// Before the first search
	resp := s.Do(http.MethodPost, base+"/view", map[string]any{})
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Search
	resp = s.Do(http.MethodPost, base+"/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, id, Decode[httpAdapter.SearchResultDTO](t, resp).Data.SessionID)

	// Re-filter the working set without another upstream call
	resp = s.Do(http.MethodPost, base+"/view", map[string]any{"stops": "0", "sort": "price_asc"})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	view := Decode[usecase.ResultsView](t, resp).Data
	require.Len(t, view.Flights, 2)
	assert.Equal(t, "dp-night", view.Flights[0].ID)
	assert.Equal(t, 1, view.ActiveFilters)
	assert.Equal(t, 1, s.Upstream.SearchCalls())

	// Single flight
	resp = s.Do(http.MethodGet, base+"/flights/s7-transfer", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	detail := Decode[httpAdapter.FlightDetailDTO](t, resp).Data
	assert.Equal(t, "S7 Airlines", detail.AirlineName)
	assert.False(t, detail.Favorite)

	resp = s.Do(http.MethodGet, base+"/flights/free-offer", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Favorites
	resp = s.Do(http.MethodPut, base+"/favorites/s7-transfer", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	resp = s.Do(http.MethodPut, base+"/favorites/dp-night", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	favorites := Decode[usecase.FavoritesView](t, resp).Data
	assert.ElementsMatch(t, []string{"s7-transfer", "dp-night"}, favorites.IDs)
	assert.Len(t, favorites.Flights, 2)
	require.NotNil(t, favorites.Choice)

	resp = s.Do(http.MethodGet, base+"/flights/s7-transfer", nil)
	assert.True(t, Decode[httpAdapter.FlightDetailDTO](t, resp).Data.Favorite)

	resp = s.Do(http.MethodDelete, base+"/favorites/s7-transfer", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, []string{"dp-night"}, Decode[usecase.FavoritesView](t, resp).Data.IDs)

	// Compare both directions
	for _, fid := range []string{"su-morning", "s7-transfer"} {
		resp = s.Do(http.MethodPut, base+"/compare/"+fid, nil)
		require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	}
	resp = s.Do(http.MethodGet, base+"/compare?direction=return", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	compare := Decode[usecase.CompareView](t, resp).Data
	assert.Equal(t, usecase.DirectionReturn, compare.Direction)
	assert.True(t, compare.HasReturn)
	require.Len(t, compare.Rows, 2)
	for _, row := range compare.Rows {
		assert.Equal(t, "LED", row.OriginAirport, "return rows start at the destination")
	}

	resp = s.Do(http.MethodDelete, base+"/compare", nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// Calendar and recent searches
	resp = s.Do(http.MethodGet, base+"/calendar", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Len(t, Decode[[]domain.CalendarDay](t, resp).Data, 5)

	resp = s.Do(http.MethodGet, base+"/recent", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	recent := Decode[httpAdapter.RecentDTO](t, resp).Data.Searches
	require.Len(t, recent, 1)
	assert.Equal(t, "MOW", recent[0].OriginIATA)
	assert.Equal(t, "2030-06-01", recent[0].Depart)
}

func TestSession_FailedSearchKeepsWorkingSet(t *testing.T) {
	s := NewStack(t)
	id := s.CreateSession(t)
	base := "/api/v1/sessions/" + id

	resp := s.Do(http.MethodPost, base+"/search", RoundTripBody())
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	s.Upstream.FailSearch(http.StatusBadGateway)
	resp = s.Do(http.MethodPost, base+"/search", RoundTripBody())
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	resp = s.Do(http.MethodPost, base+"/view", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, 3, Decode[usecase.ResultsView](t, resp).Data.Total)
}

func TestSession_Isolation(t *testing.T) {
	s := NewStack(t)
	first := s.CreateSession(t)
	second := s.CreateSession(t)

	for _, id := range []string{first, second} {
		resp := s.Do(http.MethodPost, "/api/v1/sessions/"+id+"/search", RoundTripBody())
		require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	}

	resp := s.Do(http.MethodPut, "/api/v1/sessions/"+first+"/favorites/su-morning", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	resp = s.Do(http.MethodGet, "/api/v1/sessions/"+second+"/favorites", nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Empty(t, Decode[usecase.FavoritesView](t, resp).Data.IDs)
}

// ============================================================================
// Autocomplete, dictionaries, health
// ============================================================================

func TestPlaces_MapsAndCaches(t *testing.T) {
	s := NewStack(t)
	path := "/api/v1/places?term=" + url.QueryEscape("Каз")

	for i := 0; i < 2; i++ {
		resp := s.Do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
		places := Decode[httpAdapter.PlacesDTO](t, resp).Data.Places
		require.Len(t, places, 2, "entries without a code are dropped")
		assert.Equal(t, domain.Place{City: "Казань", Code: "KZN", Country: "Россия"}, places[0])
		assert.Equal(t, domain.Place{City: "Кызылорда", Code: "KZO", Country: "KZ"}, places[1])
	}
	assert.Equal(t, 1, s.Upstream.PlacesCalls(), "the second lookup is served from cache")

	resp := s.Do(http.MethodGet, "/api/v1/places?term="+url.QueryEscape("К"), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, Decode[httpAdapter.PlacesDTO](t, resp).Data.Places)
	assert.Equal(t, 1, s.Upstream.PlacesCalls(), "short terms never reach the API")
}

func TestSessionPlaces(t *testing.T) {
	s := NewStack(t)
	id := s.CreateSession(t)

	resp := s.Do(http.MethodGet, "/api/v1/sessions/"+id+"/places?term="+url.QueryEscape("Каз"), nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Len(t, Decode[httpAdapter.PlacesDTO](t, resp).Data.Places, 2)
}

func TestHealthAndDictionaryStatus(t *testing.T) {
	tests := []struct {
		name      string
		opts      []StackOption
		wantState string
		wantSU    string
	}{
		{name: "loaded", wantState: "fresh", wantSU: "Аэрофлот"},
		{name: "not loaded", opts: []StackOption{WithoutDictionaryLoad()}, wantState: "empty", wantSU: "SU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(t, tt.opts...)

			resp := s.Do(http.MethodGet, "/health", nil)
			require.Equal(t, http.StatusOK, resp.Code)
			var health map[string]any
			require.NoError(t, json.Unmarshal(resp.Body, &health))
			assert.Equal(t, "ok", health["status"])
			assert.Equal(t, tt.wantState, health["dictionaries"])

			resp = s.Do(http.MethodPost, "/api/v1/flights/search", RoundTripBody())
			require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
			for _, f := range Decode[httpAdapter.SearchResultDTO](t, resp).Data.View.Flights {
				if f.ID == "su-morning" {
					assert.Equal(t, tt.wantSU, f.AirlineName)
				}
			}
		})
	}
}

func TestAssistant_Dialogue(t *testing.T) {
	s := NewStack(t)

	resp := s.Do(http.MethodPost, "/api/v1/assistant", map[string]any{"text": "хочу на море"})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	reply := Decode[httpAdapter.AssistantDTO](t, resp).Data
	assert.Equal(t, usecase.StepClarifyFrom, reply.Conversation.Step)

	resp = s.Do(http.MethodPost, "/api/v1/assistant", map[string]any{
		"conversation": reply.Conversation,
		"text":         "Из Казани в июне",
	})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	reply = Decode[httpAdapter.AssistantDTO](t, resp).Data
	assert.Equal(t, usecase.StepSummary, reply.Conversation.Step)
	require.NotNil(t, reply.Ideas)
	assert.Contains(t, reply.IdeasParams, "mood=sea")
}
