package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yuvia/flight-results/internal/adapter/dictionary"
	"github.com/yuvia/flight-results/internal/adapter/http/response"
	"github.com/yuvia/flight-results/internal/adapter/storage"
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
	"github.com/yuvia/flight-results/internal/usecase"
)

// DictionaryReporter reports the state of the name dictionaries.
type DictionaryReporter interface {
	Status() dictionary.Status
}

// HandlerConfig holds the collaborators of a FlightHandler.
type HandlerConfig struct {
	Sessions *usecase.SessionRegistry

	// Places serves the stateless autocomplete endpoint; nil returns no suggestions
	Places domain.PlaceSuggester

	// Dictionaries is optional; without it the status endpoint reports an empty cache
	Dictionaries DictionaryReporter

	// DefaultCurrency applies to searches that name no currency
	DefaultCurrency string

	Clock timeutil.Clock
}

// FlightHandler handles HTTP requests for the flight results endpoints.
type FlightHandler struct {
	sessions        *usecase.SessionRegistry
	places          domain.PlaceSuggester
	dictionaries    DictionaryReporter
	defaultCurrency string
	clock           timeutil.Clock
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(cfg HandlerConfig) *FlightHandler {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = domain.DefaultCurrency
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}
	return &FlightHandler{
		sessions:        cfg.Sessions,
		places:          cfg.Places,
		dictionaries:    cfg.Dictionaries,
		defaultCurrency: cfg.DefaultCurrency,
		clock:           cfg.Clock,
	}
}

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c, h.clock.Now(), h.dictionaryState())
}

func (h *FlightHandler) dictionaryState() string {
	if h.dictionaries == nil {
		return ""
	}
	status := h.dictionaries.Status()
	switch {
	case status.Fresh:
		return "fresh"
	case status.Loaded:
		return "stale"
	default:
		return "empty"
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary One-shot search
// @Description Searches, scores and filters flights without keeping a session. Selections are not persisted.
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search criteria"
// @Success 200 {object} SwaggerSearchEnvelope
// @Failure 400 {object} SwaggerErrorEnvelope "Validation error"
// @Failure 503 {object} SwaggerErrorEnvelope "Search unavailable"
// @Failure 504 {object} SwaggerErrorEnvelope "Gateway timeout"
// @Router /flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	session := h.sessions.Ephemeral(c.Request().Context(), storage.NewMemoryStore())
	return h.runSearch(c, session, &req, "")
}

// CreateSession handles POST /api/v1/sessions
//
// @Summary Create a results session
// @Description Sessions keep the working set, favorites, compare list and recent searches between requests.
// @Tags sessions
// @Produce json
// @Success 201 {object} SwaggerSessionEnvelope
// @Router /sessions [post]
func (h *FlightHandler) CreateSession(c echo.Context) error {
	session := h.sessions.Create(c.Request().Context())
	return response.Created(c, SessionDTO{ID: session.ID()})
}

// SessionSearch handles POST /api/v1/sessions/:id/search
//
// @Summary Search in a session
// @Description Replaces the working set of the session. On failure the previous results are kept.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SearchRequest true "Search criteria"
// @Success 200 {object} SwaggerSearchEnvelope
// @Failure 400 {object} SwaggerErrorEnvelope "Validation error"
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Failure 503 {object} SwaggerErrorEnvelope "Search unavailable"
// @Router /sessions/{id}/search [post]
func (h *FlightHandler) SessionSearch(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}
	return h.runSearch(c, session, &req, session.ID())
}

func (h *FlightHandler) runSearch(c echo.Context, session *usecase.ResultsSession, req *SearchRequest, sessionID string) error {
	view, err := session.Search(c.Request().Context(), ToSearchQuery(req, h.defaultCurrency))
	if err != nil {
		return handleError(c, err)
	}
	if req.View != nil {
		if view, err = session.View(ToViewOptions(req.View)); err != nil {
			return handleError(c, err)
		}
	}

	query, _ := session.Query()
	return response.OK(c, SearchResultDTO{
		SessionID:       sessionID,
		Query:           query,
		View:            view,
		CalendarPending: session.CalendarPending(),
	})
}

// SessionView handles POST /api/v1/sessions/:id/view
//
// @Summary Re-filter the working set
// @Description Applies filters, triggers, trip style and sort to the last search results without a new search.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ViewRequest true "View options"
// @Success 200 {object} SwaggerViewEnvelope
// @Failure 400 {object} SwaggerErrorEnvelope "Validation error"
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Failure 409 {object} SwaggerErrorEnvelope "No search yet"
// @Router /sessions/{id}/view [post]
func (h *FlightHandler) SessionView(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}

	var req ViewRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	view, err := session.View(ToViewOptions(&req))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// GetFlight handles GET /api/v1/sessions/:id/flights/:flightId
//
// @Summary Flight details
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param flightId path string true "Flight ID"
// @Success 200 {object} SwaggerFlightEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session or flight"
// @Router /sessions/{id}/flights/{flightId} [get]
func (h *FlightHandler) GetFlight(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	flight, err := session.Flight(c.Param("flightId"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToFlightDetail(flight, session))
}

// Calendar handles GET /api/v1/sessions/:id/calendar
//
// @Summary Price calendar
// @Description Lowest prices around the searched departure date. Waits for a price matrix still being fetched; empty when it was unavailable.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SwaggerCalendarEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Failure 409 {object} SwaggerErrorEnvelope "No search yet"
// @Router /sessions/{id}/calendar [get]
func (h *FlightHandler) Calendar(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	days, err := session.AwaitCalendar(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, days)
}

// ListFavorites handles GET /api/v1/sessions/:id/favorites
//
// @Summary Favorites with the recommended pick
// @Tags selections
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SwaggerFavoritesEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/favorites [get]
func (h *FlightHandler) ListFavorites(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, session.FavoritesView())
}

// AddFavorite handles PUT /api/v1/sessions/:id/favorites/:flightId
//
// @Summary Add a favorite
// @Tags selections
// @Produce json
// @Param id path string true "Session ID"
// @Param flightId path string true "Flight ID"
// @Success 200 {object} SwaggerFavoritesEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session or flight"
// @Router /sessions/{id}/favorites/{flightId} [put]
func (h *FlightHandler) AddFavorite(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := session.AddFavorite(c.Request().Context(), c.Param("flightId")); err != nil {
		return handleError(c, err)
	}
	return response.OK(c, session.FavoritesView())
}

// RemoveFavorite handles DELETE /api/v1/sessions/:id/favorites/:flightId
//
// @Summary Remove a favorite
// @Tags selections
// @Produce json
// @Param id path string true "Session ID"
// @Param flightId path string true "Flight ID"
// @Success 200 {object} SwaggerFavoritesEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/favorites/{flightId} [delete]
func (h *FlightHandler) RemoveFavorite(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := session.Favorites().Remove(c.Request().Context(), c.Param("flightId")); err != nil {
		return handleError(c, err)
	}
	return response.OK(c, session.FavoritesView())
}

// ClearFavorites handles DELETE /api/v1/sessions/:id/favorites
//
// @Summary Clear favorites
// @Tags selections
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/favorites [delete]
func (h *FlightHandler) ClearFavorites(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := session.Favorites().Clear(c.Request().Context()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// ListCompare handles GET /api/v1/sessions/:id/compare
//
// @Summary Compare table
// @Description Side-by-side rows for the outbound or return direction with the recommended pick.
// @Tags selections
// @Produce json
// @Param id path string true "Session ID"
// @Param direction query string false "outbound (default) or return"
// @Success 200 {object} SwaggerCompareEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/compare [get]
func (h *FlightHandler) ListCompare(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, session.CompareView(usecase.ParseDirection(c.QueryParam("direction"))))
}

// AddCompare handles PUT /api/v1/sessions/:id/compare/:flightId
//
// @Summary Add a flight to compare
// @Tags selections
// @Produce json
// @Param id path string true "Session ID"
// @Param flightId path string true "Flight ID"
// @Success 200 {object} SwaggerCompareEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session or flight"
// @Router /sessions/{id}/compare/{flightId} [put]
func (h *FlightHandler) AddCompare(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := session.AddCompare(c.Request().Context(), c.Param("flightId")); err != nil {
		return handleError(c, err)
	}
	return response.OK(c, session.CompareView(usecase.DirectionOutbound))
}

// RemoveCompare handles DELETE /api/v1/sessions/:id/compare/:flightId
//
// @Summary Remove a flight from compare
// @Tags selections
// @Produce json
// @Param id path string true "Session ID"
// @Param flightId path string true "Flight ID"
// @Success 200 {object} SwaggerCompareEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/compare/{flightId} [delete]
func (h *FlightHandler) RemoveCompare(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := session.Compare().Remove(c.Request().Context(), c.Param("flightId")); err != nil {
		return handleError(c, err)
	}
	return response.OK(c, session.CompareView(usecase.DirectionOutbound))
}

// ClearCompare handles DELETE /api/v1/sessions/:id/compare
//
// @Summary Clear the compare list
// @Tags selections
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/compare [delete]
func (h *FlightHandler) ClearCompare(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := session.Compare().Clear(c.Request().Context()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// RecentSearches handles GET /api/v1/sessions/:id/recent
//
// @Summary Recent searches
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SwaggerRecentEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Router /sessions/{id}/recent [get]
func (h *FlightHandler) RecentSearches(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	searches, err := session.RecentSearches(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, RecentDTO{Searches: searches})
}

// SessionPlaces handles GET /api/v1/sessions/:id/places
//
// @Summary Session autocomplete
// @Description A newer term supersedes an in-flight one, which then answers 409.
// @Tags places
// @Produce json
// @Param id path string true "Session ID"
// @Param term query string true "City or airport prefix"
// @Success 200 {object} SwaggerPlacesEnvelope
// @Failure 404 {object} SwaggerErrorEnvelope "Unknown session"
// @Failure 409 {object} SwaggerErrorEnvelope "Superseded"
// @Router /sessions/{id}/places [get]
func (h *FlightHandler) SessionPlaces(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return handleError(c, err)
	}
	term := strings.TrimSpace(c.QueryParam("term"))
	places, err := session.Suggest(c.Request().Context(), term)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, PlacesDTO{Term: term, Places: nonNilPlaces(places)})
}

// Places handles GET /api/v1/places
//
// @Summary Autocomplete
// @Tags places
// @Produce json
// @Param term query string true "City or airport prefix"
// @Success 200 {object} SwaggerPlacesEnvelope
// @Failure 503 {object} SwaggerErrorEnvelope "Autocomplete unavailable"
// @Router /places [get]
func (h *FlightHandler) Places(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("term"))
	if h.places == nil {
		return response.OK(c, PlacesDTO{Term: term, Places: []domain.Place{}})
	}
	places, err := h.places.Suggest(c.Request().Context(), term)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, PlacesDTO{Term: term, Places: nonNilPlaces(places)})
}

// DictionaryStatus handles GET /api/v1/dictionaries/status
//
// @Summary Dictionary cache status
// @Tags system
// @Produce json
// @Success 200 {object} SwaggerDictionaryEnvelope
// @Router /dictionaries/status [get]
func (h *FlightHandler) DictionaryStatus(c echo.Context) error {
	if h.dictionaries == nil {
		return response.OK(c, dictionary.Status{})
	}
	return response.OK(c, h.dictionaries.Status())
}

// Assistant handles POST /api/v1/assistant
//
// @Summary Guided assistant step
// @Description Processes one message. The assistant is stateless: send back the conversation from the previous reply.
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body AssistantRequest true "Message and conversation"
// @Success 200 {object} SwaggerAssistantEnvelope
// @Failure 400 {object} SwaggerErrorEnvelope "Validation error"
// @Router /assistant [post]
func (h *FlightHandler) Assistant(c echo.Context) error {
	var req AssistantRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	conv := usecase.NewConversation()
	if req.Conversation != nil {
		conv = *req.Conversation
	}
	return response.OK(c, ToAssistantDTO(usecase.Step(conv, req.Text)))
}

func (h *FlightHandler) session(c echo.Context) (*usecase.ResultsSession, error) {
	return h.sessions.Get(c.Param("id"))
}
