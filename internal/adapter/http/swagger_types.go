// Package http provides swagger type definitions for API documentation.
// These types mirror the response envelope with a concrete payload so swag can document it.
package http

import (
	"github.com/yuvia/flight-results/internal/adapter/dictionary"
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

// SwaggerSearchEnvelope wraps a search result.
// @Description Search results with the default view and the price calendar
type SwaggerSearchEnvelope struct {
	Success bool            `json:"success" example:"true"`
	Data    SearchResultDTO `json:"data"`
}

// SwaggerSessionEnvelope wraps a created session.
// @Description Created session
type SwaggerSessionEnvelope struct {
	Success bool       `json:"success" example:"true"`
	Data    SessionDTO `json:"data"`
}

// SwaggerViewEnvelope wraps a results view.
// @Description Filtered and ordered results with top-3 picks, filter options and the price summary
type SwaggerViewEnvelope struct {
	Success bool                `json:"success" example:"true"`
	Data    usecase.ResultsView `json:"data"`
}

// SwaggerFlightEnvelope wraps one flight.
// @Description Flight details with selection state
type SwaggerFlightEnvelope struct {
	Success bool            `json:"success" example:"true"`
	Data    FlightDetailDTO `json:"data"`
}

// SwaggerCalendarEnvelope wraps the price calendar.
// @Description Price calendar days in date order
type SwaggerCalendarEnvelope struct {
	Success bool                 `json:"success" example:"true"`
	Data    []domain.CalendarDay `json:"data"`
}

// SwaggerFavoritesEnvelope wraps the favorites list.
// @Description Favorites resolved against the working set
type SwaggerFavoritesEnvelope struct {
	Success bool                  `json:"success" example:"true"`
	Data    usecase.FavoritesView `json:"data"`
}

// SwaggerCompareEnvelope wraps the compare table.
// @Description Compare rows for one direction
type SwaggerCompareEnvelope struct {
	Success bool                `json:"success" example:"true"`
	Data    usecase.CompareView `json:"data"`
}

// SwaggerRecentEnvelope wraps recent searches.
// @Description Recent searches, newest first
type SwaggerRecentEnvelope struct {
	Success bool      `json:"success" example:"true"`
	Data    RecentDTO `json:"data"`
}

// SwaggerPlacesEnvelope wraps autocomplete suggestions.
// @Description Autocomplete suggestions
type SwaggerPlacesEnvelope struct {
	Success bool      `json:"success" example:"true"`
	Data    PlacesDTO `json:"data"`
}

// SwaggerDictionaryEnvelope wraps the dictionary cache status.
// @Description Dictionary cache status
type SwaggerDictionaryEnvelope struct {
	Success bool              `json:"success" example:"true"`
	Data    dictionary.Status `json:"data"`
}

// SwaggerAssistantEnvelope wraps an assistant reply.
// @Description Assistant question, options and conversation state
type SwaggerAssistantEnvelope struct {
	Success bool         `json:"success" example:"true"`
	Data    AssistantDTO `json:"data"`
}

// SwaggerErrorEnvelope represents an error response.
// @Description Error response from the API
type SwaggerErrorEnvelope struct {
	// Success is always false for error responses
	Success bool `json:"success" example:"false"`

	// Error contains error details
	Error SwaggerErrorDetail `json:"error"`
}

// SwaggerErrorDetail contains structured error information.
// @Description Error details
type SwaggerErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code" example:"VALIDATION_ERROR"`

	// Message is a human-readable error message
	Message string `json:"message" example:"Request validation failed"`

	// Details contains field-specific error details
	Details map[string]string `json:"details,omitempty"`
}
