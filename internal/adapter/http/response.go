package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/yuvia/flight-results/internal/adapter/http/middleware"
	"github.com/yuvia/flight-results/internal/adapter/http/response"
	"github.com/yuvia/flight-results/internal/adapter/places"
	"github.com/yuvia/flight-results/internal/domain"
)

// handleValidationError handles validation errors and returns a 400 response.
func handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())

	case domain.IsNotFound(err):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrNoResults):
		return response.NoResults(c)

	case errors.Is(err, places.ErrSuperseded):
		return response.Superseded(c)

	// Timeouts are checked before upstream failures since they wrap each other
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)

	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)

	case errors.Is(err, domain.ErrSearchUnavailable), errors.Is(err, domain.ErrUpstream):
		return response.ServiceUnavailable(c)
	}

	middleware.Logger(c).Error().
		Err(err).
		Str("route", c.Path()).
		Msg("unhandled error")
	return response.InternalServerError(c)
}
