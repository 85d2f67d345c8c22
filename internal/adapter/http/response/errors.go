// Package response provides standardized HTTP response builders for the flight results API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, CodeInvalidRequest, message, nil)
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return Fail(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody, nil)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return Fail(c, http.StatusBadRequest, CodeValidationError, MsgValidationFailed, details)
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, CodeValidationError, message, nil)
}

// NotFound writes a 404 Not Found response.
func NotFound(c echo.Context, message string) error {
	return Fail(c, http.StatusNotFound, CodeNotFound, message, nil)
}

// NoResults writes a 409 Conflict response for session reads before the first search.
func NoResults(c echo.Context) error {
	return Fail(c, http.StatusConflict, CodeNoResults, MsgNoResults, nil)
}

// Superseded writes a 409 Conflict response for a replaced autocomplete query.
func Superseded(c echo.Context) error {
	return Fail(c, http.StatusConflict, CodeSuperseded, MsgSuperseded, nil)
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(c echo.Context) error {
	return Fail(c, http.StatusServiceUnavailable, CodeSearchUnavailable, MsgSearchUnavailable, nil)
}

// ServiceUnavailableWithMessage writes a 503 Service Unavailable response with a custom message.
func ServiceUnavailableWithMessage(c echo.Context, message string) error {
	return Fail(c, http.StatusServiceUnavailable, CodeSearchUnavailable, message, nil)
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return Fail(c, http.StatusGatewayTimeout, CodeGatewayTimeout, MsgTimeout, nil)
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return Fail(c, http.StatusGatewayTimeout, CodeGatewayTimeout, MsgRequestCancelled, nil)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return Fail(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError, nil)
}
