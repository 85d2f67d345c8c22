// Package response provides standardized HTTP response builders for the flight results API.
// It centralizes the envelope format so every endpoint answers the same way.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response represents a standardized API response envelope.
type Response struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (for successful responses)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (for error responses)
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific error details (for validation errors)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeNoResults         = "NO_RESULTS"
	CodeSuperseded        = "SUPERSEDED"
	CodeSearchUnavailable = "SEARCH_UNAVAILABLE"
	CodeGatewayTimeout    = "GATEWAY_TIMEOUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgNoResults          = "Run a search in this session first"
	MsgSuperseded         = "A newer autocomplete query replaced this one"
	MsgSearchUnavailable  = "Flight search is temporarily unavailable"
	MsgTimeout            = "Request timed out"
	MsgRequestCancelled   = "Request was cancelled"
	MsgInternalError      = "An unexpected error occurred"
)

// Success creates a successful response envelope.
func Success(data interface{}) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

// Failure creates a failed response envelope.
func Failure(code, message string, details map[string]string) *Response {
	return &Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// OK writes a 200 OK envelope with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Success(data))
}

// Created writes a 201 Created envelope with the given data.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Success(data))
}

// NoContent writes a 204 No Content response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Fail writes an error envelope with the given status.
func Fail(c echo.Context, status int, code, message string, details map[string]string) error {
	return c.JSON(status, Failure(code, message, details))
}
