package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers.
var (
	// ErrInvalidRequest indicates missing or malformed user input
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSearchUnavailable indicates the search source could not produce results
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrUpstream is matched by every UpstreamError
	ErrUpstream = errors.New("upstream failure")

	// ErrSessionNotFound indicates an unknown or expired results session
	ErrSessionNotFound = errors.New("session not found")

	// ErrFlightNotFound indicates a flight id absent from the working set
	ErrFlightNotFound = errors.New("flight not found")

	// ErrNoResults indicates a search has not been run yet in a session
	ErrNoResults = errors.New("no search results")

	// ErrStateNotFound is returned by a StateStore for a missing key
	ErrStateNotFound = errors.New("state not found")
)

// UpstreamError describes a failed call to an external source.
type UpstreamError struct {
	// Endpoint names the remote operation (e.g., "search", "matrix")
	Endpoint string

	// StatusCode is the HTTP status, 0 when the request never completed
	StatusCode int

	// Err is the underlying cause
	Err error

	// Retryable tells the retry loop whether another attempt may succeed
	Retryable bool
}

// NewUpstreamError creates a non-retryable UpstreamError.
func NewUpstreamError(endpoint string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Err: err}
}

// NewRetryableUpstreamError creates an UpstreamError that may succeed on retry.
func NewRetryableUpstreamError(endpoint string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Endpoint: endpoint, StatusCode: statusCode, Err: err, Retryable: true}
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUpstream) match any UpstreamError.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// IsRetryable reports whether err is an UpstreamError marked retryable.
func IsRetryable(err error) bool {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Retryable
	}
	return false
}

// WrapInvalidRequest formats a message wrapped with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is a validation error.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsNotFound reports whether err denotes a missing session or flight.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrFlightNotFound)
}
