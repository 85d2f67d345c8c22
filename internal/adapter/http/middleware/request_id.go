// Package middleware holds the echo middleware of the flight results API:
// request correlation, access logging, per-route metrics and panic recovery.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yuvia/flight-results/internal/infrastructure/logger"
)

const (
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "request_logger"

	maxRequestIDLen = 128
)

// RequestID tags every request with a correlation id and a request-scoped
// logger. A client-supplied X-Request-ID is reused when it is short printable
// ASCII; anything else is replaced with a fresh UUID.
func RequestID(base *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.NewString()
			}

			c.Set(requestIDKey, reqID)
			c.Set(loggerKey, base.WithRequestID(reqID))
			c.Response().Header().Set(RequestIDHeader, reqID)

			return next(c)
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the correlation id, or "" outside the middleware.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Logger returns the request-scoped logger, tagged with the session id when
// the route has one. Outside the middleware it falls back to the global logger.
func Logger(c echo.Context) *logger.Logger {
	return scopedLogger(c, logger.Global())
}

func scopedLogger(c echo.Context, fallback *logger.Logger) *logger.Logger {
	l, ok := c.Get(loggerKey).(*logger.Logger)
	if !ok {
		l = fallback
	}
	if sid := c.Param(sessionParam); sid != "" {
		l = l.WithSession(sid)
	}
	return l
}
