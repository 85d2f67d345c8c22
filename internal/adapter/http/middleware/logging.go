package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yuvia/flight-results/internal/infrastructure/logger"
)

const (
	sessionParam = "id"
	flightParam  = "flightId"
)

// quietRoutes are polled by infrastructure and only logged at debug level
// unless they fail.
var quietRoutes = map[string]bool{
	"/health":    true,
	"/metrics":   true,
	"/swagger/*": true,
}

// RequestLogger writes one access-log entry per request. Entries carry the
// route template rather than only the raw path, plus the session and flight
// ids when the route has them, so one session's traffic can be followed
// across searches, views and calendar polls.
func RequestLogger(base *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			route := c.Path()

			event := accessEvent(scopedLogger(c, base), route, res.Status)
			if fid := c.Param(flightParam); fid != "" {
				event = event.Str("flight_id", fid)
			}
			if req.URL.RawQuery != "" {
				event = event.Str("query", req.URL.RawQuery)
			}

			event.
				Str("method", req.Method).
				Str("route", route).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("duration", time.Since(start)).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("request")
			return nil
		}
	}
}

// accessEvent picks the level: 5xx error, 4xx warn, quiet routes debug.
func accessEvent(l *logger.Logger, route string, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return l.Error()
	case status >= 400:
		return l.Warn()
	case quietRoutes[route]:
		return l.Debug()
	default:
		return l.Info()
	}
}
