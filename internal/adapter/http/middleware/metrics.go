package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
)

// Metrics returns middleware that records request count and latency per
// route template, so ids in paths do not create new series.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordHTTP(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
				time.Since(start).Seconds(),
			)
			return nil
		}
	}
}
