// Package response provides standardized HTTP response builders for the flight results API.
package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`

	// Dictionaries is "fresh", "stale" or "empty"
	Dictionaries string `json:"dictionaries,omitempty"`
}

// Health writes a health check response. The service stays healthy with
// stale dictionaries since names fall back to codes.
func Health(c echo.Context, now time.Time, dictionaries string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:       "ok",
		Time:         now,
		Dictionaries: dictionaries,
	})
}
