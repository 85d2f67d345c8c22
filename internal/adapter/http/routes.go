package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers all flight results API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	// Operational endpoints (no version prefix)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	api := e.Group("/api/v1")

	api.POST("/flights/search", h.SearchFlights)
	api.GET("/places", h.Places)
	api.GET("/dictionaries/status", h.DictionaryStatus)
	api.POST("/assistant", h.Assistant)

	// Sessions group
	sessions := api.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.POST("/:id/search", h.SessionSearch)
	sessions.POST("/:id/view", h.SessionView)
	sessions.GET("/:id/flights/:flightId", h.GetFlight)
	sessions.GET("/:id/calendar", h.Calendar)
	sessions.GET("/:id/recent", h.RecentSearches)
	sessions.GET("/:id/places", h.SessionPlaces)

	sessions.GET("/:id/favorites", h.ListFavorites)
	sessions.DELETE("/:id/favorites", h.ClearFavorites)
	sessions.PUT("/:id/favorites/:flightId", h.AddFavorite)
	sessions.DELETE("/:id/favorites/:flightId", h.RemoveFavorite)

	sessions.GET("/:id/compare", h.ListCompare)
	sessions.DELETE("/:id/compare", h.ClearCompare)
	sessions.PUT("/:id/compare/:flightId", h.AddCompare)
	sessions.DELETE("/:id/compare/:flightId", h.RemoveCompare)
}
