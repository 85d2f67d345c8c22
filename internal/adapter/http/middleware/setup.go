package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/yuvia/flight-results/internal/infrastructure/logger"
)

// Setup registers the middleware chain. Call it before RegisterRoutes.
//
// Order matters: RequestID must run first so the access log, metrics and
// recovery entries all carry the correlation id; Recover sits innermost so
// a panicking handler still produces an access-log line and a counted 500.
func Setup(e *echo.Echo, log *logger.Logger) {
	SetupWithConfig(e, log, DefaultRecoveryConfig())
}

// SetupWithConfig is Setup with a custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, recoveryConfig RecoveryConfig) {
	e.Use(RequestID(log))
	e.Use(RequestLogger(log))
	e.Use(Metrics())
	e.Use(RecoverWithConfig(log, recoveryConfig))
}
