package middleware

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/yuvia/flight-results/internal/adapter/http/response"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
)

// RecoveryConfig controls what the recovery middleware logs.
type RecoveryConfig struct {
	// DisableStackAll limits the stack trace to the panicking goroutine
	DisableStackAll bool

	// DisablePrintStack omits the stack trace from the log entry
	DisablePrintStack bool
}

// DefaultRecoveryConfig returns the default recovery configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		DisableStackAll:   false,
		DisablePrintStack: false,
	}
}

// Recover turns a handler panic into the INTERNAL_ERROR envelope. The panic
// is logged with the route and session it happened in.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return RecoverWithConfig(log, DefaultRecoveryConfig())
}

// RecoverWithConfig returns recovery middleware with custom configuration.
func RecoverWithConfig(log *logger.Logger, config RecoveryConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				event := scopedLogger(c, log).Error().
					Str("panic", panicMessage(r)).
					Str("method", c.Request().Method).
					Str("route", c.Path())
				if !config.DisablePrintStack {
					event = event.Str("stack", stackTrace(config.DisableStackAll))
				}
				event.Msg("panic recovered")

				// Generic envelope; panic details stay in the log
				if !c.Response().Committed {
					_ = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", r)
}

func stackTrace(currentOnly bool) string {
	if currentOnly {
		return string(debug.Stack())
	}
	buf := make([]byte, 64<<10)
	n := runtime.Stack(buf, true)
	return string(buf[:n])
}
