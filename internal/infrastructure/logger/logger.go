// Package logger provides structured logging using zerolog.
// It supports JSON and console output formats with configurable log levels.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName is attached to every entry
	ServiceName string `env:"SERVICE_NAME" envDefault:"yuvia-flight-results"`

	// NoColor disables ANSI colors in console format
	NoColor bool `env:"LOG_NO_COLOR" envDefault:"false"`
}

// DefaultConfig returns the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "yuvia-flight-results",
	}
}

// Logger wraps zerolog.Logger with helpers for common context fields.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)

	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger()}
}

// WithField returns a child logger carrying key=value.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithRequestID returns a child logger with request ID context.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

// WithComponent returns a child logger tagged with the emitting component.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// WithSession returns a child logger with results-session context.
func (l *Logger) WithSession(sessionID string) *Logger {
	return l.WithField("session_id", sessionID)
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

var (
	globalMu sync.RWMutex
	global   *Logger
)

// Init initializes the global logger.
func Init(cfg Config) {
	SetGlobal(New(cfg))
}

// SetGlobal replaces the global logger.
func SetGlobal(l *Logger) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// Global returns the global logger, initializing it with DefaultConfig on first use.
func Global() *Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = New(DefaultConfig())
	}
	return global
}

// Component returns a child of the global logger tagged with component.
func Component(component string) *Logger {
	return Global().WithComponent(component)
}

// Info returns an info level event from the global logger.
func Info() *zerolog.Event { return Global().Info() }

// Error returns an error level event from the global logger.
func Error() *zerolog.Event { return Global().Error() }

// Debug returns a debug level event from the global logger.
func Debug() *zerolog.Event { return Global().Debug() }

// Warn returns a warn level event from the global logger.
func Warn() *zerolog.Event { return Global().Warn() }

// Fatal returns a fatal level event from the global logger.
func Fatal() *zerolog.Event { return Global().Fatal() }
