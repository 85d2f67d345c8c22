// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Upstream   UpstreamConfig
	Places     PlacesConfig
	Booking    BookingConfig
	Dictionary DictionaryConfig
	Store      StoreConfig
	Session    SessionConfig
	Search     SearchConfig
	Logging    LoggingConfig
	App        AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// UpstreamConfig holds settings for the search, matrix and dictionary API.
type UpstreamConfig struct {
	BaseURL       string        `env:"UPSTREAM_BASE_URL" envDefault:"http://localhost:3000"`
	Timeout       time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
	MatrixTimeout time.Duration `env:"UPSTREAM_MATRIX_TIMEOUT" envDefault:"8s"`

	// RateLimit is requests per second per endpoint; 0 disables throttling
	RateLimit  float64 `env:"UPSTREAM_RATE_LIMIT" envDefault:"5"`
	RateBurst  int     `env:"UPSTREAM_RATE_BURST" envDefault:"10"`
	MaxRetries int     `env:"UPSTREAM_MAX_RETRIES" envDefault:"3"`
}

// PlacesConfig holds autocomplete settings.
type PlacesConfig struct {
	URL       string        `env:"PLACES_URL" envDefault:"https://autocomplete.travelpayouts.com/places2"`
	Locale    string        `env:"PLACES_LOCALE" envDefault:"ru"`
	CacheSize int           `env:"PLACES_CACHE_SIZE" envDefault:"512"`
	Timeout   time.Duration `env:"PLACES_TIMEOUT" envDefault:"5s"`
}

// BookingConfig holds the partner link settings.
type BookingConfig struct {
	BaseURL   string `env:"BOOKING_BASE_URL" envDefault:"https://www.aviasales.ru"`
	Marker    string `env:"BOOKING_MARKER" envDefault:"672309"`
	UTMSource string `env:"BOOKING_UTM_SOURCE" envDefault:"yuvia"`
	OwnDomain string `env:"BOOKING_OWN_DOMAIN" envDefault:"yuvia"`
}

// DictionaryConfig holds the dictionary cache settings.
type DictionaryConfig struct {
	DefaultTTL      time.Duration `env:"DICT_DEFAULT_TTL" envDefault:"1h"`
	RefreshInterval time.Duration `env:"DICT_REFRESH_INTERVAL" envDefault:"5m"`
}

// StoreConfig selects where client state is persisted.
type StoreConfig struct {
	// Driver is "memory" or "redis"
	Driver        string        `env:"STORE_DRIVER" envDefault:"memory"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"REDIS_PREFIX" envDefault:"yuvia:"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"720h"`
}

// SessionConfig holds results-session lifecycle settings.
type SessionConfig struct {
	IdleTTL       time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	EvictInterval time.Duration `env:"SESSION_EVICT_INTERVAL" envDefault:"1m"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"RUB"`

	// Timezone interprets upstream timestamps without an offset and defines "today"
	Timezone string `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"yuvia-flight-results"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

var currencyRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout},
		{"UPSTREAM_TIMEOUT", cfg.Upstream.Timeout},
		{"UPSTREAM_MATRIX_TIMEOUT", cfg.Upstream.MatrixTimeout},
		{"PLACES_TIMEOUT", cfg.Places.Timeout},
		{"DICT_DEFAULT_TTL", cfg.Dictionary.DefaultTTL},
		{"DICT_REFRESH_INTERVAL", cfg.Dictionary.RefreshInterval},
		{"SESSION_IDLE_TTL", cfg.Session.IdleTTL},
		{"SESSION_EVICT_INTERVAL", cfg.Session.EvictInterval},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}

	if err := validateHTTPURL("UPSTREAM_BASE_URL", cfg.Upstream.BaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("PLACES_URL", cfg.Places.URL); err != nil {
		return err
	}
	if err := validateHTTPURL("BOOKING_BASE_URL", cfg.Booking.BaseURL); err != nil {
		return err
	}

	if cfg.Upstream.RateLimit < 0 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT cannot be negative, got %v", cfg.Upstream.RateLimit)
	}
	if cfg.Upstream.RateLimit > 0 && cfg.Upstream.RateBurst < 1 {
		return fmt.Errorf("UPSTREAM_RATE_BURST must be at least 1 when rate limiting is enabled, got %d", cfg.Upstream.RateBurst)
	}
	if cfg.Upstream.MaxRetries < 1 || cfg.Upstream.MaxRetries > 10 {
		return fmt.Errorf("UPSTREAM_MAX_RETRIES must be between 1 and 10, got %d", cfg.Upstream.MaxRetries)
	}

	if cfg.Places.CacheSize < 1 {
		return fmt.Errorf("PLACES_CACHE_SIZE must be positive, got %d", cfg.Places.CacheSize)
	}

	switch cfg.Store.Driver {
	case "memory":
	case "redis":
		if cfg.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER is redis")
		}
		if cfg.Store.RedisTTL < 0 {
			return fmt.Errorf("REDIS_TTL cannot be negative")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: memory, redis; got %q", cfg.Store.Driver)
	}

	if !currencyRegex.MatchString(cfg.Search.DefaultCurrency) {
		return fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code, got %q", cfg.Search.DefaultCurrency)
	}
	if _, err := time.LoadLocation(cfg.Search.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q is not a known timezone", cfg.Search.Timezone)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UsesRedis reports whether client state is persisted in Redis.
func (c *Config) UsesRedis() bool {
	return c.Store.Driver == "redis"
}
