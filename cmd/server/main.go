// Package main is the entry point for the flight results service.
//
//	@title						Yuvia Flight Results API
//	@version					1.0.0
//	@description				Presentation layer for flight search: normalized offers, scoring, filters, top-3 picks, favorites, compare, price calendar and a guided assistant.
//
//	@contact.name				API Support
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/yuvia/flight-results/docs"

	// Application layers
	"github.com/yuvia/flight-results/internal/adapter/dictionary"
	flighthttp "github.com/yuvia/flight-results/internal/adapter/http"
	"github.com/yuvia/flight-results/internal/adapter/http/middleware"
	"github.com/yuvia/flight-results/internal/adapter/places"
	"github.com/yuvia/flight-results/internal/adapter/storage"
	"github.com/yuvia/flight-results/internal/adapter/upstream"
	"github.com/yuvia/flight-results/internal/config"
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/ratelimit"
	"github.com/yuvia/flight-results/internal/infrastructure/retry"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
	"github.com/yuvia/flight-results/internal/usecase"
)

// dictionaryLoadTimeout bounds the initial dictionary load at startup.
const dictionaryLoadTimeout = 20 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: cfg.App.Name,
	})
	log := logger.Global()

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Driver).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.close()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.WithComponent("http"))
	flighthttp.RegisterRoutes(e, app.handler)

	go app.dictionaries.Run(ctx, cfg.Dictionary.RefreshInterval)
	go app.sessions.Run(ctx, cfg.Session.EvictInterval)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	gracefulShutdown(e, cfg.Server.ShutdownTimeout)
	app.sessions.Wait()
}

// application holds the long-lived collaborators of the service.
type application struct {
	handler      *flighthttp.FlightHandler
	sessions     *usecase.SessionRegistry
	dictionaries *dictionary.Cache
	close        func()
}

// buildApp wires the upstream client, the dictionary cache, the state store,
// autocomplete and the session registry.
func buildApp(ctx context.Context, cfg *config.Config) (*application, error) {
	loc, err := timeutil.GetLocation(cfg.Search.Timezone)
	if err != nil {
		return nil, err
	}
	clock := timeutil.NewRealClock()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	links := upstream.DefaultLinkPolicy()
	links.TicketBaseURL = cfg.Booking.BaseURL
	links.SearchBaseURL = cfg.Booking.BaseURL + "/search"
	links.Marker = cfg.Booking.Marker
	links.UTMSource = cfg.Booking.UTMSource
	links.OwnDomain = cfg.Booking.OwnDomain

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL:       cfg.Upstream.BaseURL,
		Timeout:       cfg.Upstream.Timeout,
		MatrixTimeout: cfg.Upstream.MatrixTimeout,
		Retry:         retry.UpstreamConfig.WithMaxAttempts(cfg.Upstream.MaxRetries),
	},
		upstream.WithLimiter(ratelimit.NewEndpointLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.Upstream.RateLimit,
			Burst:             cfg.Upstream.RateBurst,
		})),
		upstream.WithNormalizer(upstream.NewNormalizer(nil, links, loc)),
		upstream.WithLogger(logger.Component("upstream")),
	)

	dicts := dictionary.NewCache(client, storage.WithNamespace(store, "dict"), clock, cfg.Dictionary.DefaultTTL)
	loadCtx, cancel := context.WithTimeout(ctx, dictionaryLoadTimeout)
	if err := dicts.Load(loadCtx); err != nil {
		// Names fall back to codes until a refresh succeeds.
		logger.Warn().Err(err).Msg("Dictionaries unavailable at startup")
	}
	cancel()
	client.UseResolver(dicts)

	placesClient, err := places.NewClient(places.Config{
		URL:       cfg.Places.URL,
		Locale:    cfg.Places.Locale,
		CacheSize: cfg.Places.CacheSize,
		Timeout:   cfg.Places.Timeout,
	}, nil)
	if err != nil {
		closeStore()
		return nil, err
	}

	sessions := usecase.NewSessionRegistry(usecase.SessionDeps{
		Source: client,
		Places: placesClient,
		Autocomplete: func() domain.PlaceSuggester {
			return places.NewSession(placesClient)
		},
		MatrixTimeout: cfg.Upstream.MatrixTimeout,
		Clock:         clock,
		Location:      loc,
		Logger:        logger.Component("session"),
	}, func(sessionID string) domain.StateStore {
		return storage.WithNamespace(store, "session:"+sessionID)
	}, cfg.Session.IdleTTL)

	handler := flighthttp.NewFlightHandler(flighthttp.HandlerConfig{
		Sessions:        sessions,
		Places:          placesClient,
		Dictionaries:    dicts,
		DefaultCurrency: cfg.Search.DefaultCurrency,
		Clock:           clock,
	})

	return &application{
		handler:      handler,
		sessions:     sessions,
		dictionaries: dicts,
		close:        closeStore,
	}, nil
}

// openStore opens the configured state store.
func openStore(ctx context.Context, cfg *config.Config) (domain.StateStore, func(), error) {
	if !cfg.UsesRedis() {
		return storage.NewMemoryStore(), func() {}, nil
	}

	store, err := storage.NewRedisStore(ctx, storage.RedisConfig{
		Addr:     cfg.Store.RedisAddr,
		Password: cfg.Store.RedisPassword,
		DB:       cfg.Store.RedisDB,
		Prefix:   cfg.Store.RedisPrefix,
		TTL:      cfg.Store.RedisTTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open redis store: %w", err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing redis store")
		}
	}, nil
}

// gracefulShutdown stops the server, waiting up to timeout for in-flight requests.
func gracefulShutdown(e *echo.Echo, timeout time.Duration) {
	log := logger.Global()
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
