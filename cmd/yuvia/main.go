// Package main is the entry point for the yuvia terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuvia/flight-results/internal/adapter/dictionary"
	"github.com/yuvia/flight-results/internal/adapter/places"
	"github.com/yuvia/flight-results/internal/adapter/storage"
	"github.com/yuvia/flight-results/internal/adapter/upstream"
	"github.com/yuvia/flight-results/internal/cli"
	"github.com/yuvia/flight-results/internal/config"
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/ratelimit"
	"github.com/yuvia/flight-results/internal/infrastructure/retry"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
	"github.com/yuvia/flight-results/internal/usecase"
)

// cliNamespace scopes the selections and recent searches of the terminal client.
const cliNamespace = "cli"

const dictionaryLoadTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var closeStore func()
	root := cli.NewRootCommand(func(ctx context.Context) (*cli.Backend, error) {
		backend, closeFn, err := open(ctx)
		closeStore = closeFn
		return backend, err
	})

	err := cli.Execute(ctx, root)
	if closeStore != nil {
		closeStore()
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// open loads the configuration and wires the session the commands work on.
func open(ctx context.Context) (*cli.Backend, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// Terminal output belongs to the results; logs go to stderr and stay quiet.
	level := "warn"
	if cfg.Logging.Level == "debug" {
		level = "debug"
	}
	logger.SetGlobal(logger.NewWithOutput(logger.Config{
		Level:       level,
		Format:      "console",
		ServiceName: "yuvia-cli",
	}, os.Stderr))

	loc, err := timeutil.GetLocation(cfg.Search.Timezone)
	if err != nil {
		return nil, nil, err
	}
	clock := timeutil.NewRealClock()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
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

	// A persisted snapshot is applied even when the refresh fails.
	dicts := dictionary.NewCache(client, storage.WithNamespace(store, "dict"), clock, cfg.Dictionary.DefaultTTL)
	loadCtx, cancel := context.WithTimeout(ctx, dictionaryLoadTimeout)
	if err := dicts.Load(loadCtx); err != nil {
		logger.Warn().Err(err).Msg("Dictionaries unavailable")
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
		return nil, nil, err
	}

	session := usecase.NewResultsSession(ctx, cliNamespace, usecase.SessionDeps{
		Source:        client,
		Places:        placesClient,
		Store:         storage.WithNamespace(store, cliNamespace),
		MatrixTimeout: cfg.Upstream.MatrixTimeout,
		Clock:         clock,
		Location:      loc,
		Logger:        logger.Component("cli"),
	})

	return &cli.Backend{
		Session:         session,
		DefaultCurrency: cfg.Search.DefaultCurrency,
	}, closeStore, nil
}

// openStore opens the configured state store. With the memory driver the
// recent searches and selections last for one command.
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
