// Package dictionary caches the code to display-name tables used to label
// cities, airports and airlines.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
)

// StorageKey is the state-store key holding the persisted snapshot.
const StorageKey = "yuviaDicts"

// DefaultTTL applies when the source reports no positive ttlSeconds.
const DefaultTTL = time.Hour

// snapshot is the persisted form; ExpireAt is epoch milliseconds.
type snapshot struct {
	Data     domain.Dictionaries `json:"data"`
	ExpireAt int64               `json:"expireAt"`
}

// Status describes the cache for diagnostics.
type Status struct {
	Loaded    bool      `json:"loaded"`
	Fresh     bool      `json:"fresh"`
	ExpireAt  time.Time `json:"expireAt"`
	Airlines  int       `json:"airlines"`
	Airports  int       `json:"airports"`
	Cities    int       `json:"cities"`
	LastError string    `json:"lastError,omitempty"`
}

// Cache holds the dictionaries and implements domain.NameResolver.
type Cache struct {
	source     domain.DictionarySource
	store      domain.StateStore
	clock      timeutil.Clock
	defaultTTL time.Duration
	log        *logger.Logger

	mu       sync.RWMutex
	dicts    domain.Dictionaries
	expireAt time.Time
	loaded   bool
	restored bool
	lastErr  error
}

// NewCache creates a cache. A nil store disables persistence and a
// non-positive defaultTTL means DefaultTTL.
func NewCache(source domain.DictionarySource, store domain.StateStore, clock timeutil.Clock, defaultTTL time.Duration) *Cache {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		source:     source,
		store:      store,
		clock:      clock,
		defaultTTL: defaultTTL,
		log:        logger.Component("dictionary"),
	}
}

// Load applies any persisted snapshot, even an expired one, then fetches fresh
// tables. A failed fetch keeps whatever was applied and returns the error;
// callers treat it as a degraded state, never as fatal.
func (c *Cache) Load(ctx context.Context) error {
	c.restore(ctx)

	dicts, err := c.source.FetchDictionaries(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		metrics.SetDictionaryStale(!c.Fresh())
		c.log.Warn().Err(err).Bool("stale_available", c.Loaded()).Msg("dictionary refresh failed, keeping cached tables")
		return err
	}

	ttl := c.defaultTTL
	if dicts.TTLSeconds > 0 {
		ttl = time.Duration(dicts.TTLSeconds) * time.Second
	}
	expireAt := c.clock.Now().Add(ttl)
	c.apply(dicts, expireAt)

	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
	metrics.SetDictionaryStale(false)

	c.persist(ctx, snapshot{Data: dicts, ExpireAt: expireAt.UnixMilli()})
	c.log.Info().
		Int("airlines", len(dicts.Airlines)).
		Int("airports", len(dicts.Airports)).
		Int("cities", len(dicts.Cities)).
		Dur("ttl", ttl).
		Msg("dictionaries loaded")
	return nil
}

// EnsureFresh reloads only when the loaded tables are missing or expired.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	if c.Fresh() {
		return nil
	}
	return c.Load(ctx)
}

// Run calls EnsureFresh every interval until ctx is done. Refresh failures
// are logged by Load and never stop the loop.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.EnsureFresh(ctx)
		}
	}
}

// Fresh reports whether unexpired tables are loaded.
func (c *Cache) Fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded && c.clock.Now().Before(c.expireAt)
}

// Loaded reports whether any tables, fresh or stale, are applied.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Status returns a diagnostic snapshot.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Status{
		Loaded:   c.loaded,
		Fresh:    c.loaded && c.clock.Now().Before(c.expireAt),
		ExpireAt: c.expireAt,
		Airlines: len(c.dicts.Airlines),
		Airports: len(c.dicts.Airports),
		Cities:   len(c.dicts.Cities),
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

// CityName looks the code up in cities, then airports.
func (c *Cache) CityName(code string) (string, bool) {
	key := normalizeCode(code)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if name, ok := c.dicts.Cities[key]; ok && name != "" {
		return name, true
	}
	name, ok := c.dicts.Airports[key]
	return name, ok && name != ""
}

// AirportName looks the code up in airports.
func (c *Cache) AirportName(code string) (string, bool) {
	key := normalizeCode(code)
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.dicts.Airports[key]
	return name, ok && name != ""
}

// AirlineName looks the code up in airlines.
func (c *Cache) AirlineName(code string) (string, bool) {
	key := normalizeCode(code)
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.dicts.Airlines[key]
	return name, ok && name != ""
}

// restore applies the persisted snapshot once per process.
func (c *Cache) restore(ctx context.Context) {
	c.mu.Lock()
	done := c.restored
	c.restored = true
	c.mu.Unlock()
	if done || c.store == nil {
		return
	}

	data, err := c.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			c.log.Warn().Err(err).Msg("failed to read cached dictionaries")
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.log.Warn().Err(err).Msg("failed to parse cached dictionaries")
		return
	}
	c.apply(snap.Data, time.UnixMilli(snap.ExpireAt))
	metrics.SetDictionaryStale(!c.Fresh())
	c.log.Debug().Bool("fresh", c.Fresh()).Msg("cached dictionaries applied")
}

func (c *Cache) persist(ctx context.Context, snap snapshot) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to encode dictionaries")
		return
	}
	if err := c.store.Set(ctx, StorageKey, data); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist dictionaries")
	}
}

func (c *Cache) apply(d domain.Dictionaries, expireAt time.Time) {
	d.Airlines = nonNil(d.Airlines)
	d.Airports = nonNil(d.Airports)
	d.Cities = nonNil(d.Cities)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dicts = d
	c.expireAt = expireAt
	c.loaded = true
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
