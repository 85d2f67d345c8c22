// Package places provides city and airport autocomplete backed by the
// travelpayouts places API.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
)

// Endpoint names the places API in errors and metrics.
const Endpoint = "places"

// MinTermLength is the shortest term sent to the API.
const MinTermLength = 2

// Config holds autocomplete settings.
type Config struct {
	URL       string
	Locale    string
	CacheSize int
	Timeout   time.Duration

	// Limit caps the suggestions returned per term
	Limit int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		URL:       "https://autocomplete.travelpayouts.com/places2",
		Locale:    "ru",
		CacheSize: 512,
		Timeout:   5 * time.Second,
		Limit:     8,
	}
}

// Client fetches suggestions and caches them per term. It implements
// domain.PlaceSuggester and is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *lru.Cache[string, []domain.Place]
	log        *logger.Logger
}

// NewClient creates a places client. Zero config fields take DefaultConfig values.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	def := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	cache, err := lru.New[string, []domain.Place](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create places cache: %w", err)
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		cache:      cache,
		log:        logger.Component("places"),
	}, nil
}

type placeItem struct {
	Name        string `json:"name"`
	CityName    string `json:"city_name"`
	City        string `json:"city"`
	Code        string `json:"code"`
	CountryName string `json:"country_name"`
	Country     string `json:"country"`
}

// Suggest returns up to Limit places for term. Terms shorter than
// MinTermLength return nothing without a request.
func (c *Client) Suggest(ctx context.Context, term string) ([]domain.Place, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < MinTermLength {
		return nil, nil
	}
	key := strings.ToLower(term)

	if cached, ok := c.cache.Get(key); ok {
		metrics.RecordPlacesLookup(true)
		return c.limit(cached), nil
	}
	metrics.RecordPlacesLookup(false)

	places, err := c.fetch(ctx, term)
	if err != nil {
		c.log.Warn().Err(err).Str("term", term).Msg("autocomplete failed")
		return nil, err
	}
	c.cache.Add(key, places)
	return c.limit(places), nil
}

func (c *Client) fetch(ctx context.Context, term string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("locale", c.cfg.Locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.NewUpstreamError(Endpoint, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstream(Endpoint, "error", time.Since(start).Seconds())
		return nil, domain.NewUpstreamError(Endpoint, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstream(Endpoint, fmt.Sprint(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError(Endpoint, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	var items []placeItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, domain.NewUpstreamError(Endpoint, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return mapPlaces(items), nil
}

// mapPlaces converts API items, dropping entries without a code.
func mapPlaces(items []placeItem) []domain.Place {
	out := make([]domain.Place, 0, len(items))
	for _, it := range items {
		code := strings.ToUpper(strings.TrimSpace(it.Code))
		if code == "" {
			continue
		}
		out = append(out, domain.Place{
			City:    firstNonEmpty(it.Name, it.CityName, it.City, code),
			Code:    code,
			Country: firstNonEmpty(it.CountryName, it.Country),
		})
	}
	return out
}

func (c *Client) limit(places []domain.Place) []domain.Place {
	n := min(len(places), c.cfg.Limit)
	out := make([]domain.Place, n)
	copy(out, places[:n])
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

var _ domain.PlaceSuggester = (*Client)(nil)
