package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/logger"
	"github.com/yuvia/flight-results/internal/infrastructure/metrics"
	"github.com/yuvia/flight-results/internal/infrastructure/ratelimit"
	"github.com/yuvia/flight-results/internal/infrastructure/retry"
)

// Endpoint names used for rate limits, metrics and errors.
const (
	EndpointSearch       = "search"
	EndpointMatrix       = "matrix"
	EndpointDictionaries = "dicts"
)

// maxBodyBytes caps the size of one upstream response.
const maxBodyBytes = 16 << 20

// ClientConfig holds upstream client settings.
type ClientConfig struct {
	BaseURL string

	// Timeout bounds one search or dictionary request
	Timeout time.Duration

	// MatrixTimeout bounds one price-matrix request
	MatrixTimeout time.Duration

	Retry retry.Config
}

// Client calls the remote search API. It implements domain.FlightSource and
// domain.DictionarySource.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	limiter       *ratelimit.EndpointLimiter
	retryCfg      retry.Config
	matrixTimeout time.Duration
	normalizer    *Normalizer
	log           *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLimiter throttles requests per endpoint.
func WithLimiter(l *ratelimit.EndpointLimiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// WithNormalizer sets the offer normalizer.
func WithNormalizer(n *Normalizer) ClientOption {
	return func(c *Client) { c.normalizer = n }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates an upstream client.
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MatrixTimeout <= 0 {
		cfg.MatrixTimeout = cfg.Timeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.UpstreamConfig
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		limiter:       ratelimit.NewEndpointLimiter(ratelimit.DefaultConfig()),
		retryCfg:      cfg.Retry,
		matrixTimeout: cfg.MatrixTimeout,
		normalizer:    NewNormalizer(nil, DefaultLinkPolicy(), time.UTC),
		log:           logger.Component("upstream"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UseResolver switches name resolution, typically to the dictionary cache
// once it has been built on top of this client. Call before serving traffic.
func (c *Client) UseResolver(r domain.NameResolver) {
	c.normalizer = c.normalizer.WithResolver(r)
}

type searchResponse struct {
	Data []any `json:"data"`
}

// Search fetches and normalizes offers for q.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Flight, error) {
	body, err := c.get(ctx, EndpointSearch, "/api/search", q.Params())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewUpstreamError(EndpointSearch, http.StatusOK, fmt.Errorf("decode response: %w", err))
	}

	raws := objectsOf(resp.Data)
	flights := c.normalizer.NormalizeBatch(raws, ContextFromQuery(q))
	c.log.Debug().
		Int("offers", len(raws)).
		Int("flights", len(flights)).
		Str("origin", q.Origin).
		Str("destination", q.Destination).
		Msg("search normalized")
	return flights, nil
}

// PriceMatrix fetches the price calendar around the query's departure date.
func (c *Client) PriceMatrix(ctx context.Context, q domain.SearchQuery) ([]domain.MatrixEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.matrixTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	params.Set("currency", q.Currency)
	params.Set("center", q.DepartDate)

	body, err := c.get(ctx, EndpointMatrix, "/api/matrix", params)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewUpstreamError(EndpointMatrix, http.StatusOK, fmt.Errorf("decode response: %w", err))
	}
	return NormalizeMatrix(payload, q.Currency), nil
}

// FetchDictionaries fetches the code to name tables. The payload may be wrapped in "data".
func (c *Client) FetchDictionaries(ctx context.Context) (domain.Dictionaries, error) {
	params := url.Values{}
	params.Set("refresh", "1")

	body, err := c.get(ctx, EndpointDictionaries, "/api/dicts", params)
	if err != nil {
		return domain.Dictionaries{}, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Dictionaries{}, domain.NewUpstreamError(EndpointDictionaries, http.StatusOK, fmt.Errorf("decode response: %w", err))
	}
	inner := body
	if trimmed := bytes.TrimSpace(envelope.Data); len(trimmed) > 0 && trimmed[0] == '{' {
		inner = trimmed
	}

	var dicts domain.Dictionaries
	if err := json.Unmarshal(inner, &dicts); err != nil {
		return domain.Dictionaries{}, domain.NewUpstreamError(EndpointDictionaries, http.StatusOK, fmt.Errorf("decode dictionaries: %w", err))
	}
	dicts.Airlines = upperKeys(dicts.Airlines)
	dicts.Airports = upperKeys(dicts.Airports)
	dicts.Cities = upperKeys(dicts.Cities)
	return dicts, nil
}

// get issues a throttled GET with retries and returns the response body.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	cfg := c.retryCfg.WithOnRetry(func(next int, err error, delay time.Duration) {
		c.log.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Int("attempt", next).
			Dur("delay", delay).
			Msg("retrying upstream request")
	})

	start := time.Now()
	body, err := retry.DoWithResult(ctx, func() ([]byte, error) {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return nil, retry.NewPermanent(domain.NewUpstreamError(endpoint, 0, err))
		}
		return c.do(ctx, endpoint, target)
	}, cfg)
	elapsed := time.Since(start)

	var permanent *retry.Permanent
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	if err != nil && ctx.Err() != nil && !errors.Is(err, domain.ErrUpstream) {
		err = domain.NewUpstreamError(endpoint, 0, err)
	}

	status := "ok"
	if err != nil {
		status = "error"
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode > 0 {
			status = strconv.Itoa(upstreamErr.StatusCode)
		}
		c.log.Error().
			Err(err).
			Str("endpoint", endpoint).
			Dur("duration", elapsed).
			Msg("upstream request failed")
	} else {
		c.log.Debug().
			Str("endpoint", endpoint).
			Dur("duration", elapsed).
			Int("bytes", len(body)).
			Msg("upstream request completed")
	}
	metrics.RecordUpstream(endpoint, status, elapsed.Seconds())

	return body, err
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, retry.NewPermanent(domain.NewUpstreamError(endpoint, 0, fmt.Errorf("create request: %w", err)))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.NewPermanent(domain.NewUpstreamError(endpoint, 0, ctx.Err()))
		}
		return nil, domain.NewRetryableUpstreamError(endpoint, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewRetryableUpstreamError(endpoint, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, domain.NewRetryableUpstreamError(endpoint, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	default:
		return nil, retry.NewPermanent(domain.NewUpstreamError(endpoint, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode))))
	}
}

func upperKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}
