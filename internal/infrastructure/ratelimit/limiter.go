// Package ratelimit throttles outbound calls per upstream endpoint.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config is the default budget applied to every endpoint.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns a budget suited to a single interactive client.
func DefaultConfig() Config {
	return Config{RequestsPerSecond: 5, Burst: 10}
}

// EndpointLimiter keeps one token bucket per endpoint name.
type EndpointLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

// NewEndpointLimiter creates a limiter; a non-positive rate disables throttling.
func NewEndpointLimiter(cfg Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// Limiter returns the bucket for endpoint, creating it on first use.
func (l *EndpointLimiter) Limiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[endpoint]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.limiters[endpoint]; ok {
		return limiter
	}

	limiter = newLimiter(l.defaults.RequestsPerSecond, l.defaults.Burst)
	l.limiters[endpoint] = limiter
	return limiter
}

// SetLimit overrides the budget for one endpoint.
func (l *EndpointLimiter) SetLimit(endpoint string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[endpoint] = newLimiter(rps, burst)
}

// Wait blocks until endpoint may issue a request or ctx is done.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	return l.Limiter(endpoint).Wait(ctx)
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
