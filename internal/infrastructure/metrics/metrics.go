// Package metrics provides Prometheus metrics for the flight results service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "yuvia"

var (
	// UpstreamRequests counts calls to external sources by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream requests",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamDuration measures upstream call latency including retries.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// OffersNormalized counts offers by normalization outcome (kept, dropped).
	OffersNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_normalized_total",
			Help:      "Offers processed by the normalizer",
		},
		[]string{"shape", "outcome"},
	)

	// PlacesCacheLookups counts autocomplete cache hits and misses.
	PlacesCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "places_cache_lookups_total",
			Help:      "Autocomplete cache lookups",
		},
		[]string{"result"},
	)

	// DictionaryStale is 1 while the dictionary cache serves expired data.
	DictionaryStale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dictionary_stale",
			Help:      "Dictionary cache staleness (1 = stale or empty, 0 = fresh)",
		},
	)

	// HTTPRequests counts served API requests by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration measures request latency by route.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ActiveSessions tracks live results sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live results sessions",
		},
	)
)

// RecordUpstream records one upstream call.
func RecordUpstream(endpoint, status string, seconds float64) {
	UpstreamRequests.WithLabelValues(endpoint, status).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordHTTP records one served request.
func RecordHTTP(method, route, status string, seconds float64) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordOffer records the outcome of normalizing one offer.
func RecordOffer(shape string, kept bool) {
	outcome := "kept"
	if !kept {
		outcome = "dropped"
	}
	OffersNormalized.WithLabelValues(shape, outcome).Inc()
}

// RecordPlacesLookup records an autocomplete cache lookup.
func RecordPlacesLookup(hit bool) {
	if hit {
		PlacesCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	PlacesCacheLookups.WithLabelValues("miss").Inc()
}

// SetDictionaryStale flags whether dictionaries are stale.
func SetDictionaryStale(stale bool) {
	if stale {
		DictionaryStale.Set(1)
		return
	}
	DictionaryStale.Set(0)
}
