package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("search", "ok"))

	RecordUpstream("search", "ok", 0.25)

	assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("search", "ok")))
}

func TestRecordOffer(t *testing.T) {
	keptBefore := testutil.ToFloat64(OffersNormalized.WithLabelValues("compact", "kept"))
	droppedBefore := testutil.ToFloat64(OffersNormalized.WithLabelValues("compact", "dropped"))

	RecordOffer("compact", true)
	RecordOffer("compact", false)
	RecordOffer("compact", false)

	assert.Equal(t, keptBefore+1, testutil.ToFloat64(OffersNormalized.WithLabelValues("compact", "kept")))
	assert.Equal(t, droppedBefore+2, testutil.ToFloat64(OffersNormalized.WithLabelValues("compact", "dropped")))
}

func TestRecordPlacesLookup(t *testing.T) {
	hits := testutil.ToFloat64(PlacesCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(PlacesCacheLookups.WithLabelValues("miss"))

	RecordPlacesLookup(true)
	RecordPlacesLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(PlacesCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(PlacesCacheLookups.WithLabelValues("miss")))
}

func TestSetDictionaryStale(t *testing.T) {
	SetDictionaryStale(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(DictionaryStale))

	SetDictionaryStale(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(DictionaryStale))
}

func TestRecordHTTP(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200"))

	RecordHTTP("GET", "/health", "200", 0.01)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200")))
}
