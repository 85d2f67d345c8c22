package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/test/testutil"
)

// pipelineFixture: d is the best rated but priced far above the median,
// c is the fastest and b the cheapest.
func pipelineFixture() []domain.ScoredFlight {
	return []domain.ScoredFlight{
		scored(newFlight("a", 10000, lasting(150)), 9.0),
		scored(newFlight("b", 7000, lasting(200), withTransfers(1)), 8.0),
		scored(newFlight("c", 12000, lasting(90)), 7.0),
		scored(newFlight("d", 30000, lasting(100),
			withCarriers(domain.AirlineMeta{Code: "S7", Name: "S7 Airlines"})), 9.5),
	}
}

func topTypes(flights []domain.ScoredFlight) map[string]domain.TopType {
	out := make(map[string]domain.TopType)
	for _, f := range flights {
		if f.IsTop {
			out[f.ID] = f.TopType
		}
	}
	return out
}

// =====================================================
// BuildView Tests
// =====================================================

func TestBuildView_Defaults(t *testing.T) {
	view := BuildView(pipelineFixture(), DefaultViewOptions())

	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(view.Flights))
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 4, view.Matched)
	assert.Equal(t, domain.SortByYuviaScore, view.Sort)
	assert.Equal(t, 0, view.ActiveFilters)

	// d is over 1.3x the median (11000), so the balanced slot stays empty
	assert.Equal(t, []string{"b", "c"}, ids(view.Top))
	assert.Equal(t, map[string]domain.TopType{"b": domain.TopCheap, "c": domain.TopFast}, topTypes(view.Flights))

	assert.Equal(t, PriceSummary{Min: 7000, Avg: 14750, Count: 4, Currency: domain.DefaultCurrency}, view.Summary)
}

func TestBuildView_FiltersDriveTopAndSummary(t *testing.T) {
	opts := DefaultViewOptions()
	opts.Constraints.PriceMax = testutil.FloatPtr(20000)

	view := BuildView(pipelineFixture(), opts)

	assert.Equal(t, []string{"a", "b", "c"}, ids(view.Flights))
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 3, view.Matched)
	assert.Equal(t, 1, view.ActiveFilters)

	require.Len(t, view.Top, 3)
	assert.Equal(t, domain.TopGolden, view.Top[0].TopType)
	assert.Equal(t, "a", view.Top[0].ID)
	assert.Equal(t, "GOLDEN MIDDLE", view.Top[0].TopLabel)
	assert.Equal(t, map[string]domain.TopType{
		"a": domain.TopGolden,
		"b": domain.TopCheap,
		"c": domain.TopFast,
	}, topTypes(view.Flights))

	assert.Equal(t, 3, view.Summary.Count)
	assert.Equal(t, 7000.0, view.Summary.Min)

	// options describe the whole working set, not just what passed
	codes := make([]string, 0, len(view.Options.Airlines))
	for _, a := range view.Options.Airlines {
		codes = append(codes, a.Code)
	}
	assert.ElementsMatch(t, []string{"SU", "S7"}, codes)
}

func TestBuildView_StyleReplacesSort(t *testing.T) {
	opts := DefaultViewOptions()
	opts.Style = domain.StyleCheap
	opts.Sort = domain.SortByPriceDesc

	view := BuildView(pipelineFixture(), opts)

	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(view.Flights))
	assert.Equal(t, domain.StyleCheap, view.Style)
}

func TestBuildView_LimitAppliesLast(t *testing.T) {
	opts := DefaultViewOptions()
	opts.Limit = 2

	view := BuildView(pipelineFixture(), opts)

	assert.Equal(t, []string{"d", "a"}, ids(view.Flights))
	assert.Equal(t, 4, view.Matched)
	assert.Len(t, view.Top, 2)
	assert.Equal(t, 4, view.Summary.Count)
}

func TestBuildView_InvalidSortFallsBack(t *testing.T) {
	view := BuildView(pipelineFixture(), ViewOptions{Sort: "nope"})

	assert.Equal(t, domain.SortByYuviaScore, view.Sort)
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(view.Flights))
}

func TestBuildView_NothingMatches(t *testing.T) {
	opts := DefaultViewOptions()
	opts.Constraints.PriceMax = testutil.FloatPtr(100)

	view := BuildView(pipelineFixture(), opts)

	assert.Empty(t, view.Flights)
	assert.Empty(t, view.Top)
	assert.True(t, view.Summary.Empty())
	assert.Equal(t, 4, view.Total)
	assert.NotEmpty(t, view.Options.Airlines)
}

func TestBuildView_DoesNotMutateInput(t *testing.T) {
	flights := pipelineFixture()

	_ = BuildView(flights, DefaultViewOptions())

	for _, f := range flights {
		assert.False(t, f.IsTop, f.ID)
		assert.Equal(t, domain.TopNone, f.TopType, f.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(flights))
}

func TestBuildView_CurrencyOverride(t *testing.T) {
	flights := pipelineFixture()
	flights[0].Currency = "USD"

	opts := DefaultViewOptions()
	opts.Currency = "USD"

	view := BuildView(flights, opts)

	assert.Equal(t, PriceSummary{Min: 10000, Avg: 10000, Count: 1, Currency: "USD"}, view.Summary)
}
