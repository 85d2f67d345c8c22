package usecase

import "github.com/yuvia/flight-results/internal/domain"

// ResultsView is one rendering of the working set.
type ResultsView struct {
	// Flights is the filtered and ordered list with top-3 flags set
	Flights []domain.ScoredFlight `json:"flights"`

	// Top holds the 0-3 recommendations in order balanced, cheapest, fastest
	Top []domain.ScoredFlight `json:"top"`

	// Total is the size of the working set before filtering
	Total int `json:"total"`

	// Matched is the number of flights that passed the filters
	Matched int `json:"matched"`

	Options       domain.FilterOptions `json:"options"`
	Summary       PriceSummary         `json:"summary"`
	ActiveFilters int                  `json:"activeFilters"`

	Style domain.TripStyle `json:"style"`
	Sort  domain.SortKey   `json:"sort"`
}

// BuildView runs the presentation pipeline over a scored working set:
//  1. filter by the constraints and triggers
//  2. reorder by the trip style, or sort by the plain key when no style is set
//  3. pick the top-3 from the styled list, or from the filtered order
//  4. mark top flags on the ordered list
//  5. attach filter options, the price summary and the active filter count
//
// The input is never mutated.
func BuildView(scored []domain.ScoredFlight, opts ViewOptions) ResultsView {
	filtered := ApplyFilters(scored, opts.Constraints)

	sortKey := opts.Sort
	if !sortKey.IsValid() {
		sortKey = domain.SortByYuviaScore
	}

	var ordered, base []domain.ScoredFlight
	if opts.Style != domain.StyleNone {
		ordered = ApplyTripStyle(filtered, opts.Style)
		base = ordered
	} else {
		base = filtered
		ordered = SortBySelection(filtered, sortKey)
	}

	top := Top3(base)
	ordered = MarkTop(ordered, top)

	currency := opts.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	view := ResultsView{
		Top:           top,
		Total:         len(scored),
		Matched:       len(ordered),
		Options:       CollectFilterOptions(scored),
		Summary:       SummarizePrices(ordered, currency),
		ActiveFilters: opts.Constraints.ActiveCount(),
		Style:         opts.Style,
		Sort:          sortKey,
	}

	if opts.Limit > 0 && len(ordered) > opts.Limit {
		ordered = ordered[:opts.Limit]
	}
	view.Flights = ordered
	return view
}
