// Package usecase contains the scoring, filtering and presentation logic of
// the flight results service. Functions over flight lists are pure; the
// stateful parts live in ResultsSession and SessionRegistry.
package usecase

import "github.com/yuvia/flight-results/internal/domain"

// ViewOptions describes how the working set is turned into a results view.
type ViewOptions struct {
	// Constraints are the user-selected filters
	Constraints domain.FilterConstraints

	// Style replaces the plain sort when set
	Style domain.TripStyle

	// Sort is the plain sort key (default: yuvia score)
	Sort domain.SortKey

	// Currency selects the flights counted by the price summary; empty uses the session currency
	Currency string

	// Limit caps the returned flights, 0 means no cap. Top-3 and the summary use the full list.
	Limit int
}

// DefaultViewOptions returns ViewOptions with no filters and the default sort.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Sort: domain.SortByYuviaScore,
	}
}
