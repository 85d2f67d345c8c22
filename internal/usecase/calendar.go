package usecase

import "github.com/yuvia/flight-results/internal/domain"

// BuildCalendar annotates price-matrix entries for rendering. Every entry
// priced at the minimum positive price is marked cheapest, and the entry
// whose date equals selectedDate (YYYY-MM-DD) is marked selected.
func BuildCalendar(entries []domain.MatrixEntry, selectedDate string) []domain.CalendarDay {
	days := make([]domain.CalendarDay, len(entries))

	minPrice := 0.0
	for _, e := range entries {
		if e.Price > 0 && (minPrice == 0 || e.Price < minPrice) {
			minPrice = e.Price
		}
	}

	for i, e := range entries {
		days[i] = domain.CalendarDay{
			MatrixEntry: e,
			Cheapest:    minPrice > 0 && e.Price == minPrice,
			Selected:    selectedDate != "" && e.Date == selectedDate,
		}
	}
	return days
}
