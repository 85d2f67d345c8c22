package usecase

import (
	"math"
	"sort"

	"github.com/yuvia/flight-results/internal/domain"
)

// SortBySelection orders flights by a plain sort key.
// Uses stable sorting and returns a copy; unknown keys sort by yuvia score.
//
// Sort keys:
//   - SortByYuviaScore (default): descending yuvia score
//   - SortByPriceAsc / SortByPriceDesc: by price
//   - SortByDurationAsc: ascending aggregate duration
//   - SortByDepartAsc: ascending outbound departure, unknown times last
func SortBySelection(flights []domain.ScoredFlight, key domain.SortKey) []domain.ScoredFlight {
	result := make([]domain.ScoredFlight, len(flights))
	copy(result, flights)
	if len(result) <= 1 {
		return result
	}

	switch key {
	case domain.SortByPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case domain.SortByPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price > result[j].Price
		})
	case domain.SortByDurationAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DurationMinutes < result[j].DurationMinutes
		})
	case domain.SortByDepartAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return departKey(&result[i]) < departKey(&result[j])
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].YuviaScore > result[j].YuviaScore
		})
	}
	return result
}

func departKey(f *domain.ScoredFlight) float64 {
	if t := f.OutboundDepartAt(); t != nil {
		return float64(t.Unix())
	}
	return math.Inf(1)
}

// ApplyTripStyle reorders flights for a trip style and returns a copy.
// StyleNone returns the flights in their input order.
//
// Styles:
//   - calm: calm score descending, then price ascending
//   - balanced: rating per unit of price descending, then price ascending
//   - cheap: price ascending
func ApplyTripStyle(flights []domain.ScoredFlight, style domain.TripStyle) []domain.ScoredFlight {
	result := make([]domain.ScoredFlight, len(flights))
	copy(result, flights)
	if len(result) <= 1 {
		return result
	}

	switch style {
	case domain.StyleCalm:
		minDuration := minScoredDuration(result)
		type calmEntry struct {
			flight domain.ScoredFlight
			score  float64
		}
		entries := make([]calmEntry, len(result))
		for i := range result {
			entries[i] = calmEntry{flight: result[i], score: CalmScore(&result[i], minDuration)}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].score != entries[j].score {
				return entries[i].score > entries[j].score
			}
			return entries[i].flight.Price < entries[j].flight.Price
		})
		for i := range entries {
			result[i] = entries[i].flight
		}
	case domain.StyleBalanced:
		sort.SliceStable(result, func(i, j int) bool {
			vi, vj := valueScore(&result[i]), valueScore(&result[j])
			if vi != vj {
				return vi > vj
			}
			return result[i].Price < result[j].Price
		})
	case domain.StyleCheap:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	}
	return result
}

func valueScore(f *domain.ScoredFlight) float64 {
	price := f.Price
	if price <= 0 {
		price = 1
	}
	return f.Rating / price
}

// CalmScore ranks how relaxed a trip is. It starts at 50, adds 30/18/8/2 for
// 0/1/2/3+ transfers, subtracts 8 per night departure, 4 per early departure
// and 6 per night arrival, adjusts for duration over minDuration (+4 at the
// minimum, -2 within an hour, -6 within three, -12 beyond) and adds
// (rating - 6) * 1.1.
func CalmScore(f *domain.ScoredFlight, minDuration int) float64 {
	score := 50.0

	switch {
	case f.Transfers <= 0:
		score += 30
	case f.Transfers == 1:
		score += 18
	case f.Transfers == 2:
		score += 8
	default:
		score += 2
	}

	for _, t := range f.DepartureTimes() {
		if domain.IsNightTime(t) {
			score -= 8
		} else if domain.IsEarlyTime(t) {
			score -= 4
		}
	}
	for _, t := range f.ArrivalTimes() {
		if domain.IsNightTime(t) {
			score -= 6
		}
	}

	if minDuration > 0 {
		d := f.DurationMinutes
		if d <= 0 {
			d = minDuration
		}
		switch diff := d - minDuration; {
		case diff <= 0:
			score += 4
		case diff <= 60:
			score -= 2
		case diff <= 180:
			score -= 6
		default:
			score -= 12
		}
	}

	score += (f.Rating - 6) * 1.1
	return score
}
