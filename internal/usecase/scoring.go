package usecase

import (
	"math"
	"sort"

	"github.com/yuvia/flight-results/internal/domain"
)

// Rating bounds and the balanced-pick price ceiling.
const (
	ratingMin = 6.0
	ratingMax = 9.7

	// balancedPriceCeiling caps the golden pick at this multiple of the median price
	balancedPriceCeiling = 1.3
)

// RecalculateScores annotates every flight with stress, rating and yuvia score.
//
// The median price and the minimum positive duration are taken over the whole
// input, so scores are relative to the working set they are computed for:
//
//	rating = 1 + price + duration + transfers + stress + civilized hours
//
// clamped to [6.0, 9.7] and rounded to one decimal place.
//
// Behavior:
//   - Returns an empty slice for empty input
//   - Does NOT mutate the input flights; annotations are new values
//   - Top-3 flags are left unset (see MarkTop)
func RecalculateScores(flights []domain.Flight) []domain.ScoredFlight {
	result := make([]domain.ScoredFlight, len(flights))
	if len(flights) == 0 {
		return result
	}

	minDuration := MinDuration(flights)
	median := MedianPrice(flightPrices(flights))
	if median == 0 {
		median = 1
	}

	for i := range flights {
		f := &flights[i]
		points, level := ComputeStress(f, minDuration)

		raw := 1 +
			PriceComponent(f.Price, median) +
			DurationComponent(f.DurationMinutes, minDuration) +
			transferComponent(f.Transfers) +
			stressComponent(level) +
			hoursComponent(f)

		rating := roundTenth(clamp(raw, ratingMin, ratingMax))

		result[i] = domain.ScoredFlight{
			Flight:       *f,
			StressLevel:  level,
			StressPoints: points,
			Rating:       rating,
			YuviaScore:   int(math.Round(rating * 10)),
		}
	}
	return result
}

// ComputeStress scores how tiring a flight is.
//
// Points accumulate from transfers (2 for the first, 1 for each further one),
// one per night departure or arrival, one per early departure that is not
// already night, and a duration penalty over minDuration: +1 above 2h,
// +2 above 4h, +3 above 6h. A minDuration of 0 disables the penalty.
func ComputeStress(f *domain.Flight, minDuration int) (int, domain.StressLevel) {
	points := 0
	if f.Transfers >= 1 {
		points += 2 + (f.Transfers - 1)
	}

	for _, t := range f.DepartureTimes() {
		switch {
		case domain.IsNightTime(t):
			points++
		case domain.IsEarlyTime(t):
			points++
		}
	}
	for _, t := range f.ArrivalTimes() {
		if domain.IsNightTime(t) {
			points++
		}
	}

	if minDuration > 0 {
		excess := max(0, f.DurationMinutes-minDuration)
		hours := float64(excess) / 60
		switch {
		case hours > 6:
			points += 3
		case hours > 4:
			points += 2
		case hours > 2:
			points++
		}
	}

	return points, StressLevelFor(points)
}

// StressLevelFor maps stress points to a level: <=2 low, <=5 medium, else high.
func StressLevelFor(points int) domain.StressLevel {
	switch {
	case points <= 2:
		return domain.StressLow
	case points <= 5:
		return domain.StressMedium
	default:
		return domain.StressHigh
	}
}

// MedianPrice returns the median of the positive prices, 0 when there are none.
// An even count averages the two middle values.
func MedianPrice(prices []float64) float64 {
	positive := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p > 0 {
			positive = append(positive, p)
		}
	}
	if len(positive) == 0 {
		return 0
	}

	sort.Float64s(positive)
	mid := len(positive) / 2
	if len(positive)%2 == 1 {
		return positive[mid]
	}
	return (positive[mid-1] + positive[mid]) / 2
}

// PriceComponent rewards prices below the median: (2 - clamp(price/median, 0.6, 1.8)) * 3.
func PriceComponent(price, median float64) float64 {
	ratio := 1.0
	if median > 0 {
		ratio = price / median
	}
	if ratio == 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	return (2 - clamp(ratio, 0.6, 1.8)) * 3
}

// DurationComponent rewards durations near the minimum: (2.3 - clamp(duration/min, 1, 2.2)) * 3.
// An unknown duration counts as the minimum.
func DurationComponent(duration, minDuration int) float64 {
	ratio := 1.0
	if minDuration > 0 {
		d := duration
		if d <= 0 {
			d = minDuration
		}
		ratio = float64(d) / float64(minDuration)
	}
	return (2.3 - clamp(ratio, 1, 2.2)) * 3
}

func transferComponent(transfers int) float64 {
	switch transfers {
	case 0:
		return 3
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

func stressComponent(level domain.StressLevel) float64 {
	switch level {
	case domain.StressLow:
		return 2
	case domain.StressMedium:
		return 1
	default:
		return 0
	}
}

// hoursComponent gives +0.4 for an outbound departure that is neither night
// nor early and +0.2 for an outbound arrival that is not at night.
func hoursComponent(f *domain.Flight) float64 {
	score := 0.0
	if depart := f.OutboundDepartAt(); depart != nil && !domain.IsNightTime(*depart) && !domain.IsEarlyTime(*depart) {
		score += 0.4
	}
	if arrive := f.OutboundArriveAt(); arrive != nil && !domain.IsNightTime(*arrive) {
		score += 0.2
	}
	return score
}

// MinDuration returns the smallest positive aggregate duration, 0 when none is known.
func MinDuration(flights []domain.Flight) int {
	best := 0
	for i := range flights {
		d := flights[i].DurationMinutes
		if d > 0 && (best == 0 || d < best) {
			best = d
		}
	}
	return best
}

func minScoredDuration(flights []domain.ScoredFlight) int {
	best := 0
	for i := range flights {
		d := flights[i].DurationMinutes
		if d > 0 && (best == 0 || d < best) {
			best = d
		}
	}
	return best
}

// Top3 picks up to three recommendations among flights with a positive price:
// the balanced pick (best rating, then lowest price, only when priced within
// 1.3x the median), the cheapest and the fastest. A flight already picked is
// not repeated, so the balanced slot may stay empty and the result holds 0-3
// flights in the order balanced, cheapest, fastest.
func Top3(flights []domain.ScoredFlight) []domain.ScoredFlight {
	working := make([]*domain.ScoredFlight, 0, len(flights))
	prices := make([]float64, 0, len(flights))
	for i := range flights {
		if flights[i].Price > 0 {
			working = append(working, &flights[i])
			prices = append(prices, flights[i].Price)
		}
	}
	if len(working) == 0 {
		return []domain.ScoredFlight{}
	}
	median := MedianPrice(prices)

	picks := make([]domain.ScoredFlight, 0, 3)
	seen := make(map[string]struct{}, 3)
	add := func(f *domain.ScoredFlight, top domain.TopType) {
		if _, dup := seen[f.ID]; dup {
			return
		}
		seen[f.ID] = struct{}{}
		pick := *f
		pick.IsTop = true
		pick.TopType = top
		pick.TopLabel = top.Label()
		picks = append(picks, pick)
	}

	balanced, cheapest, fastest := working[0], working[0], working[0]
	for _, f := range working[1:] {
		if f.Rating > balanced.Rating || (f.Rating == balanced.Rating && f.Price < balanced.Price) {
			balanced = f
		}
		if f.Price < cheapest.Price {
			cheapest = f
		}
		if fastestKey(f) < fastestKey(fastest) {
			fastest = f
		}
	}

	if median == 0 || balanced.Price <= median*balancedPriceCeiling {
		add(balanced, domain.TopGolden)
	}
	add(cheapest, domain.TopCheap)
	add(fastest, domain.TopFast)

	return picks
}

// fastestKey is the outbound duration, or the aggregate one; unknown sorts last.
func fastestKey(f *domain.ScoredFlight) float64 {
	if d := f.OutboundDuration(); d > 0 {
		return float64(d)
	}
	return math.Inf(1)
}

// MarkTop returns a copy of flights with top-3 flags set from top by id.
// Flights absent from top have their flags cleared.
func MarkTop(flights, top []domain.ScoredFlight) []domain.ScoredFlight {
	byID := make(map[string]domain.TopType, len(top))
	for _, t := range top {
		byID[t.ID] = t.TopType
	}

	result := make([]domain.ScoredFlight, len(flights))
	for i, f := range flights {
		topType, ok := byID[f.ID]
		f.IsTop = ok
		f.TopType = topType
		f.TopLabel = topType.Label()
		result[i] = f
	}
	return result
}

// RecommendationHint returns the explanation shown under a top-3 pick.
func RecommendationHint(top domain.TopType) string {
	return top.Hint()
}

func flightPrices(flights []domain.Flight) []float64 {
	prices := make([]float64, len(flights))
	for i := range flights {
		prices[i] = flights[i].Price
	}
	return prices
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundTenth rounds to one decimal place, halves away from zero.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
