package usecase

import "github.com/yuvia/flight-results/internal/domain"

// outlierFactor drops prices above this multiple of the median from the summary.
const outlierFactor = 5

// PriceSummary is the "from X, avg Y" chip shown above the results.
type PriceSummary struct {
	Min      float64 `json:"min"`
	Avg      float64 `json:"avg"`
	Count    int     `json:"count"`
	Currency string  `json:"currency"`
}

// Empty reports whether no price could be summarized.
func (s PriceSummary) Empty() bool {
	return s.Count == 0
}

// SummarizePrices computes the price chip over flights priced in currency.
// Flights without a currency are treated as priced in currency. Prices above
// 5x the median are ignored as outliers.
func SummarizePrices(flights []domain.ScoredFlight, currency string) PriceSummary {
	summary := PriceSummary{Currency: currency}

	prices := make([]float64, 0, len(flights))
	for i := range flights {
		f := &flights[i]
		if f.Currency != "" && f.Currency != currency {
			continue
		}
		if f.Price > 0 {
			prices = append(prices, f.Price)
		}
	}
	if len(prices) == 0 {
		return summary
	}

	median := MedianPrice(prices)
	total := 0.0
	for _, p := range prices {
		if median > 0 && p > median*outlierFactor {
			continue
		}
		if summary.Count == 0 || p < summary.Min {
			summary.Min = p
		}
		total += p
		summary.Count++
	}
	if summary.Count > 0 {
		summary.Avg = total / float64(summary.Count)
	}
	return summary
}
