package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuvia/flight-results/internal/domain"
)

func TestSummarizePrices(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   PriceSummary
	}{
		{
			name:   "outlier above five medians is dropped",
			prices: []float64{100, 110, 120, 10000},
			want:   PriceSummary{Min: 100, Avg: 110, Count: 3, Currency: "RUB"},
		},
		{
			name:   "zero prices are ignored",
			prices: []float64{0, 200, 400},
			want:   PriceSummary{Min: 200, Avg: 300, Count: 2, Currency: "RUB"},
		},
		{
			name:   "single price",
			prices: []float64{4500},
			want:   PriceSummary{Min: 4500, Avg: 4500, Count: 1, Currency: "RUB"},
		},
		{
			name:   "nothing priced",
			prices: []float64{0, 0},
			want:   PriceSummary{Currency: "RUB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights := make([]domain.ScoredFlight, len(tt.prices))
			for i, p := range tt.prices {
				flights[i] = scored(newFlight("f", p), 7)
			}
			got := SummarizePrices(flights, "RUB")
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Avg, got.Avg, 1e-9)
			assert.Equal(t, tt.want.Currency, got.Currency)
		})
	}
}

func TestSummarizePrices_Currency(t *testing.T) {
	flights := []domain.ScoredFlight{
		scored(newFlight("rub", 5000), 7),
		scored(newFlight("usd", 60, withCurrency("USD")), 7),
		scored(newFlight("blank", 7000, withCurrency("")), 7),
	}

	rub := SummarizePrices(flights, "RUB")
	assert.Equal(t, 2, rub.Count)
	assert.Equal(t, 5000.0, rub.Min)
	assert.Equal(t, 6000.0, rub.Avg)

	usd := SummarizePrices(flights, "USD")
	assert.Equal(t, 2, usd.Count)
	assert.Equal(t, 60.0, usd.Min)
}

func TestPriceSummary_Empty(t *testing.T) {
	assert.True(t, SummarizePrices(nil, "RUB").Empty())
	assert.False(t, PriceSummary{Count: 1}.Empty())
}
