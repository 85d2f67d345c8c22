package domain

// StressLevel classifies how tiring an itinerary is.
type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

// TopType identifies which recommendation slot a flight occupies.
type TopType string

const (
	TopNone   TopType = ""
	TopGolden TopType = "golden"
	TopCheap  TopType = "cheap"
	TopFast   TopType = "fast"
)

// Label returns the card badge text for the recommendation slot.
func (t TopType) Label() string {
	switch t {
	case TopGolden:
		return "GOLDEN MIDDLE"
	case TopCheap:
		return "CHEAPEST"
	case TopFast:
		return "FASTEST"
	default:
		return ""
	}
}

// Hint returns a one-line explanation shown under a recommendation.
func (t TopType) Hint() string {
	switch t {
	case TopGolden:
		return "Balance of price and comfort without extreme layovers or night flights"
	case TopCheap:
		return "Fits when saving money matters most"
	case TopFast:
		return "Spend the least time on the road"
	default:
		return ""
	}
}

// ScoredFlight is a Flight annotated by the scoring engine.
// Annotations are produced as new values; the embedded Flight is never changed.
type ScoredFlight struct {
	Flight

	StressLevel  StressLevel `json:"stressLevel"`
	StressPoints int         `json:"stressPoints"`

	// Rating is the comfort/value score, one decimal place within [6.0, 9.7]
	Rating float64 `json:"rating"`

	// YuviaScore is round(Rating * 10)
	YuviaScore int `json:"yuviaScore"`

	IsTop    bool    `json:"isTop"`
	TopLabel string  `json:"topLabel"`
	TopType  TopType `json:"topType"`
}

// FlightIndex maps flight ids to their position for quick lookup.
func FlightIndex(flights []ScoredFlight) map[string]int {
	index := make(map[string]int, len(flights))
	for i := range flights {
		if _, exists := index[flights[i].ID]; !exists {
			index[flights[i].ID] = i
		}
	}
	return index
}
