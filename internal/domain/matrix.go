package domain

// MatrixEntry is one day of the price calendar.
type MatrixEntry struct {
	// Date is the ISO calendar date (YYYY-MM-DD)
	Date string `json:"date"`

	// DateStr is the display form (dd.mm.yyyy unless upstream supplied one)
	DateStr string `json:"date_str"`

	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// CalendarDay is a matrix entry annotated for rendering.
type CalendarDay struct {
	MatrixEntry
	Cheapest bool `json:"cheapest"`
	Selected bool `json:"selected"`
}
