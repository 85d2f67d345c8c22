package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DefaultCurrency is used when a query does not name one.
const DefaultCurrency = "RUB"

// SearchQuery defines the parameters of one trip search.
type SearchQuery struct {
	// Origin is the IATA code of the origin city or airport (e.g., "MOW")
	Origin string `json:"origin"`

	// OriginCity is the free-text origin name; used to resolve Origin when it is empty
	OriginCity string `json:"originCity,omitempty"`

	// Destination is the IATA code of the destination city or airport (e.g., "LED")
	Destination string `json:"destination"`

	// DestinationCity is the free-text destination name
	DestinationCity string `json:"destinationCity,omitempty"`

	// DepartDate is the departure date in YYYY-MM-DD format
	DepartDate string `json:"departDate"`

	// ReturnDate is the return date in YYYY-MM-DD format, empty for one-way trips
	ReturnDate string `json:"returnDate,omitempty"`

	OneWay bool `json:"oneway"`

	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`

	// Cabin is the travel class: "eco" or "business"; empty means no preference
	Cabin string `json:"cabin,omitempty"`

	Currency string `json:"currency"`
}

// codeRegex matches IATA city/airport codes (3 letters, any case).
var codeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

var validCabins = map[string]bool{
	"eco":      true,
	"business": true,
}

// Validate checks the query before any network call.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (q *SearchQuery) Validate() error {
	if q.Origin == "" && strings.TrimSpace(q.OriginCity) == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if q.Origin != "" && !codeRegex.MatchString(strings.TrimSpace(q.Origin)) {
		return fmt.Errorf("%w: origin must be a 3-letter IATA code, got %q", ErrInvalidRequest, q.Origin)
	}

	if q.Destination == "" && strings.TrimSpace(q.DestinationCity) == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if q.Destination != "" && !codeRegex.MatchString(strings.TrimSpace(q.Destination)) {
		return fmt.Errorf("%w: destination must be a 3-letter IATA code, got %q", ErrInvalidRequest, q.Destination)
	}

	if q.DepartDate == "" {
		return fmt.Errorf("%w: departure date is required", ErrInvalidRequest)
	}
	if _, err := time.Parse(DateLayout, q.DepartDate); err != nil {
		return fmt.Errorf("%w: departure date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, q.DepartDate)
	}

	if !q.OneWay {
		if q.ReturnDate == "" {
			return fmt.Errorf("%w: return date is required unless the trip is one-way", ErrInvalidRequest)
		}
		if _, err := time.Parse(DateLayout, q.ReturnDate); err != nil {
			return fmt.Errorf("%w: return date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, q.ReturnDate)
		}
	}

	if q.Adults < 0 || q.Children < 0 || q.Infants < 0 {
		return fmt.Errorf("%w: passenger counts cannot be negative", ErrInvalidRequest)
	}
	if q.Adults+q.Children+q.Infants > 9 {
		return fmt.Errorf("%w: passengers cannot exceed 9", ErrInvalidRequest)
	}
	if q.Infants > 0 && q.Infants > max(q.Adults, 1) {
		return fmt.Errorf("%w: each infant needs an accompanying adult", ErrInvalidRequest)
	}

	if q.Cabin != "" && !validCabins[q.Cabin] {
		return fmt.Errorf("%w: cabin must be one of: eco, business; got %q", ErrInvalidRequest, q.Cabin)
	}

	return nil
}

// Normalize applies defaults and clamps dates against today.
// The departure date is never in the past and the return date is never
// before the departure date. One-way queries drop the return date.
// Dates that are not YYYY-MM-DD are left as they are for Validate to reject.
func (q *SearchQuery) Normalize(today time.Time) {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
	q.OriginCity = strings.TrimSpace(q.OriginCity)
	q.DestinationCity = strings.TrimSpace(q.DestinationCity)

	if q.Currency == "" {
		q.Currency = DefaultCurrency
	}
	q.Currency = strings.ToUpper(q.Currency)
	if q.Adults < 1 {
		q.Adults = 1
	}

	todayISO := today.Format(DateLayout)
	if isISODate(q.DepartDate) && q.DepartDate < todayISO {
		q.DepartDate = todayISO
	}

	if q.OneWay {
		q.ReturnDate = ""
		return
	}
	if isISODate(q.ReturnDate) && isISODate(q.DepartDate) && q.ReturnDate < q.DepartDate {
		q.ReturnDate = q.DepartDate
	}
}

// isISODate reports whether s is a valid YYYY-MM-DD date. Such dates order
// chronologically as strings.
func isISODate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Params builds the upstream search query string.
func (q *SearchQuery) Params() url.Values {
	currency := q.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	adults := q.Adults
	if adults < 1 {
		adults = 1
	}

	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	params.Set("currency", currency)
	if q.OneWay {
		params.Set("oneway", "yes")
		params.Set("ret", "")
	} else {
		params.Set("oneway", "no")
		params.Set("ret", q.ReturnDate)
	}
	params.Set("depart", q.DepartDate)
	params.Set("adults", strconv.Itoa(adults))
	params.Set("children", strconv.Itoa(max(q.Children, 0)))
	params.Set("infants", strconv.Itoa(max(q.Infants, 0)))
	if q.Cabin != "" {
		params.Set("cabin", q.Cabin)
	}
	return params
}

// Passengers returns the total passenger count.
func (q *SearchQuery) Passengers() int {
	return q.Adults + q.Children + q.Infants
}

// DepartTime parses DepartDate, zero time when unset or invalid.
func (q *SearchQuery) DepartTime() time.Time {
	t, _ := time.Parse(DateLayout, q.DepartDate)
	return t
}

// ReturnTime parses ReturnDate, zero time when unset, invalid or one-way.
func (q *SearchQuery) ReturnTime() time.Time {
	if q.OneWay {
		return time.Time{}
	}
	t, _ := time.Parse(DateLayout, q.ReturnDate)
	return t
}
