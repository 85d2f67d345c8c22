// Package http provides the HTTP handler layer for the flight results API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

// SearchRequest represents the request body for a trip search.
type SearchRequest struct {
	// Origin is the IATA code of the origin city or airport (e.g., "MOW")
	Origin string `json:"origin" example:"MOW"`

	// OriginCity is a free-text city name, resolved through autocomplete when Origin is empty
	OriginCity string `json:"originCity,omitempty" example:"Москва"`

	// Destination is the IATA code of the destination city or airport (e.g., "LED")
	Destination string `json:"destination" example:"LED"`

	// DestinationCity is a free-text city name, resolved like OriginCity
	DestinationCity string `json:"destinationCity,omitempty"`

	// DepartDate is the departure date in YYYY-MM-DD format; past dates move to today
	DepartDate string `json:"departDate" example:"2024-06-01"`

	// ReturnDate is required unless OneWay is set
	ReturnDate string `json:"returnDate,omitempty" example:"2024-06-05"`

	OneWay bool `json:"oneway"`

	// Adults defaults to 1; all passengers together cannot exceed 9
	Adults   int `json:"adults" example:"1"`
	Children int `json:"children,omitempty"`
	Infants  int `json:"infants,omitempty"`

	// Cabin is "eco" or "business" (optional)
	Cabin string `json:"cabin,omitempty" example:"eco"`

	// Currency is a 3-letter code; the service default applies when empty
	Currency string `json:"currency,omitempty" example:"RUB"`

	// View optionally filters and orders the first page of results
	View *ViewRequest `json:"view,omitempty"`
}

// ViewRequest describes filters, trip style and sort for a results view.
// Example: {"priceMax": 20000, "stops": "0", "outboundWindows": ["morning"], "triggers": ["no_night_dep"], "style": "calm"}
type ViewRequest struct {
	// PriceMin and PriceMax bound the price inclusively
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty" example:"20000"`

	// Stops is "any", "0" (direct) or "1" (at most one transfer)
	Stops string `json:"stops,omitempty" example:"any"`

	// Airlines keeps flights where any carrier is listed
	Airlines []string `json:"airlines,omitempty" example:"SU,S7"`

	OriginAirports      []string `json:"originAirports,omitempty"`
	DestinationAirports []string `json:"destinationAirports,omitempty"`

	// MaxDurationHours caps each leg's duration
	MaxDurationHours *float64 `json:"maxDurationHours,omitempty" example:"6"`

	// OutboundWindows and ReturnWindows are night, morning, day or evening
	OutboundWindows []string `json:"outboundWindows,omitempty" example:"morning,day"`
	ReturnWindows   []string `json:"returnWindows,omitempty"`

	// Triggers are no_night_dep, no_early_dep, no_overnight, direct_only
	Triggers []string `json:"triggers,omitempty" example:"no_night_dep"`

	// Style is calm, balanced or cheap and replaces the sort when set
	Style string `json:"style,omitempty" example:"calm"`

	// Sort is yuvia_score, price_asc, price_desc, duration_asc or depart_asc
	Sort string `json:"sort,omitempty" example:"yuvia_score"`

	// Currency selects the flights counted by the price summary
	Currency string `json:"currency,omitempty"`

	// Limit caps the returned flights, 0 returns all
	Limit int `json:"limit,omitempty"`
}

// AssistantRequest is one message to the guided assistant. The conversation
// returned by the previous reply must be sent back; omit it to start over.
type AssistantRequest struct {
	Conversation *usecase.Conversation `json:"conversation,omitempty"`
	Text         string                `json:"text" example:"Хочу на море из Москвы в июне"`
}

// Validation regex patterns.
var (
	codePattern     = regexp.MustCompile(`^[A-Za-z]{3}$`)
	airlinePattern  = regexp.MustCompile(`^[A-Za-z0-9]{2,3}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// Valid cabins.
var validCabins = map[string]bool{
	"eco":      true,
	"business": true,
	"":         true, // Empty means no preference
}

// Valid stop options.
var validStops = map[string]bool{
	string(domain.StopsAny):    true,
	string(domain.StopsDirect): true,
	string(domain.StopsOneMax): true,
	"":                         true,
}

// Valid trigger names.
var validTriggers = map[string]bool{
	domain.TriggerNoNightDeparture: true,
	domain.TriggerNoEarlyDeparture: true,
	domain.TriggerNoOvernight:      true,
	domain.TriggerDirectOnly:       true,
}

// maxTextLength bounds one assistant message in runes.
const maxTextLength = 500

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
// Codes are normalized to uppercase on success.
func (r *SearchRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Origin = validatePlace(errs, "origin", r.Origin, r.OriginCity)
	r.Destination = validatePlace(errs, "destination", r.Destination, r.DestinationCity)
	if r.Origin != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}

	validateDate(errs, "departDate", r.DepartDate, true)
	if !r.OneWay {
		validateDate(errs, "returnDate", r.ReturnDate, true)
	}

	r.validatePassengers(errs)

	if !validCabins[strings.ToLower(r.Cabin)] {
		errs.Add("cabin", "cabin must be one of: eco, business")
	}
	validateCurrency(errs, "currency", r.Currency)

	if r.View != nil {
		r.View.validate(errs, "view.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validatePlace(errs *ValidationErrors, field, code, city string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		if strings.TrimSpace(city) == "" {
			errs.Add(field, field+" or "+field+"City is required")
		}
		return ""
	}
	if !codePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA code")
		return code
	}
	return strings.ToUpper(code)
}

func validateDate(errs *ValidationErrors, field, value string, required bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse(domain.DateLayout, value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}

func (r *SearchRequest) validatePassengers(errs *ValidationErrors) {
	if r.Adults < 0 || r.Children < 0 || r.Infants < 0 {
		errs.Add("passengers", "passenger counts cannot be negative")
		return
	}
	if max(r.Adults, 1)+r.Children+r.Infants > 9 {
		errs.Add("passengers", "passengers cannot exceed 9")
	}
	if r.Infants > max(r.Adults, 1) {
		errs.Add("infants", "each infant needs an accompanying adult")
	}
}

func validateCurrency(errs *ValidationErrors, field, value string) {
	if value != "" && !currencyPattern.MatchString(value) {
		errs.Add(field, field+" must be a 3-letter currency code")
	}
}

// Validate validates the view request and returns any validation errors.
func (r *ViewRequest) Validate() error {
	errs := &ValidationErrors{}
	r.validate(errs, "")
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *ViewRequest) validate(errs *ValidationErrors, prefix string) {
	if r.PriceMin != nil && *r.PriceMin < 0 {
		errs.Add(prefix+"priceMin", "priceMin must be a non-negative number")
	}
	if r.PriceMax != nil && *r.PriceMax < 0 {
		errs.Add(prefix+"priceMax", "priceMax must be a non-negative number")
	}
	if r.PriceMin != nil && r.PriceMax != nil && *r.PriceMin > *r.PriceMax {
		errs.Add(prefix+"priceMin", "priceMin must be less than or equal to priceMax")
	}

	if !validStops[strings.TrimSpace(r.Stops)] {
		errs.Add(prefix+"stops", "stops must be one of: any, 0, 1")
	}

	for i, code := range r.Airlines {
		if !airlinePattern.MatchString(strings.TrimSpace(code)) {
			errs.Add(fmt.Sprintf("%sairlines[%d]", prefix, i), "airline code must be 2 or 3 characters")
		}
	}
	validateCodes(errs, prefix+"originAirports", r.OriginAirports)
	validateCodes(errs, prefix+"destinationAirports", r.DestinationAirports)

	if r.MaxDurationHours != nil && *r.MaxDurationHours <= 0 {
		errs.Add(prefix+"maxDurationHours", "maxDurationHours must be a positive number")
	}

	validateWindows(errs, prefix+"outboundWindows", r.OutboundWindows)
	validateWindows(errs, prefix+"returnWindows", r.ReturnWindows)

	for i, name := range r.Triggers {
		if !validTriggers[strings.ToLower(strings.TrimSpace(name))] {
			errs.Add(fmt.Sprintf("%striggers[%d]", prefix, i),
				"trigger must be one of: no_night_dep, no_early_dep, no_overnight, direct_only")
		}
	}

	if !domain.TripStyle(strings.ToLower(strings.TrimSpace(r.Style))).IsValid() {
		errs.Add(prefix+"style", "style must be one of: calm, balanced, cheap")
	}
	if sort := strings.ToLower(strings.TrimSpace(r.Sort)); sort != "" && !domain.SortKey(sort).IsValid() {
		errs.Add(prefix+"sort", "sort must be one of: yuvia_score, price_asc, price_desc, duration_asc, depart_asc")
	}

	validateCurrency(errs, prefix+"currency", r.Currency)

	if r.Limit < 0 {
		errs.Add(prefix+"limit", "limit must be a non-negative number")
	}
}

func validateCodes(errs *ValidationErrors, field string, codes []string) {
	for i, code := range codes {
		if !codePattern.MatchString(strings.TrimSpace(code)) {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "airport code must be 3 letters")
		}
	}
}

func validateWindows(errs *ValidationErrors, field string, windows []string) {
	for i, w := range windows {
		if !domain.TimeWindow(strings.ToLower(strings.TrimSpace(w))).IsValid() {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "window must be one of: night, morning, day, evening")
		}
	}
}

// Validate validates the assistant request.
func (r *AssistantRequest) Validate() error {
	errs := &ValidationErrors{}
	if len([]rune(r.Text)) > maxTextLength {
		errs.Add("text", fmt.Sprintf("text cannot exceed %d characters", maxTextLength))
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}
