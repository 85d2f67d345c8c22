// Package domain contains the core entities of the flight results service.
// These entities are independent of any upstream payload shape and form the
// foundation upon which normalization, scoring and presentation are built.
package domain

import (
	"fmt"
	"time"
)

// Flight is the canonical record produced from one upstream offer.
// It is immutable once produced; scoring wraps it in a ScoredFlight.
type Flight struct {
	// ID is stable within a session (upstream id/token or a synthesized fallback)
	ID string `json:"id"`

	// OriginCity is the display name of the origin city (falls back to the code)
	OriginCity string `json:"originCity"`

	// DestCity is the display name of the destination city (falls back to the code)
	DestCity string `json:"destCity"`

	// OriginAirport is the IATA code of the departure airport
	OriginAirport string `json:"originAirport"`

	// DestAirport is the IATA code of the arrival airport
	DestAirport string `json:"destAirport"`

	DepartAt       *time.Time `json:"departAt"`
	ArriveAt       *time.Time `json:"arriveAt"`
	ReturnDepartAt *time.Time `json:"returnDepartAt"`
	ReturnArriveAt *time.Time `json:"returnArriveAt"`

	// Outbound summarizes the outbound direction, nil when nothing is known about it
	Outbound *SegmentSummary `json:"outbound"`

	// Return summarizes the return direction, nil for one-way trips
	Return *SegmentSummary `json:"return"`

	// DurationMinutes is the sum of outbound and return summary durations
	DurationMinutes int `json:"durationMinutes"`

	// Transfers is the sum of outbound and return transfer counts
	Transfers int `json:"transfers"`

	Price    float64 `json:"price"`
	Currency string  `json:"currency"`

	AirlineCode     string        `json:"airlineCode"`
	AirlineName     string        `json:"airlineName"`
	AirlinesAll     []string      `json:"airlinesAll"`
	AirlinesMetaAll []AirlineMeta `json:"airlinesMetaAll"`

	FlightNumbers FlightNumbers `json:"flightNumbers"`

	// Deeplink is the booking link shown on the card, empty when none resolvable
	Deeplink           string `json:"deeplink,omitempty"`
	AviasalesTicketURL string `json:"aviasalesTicketUrl,omitempty"`
	AviasalesSearchURL string `json:"aviasalesSearchUrl,omitempty"`
}

// SegmentSummary is the aggregated view of one direction (outbound or return).
type SegmentSummary struct {
	Start           LegStart  `json:"start"`
	End             LegEnd    `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	Transfers       int       `json:"transfers"`
	Segments        []Segment `json:"segments,omitempty"`
}

// LegStart is where and when a direction begins.
type LegStart struct {
	DepartAt      *time.Time `json:"departAt"`
	OriginCity    string     `json:"originCity"`
	OriginAirport string     `json:"originAirport"`
}

// LegEnd is where and when a direction ends.
type LegEnd struct {
	ArriveAt    *time.Time `json:"arriveAt"`
	DestCity    string     `json:"destCity"`
	DestAirport string     `json:"destAirport"`
}

// Segment is one flown leg (single aircraft boarding) after alias resolution.
type Segment struct {
	DepartAt        *time.Time `json:"departAt"`
	ArriveAt        *time.Time `json:"arriveAt"`
	OriginCity      string     `json:"originCity"`
	DestCity        string     `json:"destCity"`
	OriginAirport   string     `json:"originAirport"`
	DestAirport     string     `json:"destAirport"`
	AirlineCode     string     `json:"airlineCode"`
	AirlineName     string     `json:"airlineName"`
	FlightNumber    string     `json:"flightNumber,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
}

// AirlineMeta pairs a carrier code with its resolved display name.
type AirlineMeta struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FlightNumbers holds "<carrierCode> <number>" entries per direction.
type FlightNumbers struct {
	Outbound []string `json:"outbound"`
	Inbound  []string `json:"inbound"`
}

// HasReturn reports whether the flight has a return direction.
func (f *Flight) HasReturn() bool {
	return f.Return != nil
}

// OutboundDepartAt returns the outbound departure time, preferring the summary.
func (f *Flight) OutboundDepartAt() *time.Time {
	if f.Outbound != nil && f.Outbound.Start.DepartAt != nil {
		return f.Outbound.Start.DepartAt
	}
	return f.DepartAt
}

// OutboundArriveAt returns the outbound arrival time, preferring the summary.
func (f *Flight) OutboundArriveAt() *time.Time {
	if f.Outbound != nil && f.Outbound.End.ArriveAt != nil {
		return f.Outbound.End.ArriveAt
	}
	return f.ArriveAt
}

// ReturnDepartAtTime returns the return departure time, nil for one-way flights.
func (f *Flight) ReturnDepartAtTime() *time.Time {
	if f.Return == nil {
		return nil
	}
	if f.Return.Start.DepartAt != nil {
		return f.Return.Start.DepartAt
	}
	return f.ReturnDepartAt
}

// ReturnArriveAtTime returns the return arrival time, nil for one-way flights.
func (f *Flight) ReturnArriveAtTime() *time.Time {
	if f.Return == nil {
		return nil
	}
	if f.Return.End.ArriveAt != nil {
		return f.Return.End.ArriveAt
	}
	return f.ReturnArriveAt
}

// DepartureTimes returns every known departure time (outbound, then return).
func (f *Flight) DepartureTimes() []time.Time {
	return collectTimes(f.OutboundDepartAt(), f.ReturnDepartAtTime())
}

// ArrivalTimes returns every known arrival time (outbound, then return).
func (f *Flight) ArrivalTimes() []time.Time {
	return collectTimes(f.OutboundArriveAt(), f.ReturnArriveAtTime())
}

// OriginAirports returns the airports a traveller departs from in either direction.
func (f *Flight) OriginAirports() []string {
	var out []string
	if f.Outbound != nil && f.Outbound.Start.OriginAirport != "" {
		out = append(out, f.Outbound.Start.OriginAirport)
	} else if f.OriginAirport != "" {
		out = append(out, f.OriginAirport)
	}
	if f.Return != nil && f.Return.Start.OriginAirport != "" {
		out = append(out, f.Return.Start.OriginAirport)
	}
	return out
}

// DestinationAirports returns the airports a traveller arrives at in either direction.
func (f *Flight) DestinationAirports() []string {
	var out []string
	if f.Outbound != nil && f.Outbound.End.DestAirport != "" {
		out = append(out, f.Outbound.End.DestAirport)
	} else if f.DestAirport != "" {
		out = append(out, f.DestAirport)
	}
	if f.Return != nil && f.Return.End.DestAirport != "" {
		out = append(out, f.Return.End.DestAirport)
	}
	return out
}

// OutboundDuration returns the outbound duration, or the aggregate when no summary exists.
func (f *Flight) OutboundDuration() int {
	if f.Outbound != nil && f.Outbound.DurationMinutes > 0 {
		return f.Outbound.DurationMinutes
	}
	return f.DurationMinutes
}

// Carriers returns every carrier code on the flight, including the primary one.
func (f *Flight) Carriers() []string {
	if len(f.AirlinesAll) > 0 {
		return f.AirlinesAll
	}
	if f.AirlineCode != "" {
		return []string{f.AirlineCode}
	}
	return nil
}

func collectTimes(values ...*time.Time) []time.Time {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// FormatDuration formats minutes in a human-readable way (e.g. "2h 30m").
func FormatDuration(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
