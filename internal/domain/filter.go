package domain

import (
	"strings"
	"time"
)

// SortKey defines the plain sort orders available when no trip style is active.
type SortKey string

// Available sort keys.
const (
	// SortByYuviaScore sorts by descending yuvia score (default)
	SortByYuviaScore SortKey = "yuvia_score"

	// SortByPriceAsc sorts cheapest first
	SortByPriceAsc SortKey = "price_asc"

	// SortByPriceDesc sorts most expensive first
	SortByPriceDesc SortKey = "price_desc"

	// SortByDurationAsc sorts shortest aggregate duration first
	SortByDurationAsc SortKey = "duration_asc"

	// SortByDepartAsc sorts by outbound departure, flights without a time last
	SortByDepartAsc SortKey = "depart_asc"
)

// IsValid checks if the sort key is a known value.
func (s SortKey) IsValid() bool {
	switch s {
	case SortByYuviaScore, SortByPriceAsc, SortByPriceDesc, SortByDurationAsc, SortByDepartAsc:
		return true
	default:
		return false
	}
}

// ParseSortKey converts a string to a SortKey.
// Returns SortByYuviaScore if the string is empty or unknown.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key.IsValid() {
		return key
	}
	return SortByYuviaScore
}

// TripStyle is a named reordering strategy that replaces the plain sort.
type TripStyle string

const (
	StyleNone     TripStyle = ""
	StyleCalm     TripStyle = "calm"
	StyleBalanced TripStyle = "balanced"
	StyleCheap    TripStyle = "cheap"
)

// IsValid checks if the style is known. StyleNone is valid.
func (s TripStyle) IsValid() bool {
	switch s {
	case StyleNone, StyleCalm, StyleBalanced, StyleCheap:
		return true
	default:
		return false
	}
}

// ParseTripStyle converts a string to a TripStyle, StyleNone when unknown.
func ParseTripStyle(s string) TripStyle {
	style := TripStyle(strings.ToLower(strings.TrimSpace(s)))
	if style.IsValid() {
		return style
	}
	return StyleNone
}

// StopsOption restricts the transfer count.
type StopsOption string

const (
	StopsAny    StopsOption = "any"
	StopsDirect StopsOption = "0"
	StopsOneMax StopsOption = "1"
)

// ParseStopsOption converts a string to a StopsOption, StopsAny when unknown.
func ParseStopsOption(s string) StopsOption {
	switch opt := StopsOption(strings.TrimSpace(s)); opt {
	case StopsDirect, StopsOneMax:
		return opt
	default:
		return StopsAny
	}
}

// TimeWindow is a departure time-of-day bucket.
type TimeWindow string

// Time windows: night [0,6), morning [6,12), day [12,18), evening [18,24).
const (
	WindowNight   TimeWindow = "night"
	WindowMorning TimeWindow = "morning"
	WindowDay     TimeWindow = "day"
	WindowEvening TimeWindow = "evening"
)

// IsValid checks if the window is known.
func (w TimeWindow) IsValid() bool {
	switch w {
	case WindowNight, WindowMorning, WindowDay, WindowEvening:
		return true
	default:
		return false
	}
}

// WindowOf returns the time window the wall-clock hour of t falls into.
func WindowOf(t time.Time) TimeWindow {
	h := t.Hour()
	switch {
	case h < 6:
		return WindowNight
	case h < 12:
		return WindowMorning
	case h < 18:
		return WindowDay
	default:
		return WindowEvening
	}
}

// IsNightTime reports whether t is within [22:00, 06:00).
func IsNightTime(t time.Time) bool {
	h := t.Hour()
	return h >= 22 || h < 6
}

// IsEarlyTime reports whether t is before 08:00.
func IsEarlyTime(t time.Time) bool {
	return t.Hour() < 8
}

// Trigger names accepted from clients.
const (
	TriggerNoNightDeparture = "no_night_dep"
	TriggerNoEarlyDeparture = "no_early_dep"
	TriggerNoOvernight      = "no_overnight"
	TriggerDirectOnly       = "direct_only"
)

// TripTriggers are boolean hard filters layered on top of style and sort.
type TripTriggers struct {
	NoNightDeparture bool `json:"noNightDep"`
	NoEarlyDeparture bool `json:"noEarlyDep"`
	NoOvernight      bool `json:"noOvernight"`
	DirectOnly       bool `json:"directOnly"`
}

// ParseTripTriggers builds triggers from their names; unknown names are ignored.
func ParseTripTriggers(names []string) TripTriggers {
	var t TripTriggers
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case TriggerNoNightDeparture:
			t.NoNightDeparture = true
		case TriggerNoEarlyDeparture:
			t.NoEarlyDeparture = true
		case TriggerNoOvernight:
			t.NoOvernight = true
		case TriggerDirectOnly:
			t.DirectOnly = true
		}
	}
	return t
}

// Any reports whether at least one trigger is active.
func (t TripTriggers) Any() bool {
	return t.NoNightDeparture || t.NoEarlyDeparture || t.NoOvernight || t.DirectOnly
}

// FilterConstraints are the user-selected filters. All predicates are AND-combined.
type FilterConstraints struct {
	// PriceMin and PriceMax bound the price inclusively when set
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`

	// Stops restricts the aggregate transfer count; DirectOnly overrides it
	Stops StopsOption `json:"stops,omitempty"`

	// Airlines matches when any carrier of the flight is selected
	Airlines []string `json:"airlines,omitempty"`

	OriginAirports      []string `json:"originAirports,omitempty"`
	DestinationAirports []string `json:"destinationAirports,omitempty"`

	// MaxDurationHours caps each leg's duration
	MaxDurationHours *float64 `json:"maxDurationHours,omitempty"`

	OutboundWindows []TimeWindow `json:"outboundWindows,omitempty"`
	ReturnWindows   []TimeWindow `json:"returnWindows,omitempty"`

	Triggers TripTriggers `json:"triggers"`
}

// EffectiveStops returns the stop restriction after applying the direct-only trigger.
func (c *FilterConstraints) EffectiveStops() StopsOption {
	if c.Triggers.DirectOnly {
		return StopsDirect
	}
	if c.Stops == "" {
		return StopsAny
	}
	return c.Stops
}

// ActiveCount returns how many filter groups differ from their defaults.
func (c *FilterConstraints) ActiveCount() int {
	count := 0
	if c.PriceMin != nil || c.PriceMax != nil {
		count++
	}
	if c.Stops != "" && c.Stops != StopsAny {
		count++
	}
	if len(c.Airlines) > 0 {
		count++
	}
	if len(c.OriginAirports) > 0 {
		count++
	}
	if len(c.DestinationAirports) > 0 {
		count++
	}
	if c.MaxDurationHours != nil {
		count++
	}
	if len(c.OutboundWindows) > 0 {
		count++
	}
	if len(c.ReturnWindows) > 0 {
		count++
	}
	return count
}

// FilterOptions lists the values a client can offer as filter choices
// for the current working set.
type FilterOptions struct {
	Airlines            []AirlineMeta `json:"airlines"`
	OriginAirports      []string      `json:"originAirports"`
	DestinationAirports []string      `json:"destinationAirports"`
	HasReturn           bool          `json:"hasReturn"`
}
