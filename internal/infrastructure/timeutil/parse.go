package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Layouts tried for timestamps carrying an explicit offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
}

// Layouts tried for timestamps without an offset; read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
}

// ParseFlexible parses an upstream timestamp. Accepted values are strings in
// any of the known layouts and numbers holding epoch seconds (or milliseconds).
// Returns nil for empty or unparseable values.
func ParseFlexible(value any, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.UTC
	}

	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case *time.Time:
		return v
	case float64:
		return fromEpoch(v, loc)
	case int:
		return fromEpoch(float64(v), loc)
	case int64:
		return fromEpoch(float64(v), loc)
	case string:
		return parseString(strings.TrimSpace(v), loc)
	default:
		return nil
	}
}

func parseString(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromEpoch(n, loc)
	}
	return nil
}

// epochMillisThreshold separates second from millisecond epochs (year 5138 in seconds).
const epochMillisThreshold = 1e11

func fromEpoch(n float64, loc *time.Location) *time.Time {
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	var t time.Time
	if n >= epochMillisThreshold {
		t = time.UnixMilli(int64(n)).In(loc)
	} else {
		t = time.Unix(int64(n), 0).In(loc)
	}
	return &t
}

// MinutesBetween returns the whole minutes from start to end, rounded, or false
// when either is nil or end precedes start.
func MinutesBetween(start, end *time.Time) (int, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	d := end.Sub(*start)
	if d < 0 {
		return 0, false
	}
	return int(math.Round(d.Minutes())), true
}

// DateOnly cuts an ISO timestamp at "T" and validates the remaining date.
func DateOnly(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}
