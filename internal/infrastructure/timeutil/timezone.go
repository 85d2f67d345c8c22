package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// locationCache stores loaded timezone locations.
var locationCache sync.Map

// Common timezone names.
const (
	UTC = "UTC"

	// MSK is Moscow time, the default for timestamps without an offset.
	MSK = "Europe/Moscow"
)

// GetLocation returns a cached timezone location.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTime formats a time as HH:MM.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// DisplayDate formats a time as dd.mm.yyyy.
func DisplayDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// DaySlug formats a time as ddmm, the compact form used in booking links.
func DaySlug(t time.Time) string {
	return t.Format("0201")
}
