package domain

import "strings"

// Place is one autocomplete suggestion.
type Place struct {
	City    string `json:"city"`
	Code    string `json:"code"`
	Country string `json:"country,omitempty"`
}

// RecentSearch is one entry of the recent-searches list.
type RecentSearch struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Depart      string `json:"depart"`
	ReturnDate  string `json:"returnDate"`
	OriginIATA  string `json:"originIata"`
	DestIATA    string `json:"destIata"`
}

// Key identifies duplicates: origin, destination and departure date.
func (r RecentSearch) Key() string {
	return strings.ToLower(r.Origin) + "|" + strings.ToLower(r.Destination) + "|" + r.Depart
}
