package http

import (
	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/usecase"
)

// SessionDTO identifies a results session.
type SessionDTO struct {
	ID string `json:"id"`
}

// SearchResultDTO is the response of a search: the normalized query and the
// default (or requested) view. The price calendar of a session search is
// served by the calendar endpoint; CalendarPending reports that its matrix
// is still being fetched.
type SearchResultDTO struct {
	SessionID       string              `json:"sessionId,omitempty"`
	Query           domain.SearchQuery  `json:"query"`
	View            usecase.ResultsView `json:"view"`
	CalendarPending bool                `json:"calendarPending"`
}

// FlightDetailDTO is one flight with its badge text and selection state.
type FlightDetailDTO struct {
	domain.ScoredFlight

	TopHint  string `json:"topHint,omitempty"`
	Favorite bool   `json:"favorite"`
	Compared bool   `json:"compared"`
}

// PlacesDTO is an autocomplete answer.
type PlacesDTO struct {
	Term   string         `json:"term"`
	Places []domain.Place `json:"places"`
}

// RecentDTO lists recent searches, newest first.
type RecentDTO struct {
	Searches []domain.RecentSearch `json:"searches"`
}

// AssistantDTO is an assistant reply with ready-made query strings for the
// search form and the ideas page.
type AssistantDTO struct {
	usecase.Reply

	SearchParams string `json:"searchParams,omitempty"`
	IdeasParams  string `json:"ideasParams,omitempty"`
}

// ToFlightDetail builds a FlightDetailDTO for a flight of session s.
func ToFlightDetail(f domain.ScoredFlight, s *usecase.ResultsSession) FlightDetailDTO {
	return FlightDetailDTO{
		ScoredFlight: f,
		TopHint:      f.TopType.Hint(),
		Favorite:     s.Favorites().Contains(f.ID),
		Compared:     s.Compare().Contains(f.ID),
	}
}

// ToAssistantDTO attaches encoded parameters to the summary step reply.
func ToAssistantDTO(reply usecase.Reply) AssistantDTO {
	dto := AssistantDTO{Reply: reply}
	if reply.Search != nil {
		dto.SearchParams = reply.Search.Values().Encode()
	}
	if reply.Ideas != nil {
		dto.IdeasParams = reply.Ideas.Values().Encode()
	}
	return dto
}

// nonNilPlaces keeps JSON output an array.
func nonNilPlaces(places []domain.Place) []domain.Place {
	if places == nil {
		return []domain.Place{}
	}
	return places
}
