package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/yuvia/flight-results/internal/domain"
)

// Storage keys of the persisted selections.
const (
	FavoritesKey = "favoritesIds"
	CompareKey   = "compareIds"
)

// Selection is an ordered set of flight ids persisted under one key.
// Ids are references into the current working set; Resolve drops ids that no
// longer match a flight, which happens after a new search replaces the set.
type Selection struct {
	store domain.StateStore
	key   string

	mu  sync.RWMutex
	ids []string
}

// NewSelection creates an empty selection. Call Load to restore persisted ids.
func NewSelection(store domain.StateStore, key string) *Selection {
	return &Selection{store: store, key: key}
}

// Load restores the persisted ids. A missing key yields an empty selection.
func (s *Selection) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, domain.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("decode %s: %w", s.key, err)
	}

	s.mu.Lock()
	s.ids = dedupe(ids)
	s.mu.Unlock()
	return nil
}

// Toggle adds id when absent and removes it otherwise. It reports whether id
// is selected afterwards.
func (s *Selection) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := slices.Index(s.ids, id); idx >= 0 {
		s.ids = slices.Delete(s.ids, idx, idx+1)
		return false, s.persistLocked(ctx)
	}
	s.ids = append(s.ids, id)
	return true, s.persistLocked(ctx)
}

// Add selects id; selecting an id twice is a no-op.
func (s *Selection) Add(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.ids, id) {
		return nil
	}
	s.ids = append(s.ids, id)
	return s.persistLocked(ctx)
}

// Remove deselects id; removing an absent id is a no-op.
func (s *Selection) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.ids, id)
	if idx < 0 {
		return nil
	}
	s.ids = slices.Delete(s.ids, idx, idx+1)
	return s.persistLocked(ctx)
}

// Clear removes every id.
func (s *Selection) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = nil
	return s.persistLocked(ctx)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Resolve returns the selected flights present in the working set, in
// selection order. Ids without a matching flight are skipped.
func (s *Selection) Resolve(working []domain.ScoredFlight) []domain.ScoredFlight {
	index := domain.FlightIndex(working)
	ids := s.IDs()

	resolved := make([]domain.ScoredFlight, 0, len(ids))
	for _, id := range ids {
		if i, ok := index[id]; ok {
			resolved = append(resolved, working[i])
		}
	}
	return resolved
}

func (s *Selection) persistLocked(ctx context.Context) error {
	ids := s.ids
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PickChoice returns the flight to recommend among flights: the golden top-3
// pick, else the first top-3 pick, else the best rated flight with ties going
// to the lower price. Returns nil for an empty list.
func PickChoice(flights []domain.ScoredFlight) *domain.ScoredFlight {
	if len(flights) == 0 {
		return nil
	}

	if top := Top3(flights); len(top) > 0 {
		for i := range top {
			if top[i].TopType == domain.TopGolden {
				return &top[i]
			}
		}
		return &top[0]
	}

	best := flights[0]
	for _, f := range flights[1:] {
		if f.Rating > best.Rating || (f.Rating == best.Rating && f.Price < best.Price) {
			best = f
		}
	}
	return &best
}

// Direction selects which leg of a trip a comparison shows.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionReturn   Direction = "return"
)

// ParseDirection converts a string to a Direction, outbound when unknown.
func ParseDirection(s string) Direction {
	if Direction(s) == DirectionReturn {
		return DirectionReturn
	}
	return DirectionOutbound
}

// DirectionSlice is one row of the compare table: a flight seen through one leg.
type DirectionSlice struct {
	FlightID        string               `json:"flightId"`
	OriginCity      string               `json:"originCity"`
	DestCity        string               `json:"destCity"`
	OriginAirport   string               `json:"originAirport"`
	DestAirport     string               `json:"destAirport"`
	DepartAt        *time.Time           `json:"departAt"`
	ArriveAt        *time.Time           `json:"arriveAt"`
	DurationMinutes int                  `json:"durationMinutes"`
	Transfers       int                  `json:"transfers"`
	Price           float64              `json:"price"`
	Currency        string               `json:"currency"`
	Airlines        []domain.AirlineMeta `json:"airlines"`
}

// CompareTable is the side-by-side view of the compare selection.
type CompareTable struct {
	Direction Direction        `json:"direction"`
	HasReturn bool             `json:"hasReturn"`
	Rows      []DirectionSlice `json:"rows"`
}

// SliceOf projects a flight onto one direction. Missing leg data falls back
// to the flight-level fields, with origin and destination swapped for the
// return direction.
func SliceOf(f *domain.ScoredFlight, dir Direction) DirectionSlice {
	leg := f.Outbound
	originCity, destCity := f.OriginCity, f.DestCity
	originAirport, destAirport := f.OriginAirport, f.DestAirport
	departAt, arriveAt := f.DepartAt, f.ArriveAt
	if dir == DirectionReturn {
		leg = f.Return
		originCity, destCity = f.DestCity, f.OriginCity
		originAirport, destAirport = f.DestAirport, f.OriginAirport
		departAt, arriveAt = f.ReturnDepartAt, f.ReturnArriveAt
	}

	slice := DirectionSlice{
		FlightID:        f.ID,
		OriginCity:      originCity,
		DestCity:        destCity,
		OriginAirport:   originAirport,
		DestAirport:     destAirport,
		DepartAt:        departAt,
		ArriveAt:        arriveAt,
		DurationMinutes: f.DurationMinutes,
		Transfers:       f.Transfers,
		Price:           f.Price,
		Currency:        f.Currency,
		Airlines:        f.AirlinesMetaAll,
	}
	if leg == nil {
		return slice
	}

	slice.OriginCity = firstNonEmpty(leg.Start.OriginCity, slice.OriginCity)
	slice.DestCity = firstNonEmpty(leg.End.DestCity, slice.DestCity)
	slice.OriginAirport = firstNonEmpty(leg.Start.OriginAirport, slice.OriginAirport)
	slice.DestAirport = firstNonEmpty(leg.End.DestAirport, slice.DestAirport)
	if leg.Start.DepartAt != nil {
		slice.DepartAt = leg.Start.DepartAt
	}
	if leg.End.ArriveAt != nil {
		slice.ArriveAt = leg.End.ArriveAt
	}
	if leg.DurationMinutes > 0 {
		slice.DurationMinutes = leg.DurationMinutes
	}
	slice.Transfers = leg.Transfers
	return slice
}

// CompareRows builds the compare table for a direction. HasReturn reports
// whether any flight has a return leg, i.e. whether a return tab makes sense.
func CompareRows(flights []domain.ScoredFlight, dir Direction) CompareTable {
	table := CompareTable{Direction: dir, Rows: make([]DirectionSlice, 0, len(flights))}
	for i := range flights {
		if flights[i].HasReturn() {
			table.HasReturn = true
		}
		table.Rows = append(table.Rows, SliceOf(&flights[i], dir))
	}
	return table
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
