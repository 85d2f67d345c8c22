package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yuvia/flight-results/internal/domain"
)

// RecentKey is the storage key of the recent-searches list.
const RecentKey = "yuviaRecentSearches"

// MaxRecentSearches caps the recent-searches list.
const MaxRecentSearches = 6

// RecentSearches is the persisted newest-first list of past queries.
type RecentSearches struct {
	store domain.StateStore
}

// NewRecentSearches creates a list backed by store.
func NewRecentSearches(store domain.StateStore) *RecentSearches {
	return &RecentSearches{store: store}
}

// List returns the stored searches, newest first. A missing key yields an empty list.
func (r *RecentSearches) List(ctx context.Context) ([]domain.RecentSearch, error) {
	raw, err := r.store.Get(ctx, RecentKey)
	if errors.Is(err, domain.ErrStateNotFound) {
		return []domain.RecentSearch{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load recent searches: %w", err)
	}

	var list []domain.RecentSearch
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode recent searches: %w", err)
	}
	return list, nil
}

// Add puts entry first, drops older entries with the same route and
// departure date and keeps at most MaxRecentSearches. It returns the new list.
func (r *RecentSearches) Add(ctx context.Context, entry domain.RecentSearch) ([]domain.RecentSearch, error) {
	existing, err := r.List(ctx)
	if err != nil {
		// an unreadable list is replaced rather than blocking new entries
		existing = nil
	}

	list := make([]domain.RecentSearch, 0, MaxRecentSearches)
	seen := make(map[string]struct{}, len(existing)+1)
	for _, item := range append([]domain.RecentSearch{entry}, existing...) {
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		list = append(list, item)
		if len(list) == MaxRecentSearches {
			break
		}
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode recent searches: %w", err)
	}
	if err := r.store.Set(ctx, RecentKey, raw); err != nil {
		return nil, fmt.Errorf("save recent searches: %w", err)
	}
	return list, nil
}

// RecentFromQuery builds the recent-search entry for a normalized query.
// Display names fall back to the codes.
func RecentFromQuery(q domain.SearchQuery) domain.RecentSearch {
	return domain.RecentSearch{
		Origin:      firstNonEmpty(q.OriginCity, q.Origin),
		Destination: firstNonEmpty(q.DestinationCity, q.Destination),
		Depart:      q.DepartDate,
		ReturnDate:  q.ReturnDate,
		OriginIATA:  q.Origin,
		DestIATA:    q.Destination,
	}
}
