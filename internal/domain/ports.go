package domain

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

import "context"

// FlightSource fetches and normalizes offers and price calendars from the search API.
type FlightSource interface {
	// Search returns the normalized offers for the query; offers without a positive price are dropped
	Search(ctx context.Context, q SearchQuery) ([]Flight, error)

	// PriceMatrix returns the price calendar around the query's departure date
	PriceMatrix(ctx context.Context, q SearchQuery) ([]MatrixEntry, error)
}

// DictionarySource fetches fresh code to name dictionaries.
type DictionarySource interface {
	FetchDictionaries(ctx context.Context) (Dictionaries, error)
}

// PlaceSuggester returns autocomplete suggestions for a city/airport term.
type PlaceSuggester interface {
	Suggest(ctx context.Context, term string) ([]Place, error)
}

// StateStore persists small client state blobs (selections, recent searches, dictionaries).
type StateStore interface {
	// Get returns ErrStateNotFound when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
