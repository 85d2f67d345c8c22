package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yuvia/flight-results/internal/adapter/storage"
	"github.com/yuvia/flight-results/internal/domain"
)

// =====================================================
// Selection Tests
// =====================================================

func TestSelection_ToggleAndPersist(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	sel := NewSelection(store, FavoritesKey)

	on, err := sel.Toggle(ctx, "a")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = sel.Toggle(ctx, "b")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = sel.Toggle(ctx, "a")
	require.NoError(t, err)
	assert.False(t, on)

	assert.Equal(t, []string{"b"}, sel.IDs())
	assert.True(t, sel.Contains("b"))
	assert.False(t, sel.Contains("a"))

	raw, err := store.Get(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["b"]`, string(raw))
}

func TestSelection_AddRemoveClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	sel := NewSelection(store, CompareKey)

	require.NoError(t, sel.Add(ctx, "x"))
	require.NoError(t, sel.Add(ctx, "y"))
	require.NoError(t, sel.Add(ctx, "x"))
	assert.Equal(t, []string{"x", "y"}, sel.IDs())

	require.NoError(t, sel.Remove(ctx, "missing"))
	require.NoError(t, sel.Remove(ctx, "x"))
	assert.Equal(t, []string{"y"}, sel.IDs())

	require.NoError(t, sel.Clear(ctx))
	assert.Empty(t, sel.IDs())

	raw, err := store.Get(ctx, CompareKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestSelection_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is empty", func(t *testing.T) {
		sel := NewSelection(storage.NewMemoryStore(), FavoritesKey)
		require.NoError(t, sel.Load(ctx))
		assert.Empty(t, sel.IDs())
	})

	t.Run("restores and dedupes", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, FavoritesKey, []byte(`["a","b","a",""]`)))

		sel := NewSelection(store, FavoritesKey)
		require.NoError(t, sel.Load(ctx))
		assert.Equal(t, []string{"a", "b"}, sel.IDs())
	})

	t.Run("corrupt data", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, FavoritesKey, []byte(`{"a":1}`)))

		sel := NewSelection(store, FavoritesKey)
		assert.Error(t, sel.Load(ctx))
		assert.Empty(t, sel.IDs())
	})
}

func TestSelection_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockStateStore(ctrl)
	store.EXPECT().Set(gomock.Any(), FavoritesKey, gomock.Any()).Return(errors.New("unavailable"))

	sel := NewSelection(store, FavoritesKey)
	err := sel.Add(context.Background(), "a")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save favoritesIds")
}

func TestSelection_ResolveSkipsStaleIDs(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection(storage.NewMemoryStore(), FavoritesKey)
	require.NoError(t, sel.Add(ctx, "c"))
	require.NoError(t, sel.Add(ctx, "gone"))
	require.NoError(t, sel.Add(ctx, "a"))

	working := []domain.ScoredFlight{
		scored(newFlight("a", 1000), 7),
		scored(newFlight("b", 2000), 7),
		scored(newFlight("c", 3000), 7),
	}

	assert.Equal(t, []string{"c", "a"}, ids(sel.Resolve(working)))
	assert.Empty(t, sel.Resolve(nil))
}

func TestSelection_IDsReturnsCopy(t *testing.T) {
	sel := NewSelection(storage.NewMemoryStore(), FavoritesKey)
	require.NoError(t, sel.Add(context.Background(), "a"))

	got := sel.IDs()
	got[0] = "mutated"

	assert.Equal(t, []string{"a"}, sel.IDs())
}

// =====================================================
// PickChoice Tests
// =====================================================

func TestPickChoice(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, PickChoice(nil))
	})

	t.Run("golden pick wins", func(t *testing.T) {
		flights := []domain.ScoredFlight{
			scored(newFlight("cheap", 5000), 7),
			scored(newFlight("best", 6000), 9),
		}
		choice := PickChoice(flights)
		require.NotNil(t, choice)
		assert.Equal(t, "best", choice.ID)
		assert.Equal(t, domain.TopGolden, choice.TopType)
	})

	t.Run("first pick when no golden", func(t *testing.T) {
		flights := []domain.ScoredFlight{
			scored(newFlight("cheap", 5000), 7),
			scored(newFlight("mid", 5500), 7),
			scored(newFlight("lux", 50000), 9.5),
		}
		choice := PickChoice(flights)
		require.NotNil(t, choice)
		assert.Equal(t, "cheap", choice.ID)
		assert.Equal(t, domain.TopCheap, choice.TopType)
	})

	t.Run("unpriced flights fall back to rating", func(t *testing.T) {
		flights := []domain.ScoredFlight{
			scored(newFlight("x", 0), 7),
			scored(newFlight("y", 0), 8),
		}
		choice := PickChoice(flights)
		require.NotNil(t, choice)
		assert.Equal(t, "y", choice.ID)
	})
}

// =====================================================
// Compare Tests
// =====================================================

func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirectionReturn, ParseDirection("return"))
	assert.Equal(t, DirectionOutbound, ParseDirection("outbound"))
	assert.Equal(t, DirectionOutbound, ParseDirection(""))
	assert.Equal(t, DirectionOutbound, ParseDirection("sideways"))
}

func TestSliceOf_Outbound(t *testing.T) {
	f := scored(newFlight("rt", 9000, withReturn(18, 0, 140, 1)), 8)

	slice := SliceOf(&f, DirectionOutbound)

	assert.Equal(t, "rt", slice.FlightID)
	assert.Equal(t, "SVO", slice.OriginAirport)
	assert.Equal(t, "LED", slice.DestAirport)
	assert.Equal(t, 120, slice.DurationMinutes)
	assert.Equal(t, 0, slice.Transfers)
	assert.Equal(t, clockAt(0, 9, 0), slice.DepartAt)
	assert.Equal(t, 9000.0, slice.Price)
}

func TestSliceOf_Return(t *testing.T) {
	f := scored(newFlight("rt", 9000, withReturn(18, 0, 140, 1)), 8)

	slice := SliceOf(&f, DirectionReturn)

	assert.Equal(t, "Saint Petersburg", slice.OriginCity)
	assert.Equal(t, "Moscow", slice.DestCity)
	assert.Equal(t, "LED", slice.OriginAirport)
	assert.Equal(t, "VKO", slice.DestAirport)
	assert.Equal(t, 140, slice.DurationMinutes)
	assert.Equal(t, 1, slice.Transfers)
	assert.Equal(t, clockAt(3, 18, 0), slice.DepartAt)
}

func TestSliceOf_ReturnWithoutLegSwapsFallbacks(t *testing.T) {
	f := scored(newFlight("ow", 9000), 8)

	slice := SliceOf(&f, DirectionReturn)

	assert.Equal(t, "LED", slice.OriginAirport)
	assert.Equal(t, "SVO", slice.DestAirport)
	assert.Nil(t, slice.DepartAt)
	assert.Equal(t, f.DurationMinutes, slice.DurationMinutes)
}

func TestCompareRows(t *testing.T) {
	flights := []domain.ScoredFlight{
		scored(newFlight("one-way", 5000), 7),
		scored(newFlight("round", 9000, withReturn(18, 0, 140, 0)), 8),
	}

	table := CompareRows(flights, DirectionOutbound)
	assert.Equal(t, DirectionOutbound, table.Direction)
	assert.True(t, table.HasReturn)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "one-way", table.Rows[0].FlightID)

	empty := CompareRows(nil, DirectionReturn)
	assert.False(t, empty.HasReturn)
	assert.NotNil(t, empty.Rows)
}
