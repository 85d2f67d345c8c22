package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvia/flight-results/internal/domain"
)

func newMiniredisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreFromClient(client, "yuvia:", ttl), mr
}

// runStoreContract exercises the behavior every StateStore must share.
func runStoreContract(t *testing.T, store domain.StateStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "favoritesIds")
	assert.True(t, errors.Is(err, domain.ErrStateNotFound))

	require.NoError(t, store.Set(ctx, "favoritesIds", []byte(`["a","b"]`)))
	got, err := store.Get(ctx, "favoritesIds")
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(got))

	require.NoError(t, store.Set(ctx, "favoritesIds", []byte(`["c"]`)))
	got, err = store.Get(ctx, "favoritesIds")
	require.NoError(t, err)
	assert.JSONEq(t, `["c"]`, string(got))

	require.NoError(t, store.Delete(ctx, "favoritesIds"))
	_, err = store.Get(ctx, "favoritesIds")
	assert.True(t, errors.Is(err, domain.ErrStateNotFound))

	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	value := []byte("abc")

	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'x'

	again, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, store.Len())
}

func TestRedisStore(t *testing.T) {
	store, _ := newMiniredisStore(t, 0)
	runStoreContract(t, store)
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "compareIds", []byte(`["x"]`)))

	assert.True(t, mr.Exists("yuvia:compareIds"))
	assert.Equal(t, time.Hour, mr.TTL("yuvia:compareIds"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "compareIds")
	assert.True(t, errors.Is(err, domain.ErrStateNotFound))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrStateNotFound))
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "p:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	assert.NoError(t, store.Ping(context.Background()))

	_, err = NewRedisStore(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestWithNamespace(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()
	a := WithNamespace(backing, "session-a")
	b := WithNamespace(backing, "session-b")

	runStoreContract(t, a)

	require.NoError(t, a.Set(ctx, "favoritesIds", []byte(`["1"]`)))
	_, err := b.Get(ctx, "favoritesIds")
	assert.True(t, errors.Is(err, domain.ErrStateNotFound))

	raw, err := backing.Get(ctx, "session-a:favoritesIds")
	require.NoError(t, err)
	assert.Equal(t, `["1"]`, string(raw))

	assert.Same(t, backing, WithNamespace(backing, "").(*MemoryStore))
}
