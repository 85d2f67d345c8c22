package storage

import (
	"context"

	"github.com/yuvia/flight-results/internal/domain"
)

// Namespaced prefixes every key with "<namespace>:" so that several sessions
// can share one backing store.
type Namespaced struct {
	inner     domain.StateStore
	namespace string
}

// WithNamespace wraps store. An empty namespace returns store unchanged.
func WithNamespace(store domain.StateStore, namespace string) domain.StateStore {
	if namespace == "" {
		return store
	}
	return &Namespaced{inner: store, namespace: namespace}
}

func (n *Namespaced) key(k string) string {
	return n.namespace + ":" + k
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.key(key), value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.key(key))
}
