// Package gencache memoizes expensive generation calls keyed by request
// fingerprint. Concurrent first callers for the same fingerprint coalesce
// into a single upstream call; storage is a bounded expirable LRU so the
// cache cannot grow with the number of distinct requests forever.
package gencache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

type Cache[V any] struct {
	store  *expirable.LRU[string, V]
	flight singleflight.Group
}

func New[V any](size int, ttl time.Duration) *Cache[V] {
	if size <= 0 {
		size = 10000
	}
	return &Cache[V]{
		store: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// GetOrGenerate returns the cached value for the fingerprint, or invokes
// generate exactly once to produce it. While a generation is in flight,
// every caller with the same fingerprint waits on that one call instead of
// issuing its own. A failed or timed-out generation is never stored and
// releases the in-flight claim, so the next caller retries cleanly.
func (c *Cache[V]) GetOrGenerate(ctx context.Context, fingerprint string, generate func(ctx context.Context) (V, error)) (V, error) {
	if cached, ok := c.store.Get(fingerprint); ok {
		return cached, nil
	}
	result, err, _ := c.flight.Do(fingerprint, func() (interface{}, error) {
		// A previous flight may have filled the store while we queued.
		if cached, ok := c.store.Get(fingerprint); ok {
			return cached, nil
		}
		value, err := generate(ctx)
		if err != nil {
			return nil, err
		}
		c.store.Add(fingerprint, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

func (c *Cache[V]) Len() int {
	return c.store.Len()
}
