package cache

import (
	"context"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
)

// Instrumented records hit/miss counts for a store.
type Instrumented struct {
	inner   Store
	scope   Scope
	metrics *observability.Metrics
	lru     *LRUStore
}

func NewInstrumented(inner Store, scope Scope, metrics *observability.Metrics) *Instrumented {
	return &Instrumented{inner: inner, scope: scope, metrics: metrics}
}

// WithLRUStats publishes the stats of the in-memory tier behind inner after
// every lookup.
func (i *Instrumented) WithLRUStats(lru *LRUStore) *Instrumented {
	i.lru = lru
	return i
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := i.inner.Get(ctx, key)
	result := "hit"
	switch {
	case err != nil:
		result = "error"
	case data == nil:
		result = "miss"
	}
	i.metrics.CacheLookups.WithLabelValues(string(i.scope), result).Inc()
	if i.lru != nil {
		i.publishLRUStats()
	}
	return data, err
}

func (i *Instrumented) publishLRUStats() {
	stats := i.lru.GetCacheStats()
	scope := string(i.scope)
	i.metrics.LRUStats.WithLabelValues(scope, "hits").Set(float64(stats["lru_hits"]))
	i.metrics.LRUStats.WithLabelValues(scope, "misses").Set(float64(stats["lru_misses"]))
	i.metrics.LRUStats.WithLabelValues(scope, "entries").Set(float64(i.lru.Len()))
}

func (i *Instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return i.inner.Set(ctx, key, value, ttl)
}
