package source

import (
	"context"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/cache"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/rs/zerolog/log"
)

// Cached decorates an Adapter with a cache lookup and records provider
// metrics for every real fetch. Only successful results are stored.
type Cached struct {
	next    Adapter
	store   cache.Store
	ttl     time.Duration
	metrics *observability.Metrics
}

var _ Adapter = (*Cached)(nil)

func NewCached(next Adapter, store cache.Store, ttl time.Duration, metrics *observability.Metrics) *Cached {
	return &Cached{next: next, store: store, ttl: ttl, metrics: metrics}
}

func (c *Cached) Provider() string {
	return c.next.Provider()
}

func (c *Cached) Fetch(ctx context.Context, lat, lon float64, date string) (*models.HourlySeries, error) {
	if err := ValidateRequest(lat, lon, date); err != nil {
		return nil, err
	}

	key := CacheKey(c.next.Provider(), lat, lon, date)
	var cached models.HourlySeries
	found, err := cache.GetJSON(ctx, c.store, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if found {
		log.Debug().Str("provider", c.next.Provider()).Str("key", key).Msg("Cache hit")
		return &cached, nil
	}

	start := time.Now()
	series, err := c.next.Fetch(ctx, lat, lon, date)
	Observe(c.metrics, c.next.Provider(), start, err)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, c.store, key, series, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return series, nil
}

// Observe records the outcome and latency of one provider call. A nil
// metrics is ignored.
func Observe(metrics *observability.Metrics, provider string, start time.Time, err error) {
	if metrics == nil {
		return
	}
	metrics.ProviderRequests.WithLabelValues(provider, Outcome(err)).Inc()
	metrics.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
