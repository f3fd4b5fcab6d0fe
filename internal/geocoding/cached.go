package geocoding

import (
	"context"
	"strings"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/cache"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Cached stores non-empty search results keyed by the lower-cased query.
type Cached struct {
	next  Searcher
	store cache.Store
	ttl   time.Duration
}

var _ Searcher = (*Cached)(nil)

func NewCached(next Searcher, store cache.Store, ttl time.Duration) *Cached {
	if store == nil {
		store = cache.Nop{}
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Cached{next: next, store: store, ttl: ttl}
}

func cacheKey(query string) string {
	return "geocode:" + strings.ToLower(query)
}

func (c *Cached) Search(ctx context.Context, query string) ([]models.Place, error) {
	if tooShort(query) {
		return []models.Place{}, nil
	}

	key := cacheKey(query)
	var cached []models.Place
	found, err := cache.GetJSON(ctx, c.store, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if found && len(cached) > 0 {
		log.Debug().Str("query", query).Msg("Using cached location data")
		return cached, nil
	}

	places, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(places) > 0 {
		if err := cache.SetJSON(ctx, c.store, key, places, c.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return places, nil
}
