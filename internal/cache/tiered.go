package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Tiered reads through a fast front store to a persistent back store.
// Back store failures are logged and treated as misses so a broken remote
// cache never fails a query.
type Tiered struct {
	front    Store
	back     Store
	frontTTL time.Duration
}

// NewTiered creates a two-layer store. Entries promoted from back to front
// live for frontTTL in the front store.
func NewTiered(front, back Store, frontTTL time.Duration) *Tiered {
	return &Tiered{front: front, back: back, frontTTL: frontTTL}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, error) {
	if data, err := t.front.Get(ctx, key); err == nil && data != nil {
		return data, nil
	}

	data, err := t.back.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Persistent cache read failed")
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	if err := t.front.Set(ctx, key, data, t.frontTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to promote cache entry")
	}
	return data, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	frontTTL := ttl
	if t.frontTTL < frontTTL {
		frontTTL = t.frontTTL
	}
	if err := t.front.Set(ctx, key, value, frontTTL); err != nil {
		return err
	}
	if err := t.back.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Persistent cache write failed")
	}
	return nil
}
