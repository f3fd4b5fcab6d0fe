package cache

import (
	"context"
	"fmt"

	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/rs/zerolog/log"
)

// NewScopes builds the session and long-lived stores described by cfg.
// The returned close function releases backend resources and is never nil.
func NewScopes(ctx context.Context, cfg *config.CacheConfig, metrics *observability.Metrics) (Scopes, func() error, error) {
	noClose := func() error { return nil }

	if !cfg.EnableCache {
		log.Info().Msg("Caching disabled")
		return Scopes{Session: Nop{}, LongLived: Nop{}}, noClose, nil
	}

	session, err := NewLRUStore(cfg.LRUSize, nil)
	if err != nil {
		return Scopes{}, noClose, err
	}

	front, err := NewLRUStore(cfg.LRUSize, nil)
	if err != nil {
		return Scopes{}, noClose, err
	}

	var longLived Store = front
	closeFn := noClose

	switch cfg.LongLivedBackend {
	case config.BackendMemory, "":
	case config.BackendDynamo:
		client, err := NewDynamoClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return Scopes{}, noClose, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		longLived = NewTiered(front, NewDynamoStore(client, cfg.DynamoTable, nil), cfg.GetWeatherTTL())
	case config.BackendS3:
		client, err := NewS3Client(ctx, cfg.S3Endpoint)
		if err != nil {
			return Scopes{}, noClose, fmt.Errorf("creating S3 client: %w", err)
		}
		longLived = NewTiered(front, NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix, nil), cfg.GetWeatherTTL())
	case config.BackendSQLite:
		store, err := OpenSQLiteStore(cfg.SQLitePath, nil)
		if err != nil {
			return Scopes{}, noClose, err
		}
		purged, err := store.Purge(ctx)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to purge expired cache entries")
		} else {
			log.Debug().Int64("purged", purged).Str("path", cfg.SQLitePath).Msg("Purged expired cache entries")
		}
		longLived = NewTiered(front, store, cfg.GetWeatherTTL())
		closeFn = store.Close
	default:
		return Scopes{}, noClose, fmt.Errorf("unknown cache backend %q", cfg.LongLivedBackend)
	}

	log.Debug().Str("backend", cfg.LongLivedBackend).Msg("Cache scopes ready")

	scopes := Scopes{Session: session, LongLived: longLived}
	if metrics != nil {
		scopes.Session = NewInstrumented(scopes.Session, ScopeSession, metrics).WithLRUStats(session)
		scopes.LongLived = NewInstrumented(scopes.LongLived, ScopeLongLived, metrics).WithLRUStats(front)
	}
	return scopes, closeFn, nil
}
