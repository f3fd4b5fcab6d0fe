// Package app wires configuration, caches and providers into the services
// served by the Lambda entrypoints and the local server.
package app

import (
	"context"
	"fmt"

	"github.com/bbernstein/paddlewise/backend-go/internal/cache"
	"github.com/bbernstein/paddlewise/backend-go/internal/coastline"
	"github.com/bbernstein/paddlewise/backend-go/internal/conditions"
	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/geocoding"
	"github.com/bbernstein/paddlewise/backend-go/internal/marine"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/internal/stormglass"
	"github.com/bbernstein/paddlewise/backend-go/internal/tide"
	"github.com/bbernstein/paddlewise/backend-go/internal/weather"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

type App struct {
	Config     *config.Config
	Metrics    *observability.Metrics
	Conditions *conditions.Service
	Locations  geocoding.Searcher

	closeCache func() error
}

// New builds every provider from cfg and cacheCfg. metrics may be nil.
func New(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig, metrics *observability.Metrics) (*App, error) {
	scopes, closeCache, err := cache.NewScopes(ctx, cacheCfg, metrics)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}

	session := scopes.For(cache.ScopeSession)
	longLived := scopes.For(cache.ScopeLongLived)

	loc := cfg.Location()
	p := cfg.Providers
	httpClient := func(baseURL string) *client.Client {
		return client.New(client.Options{
			BaseURL:    baseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})
	}

	premium := stormglass.NewService(httpClient(p.Stormglass.BaseURL), stormglass.Options{
		APIKey:   p.Stormglass.APIKey,
		Params:   p.Stormglass.Params,
		Policy:   source.NewSubSourcePolicy(p.PreferredSubSource, p.SourcePriority),
		Store:    session,
		TTL:      cacheCfg.GetStormglassTTL(),
		Metrics:  metrics,
		Location: loc,
	})

	tides := tide.NewWorldTides(httpClient(p.WorldTides.BaseURL), tide.Options{
		APIKey:      p.WorldTides.APIKey,
		Datum:       p.WorldTides.Datum,
		StepSeconds: p.WorldTides.StepSeconds,
		Store:       session,
		TTL:         cacheCfg.GetTidesTTL(),
		Metrics:     metrics,
		Location:    loc,
	})

	marineAdapter := source.NewCached(marine.NewAdapter(httpClient(p.OpenMeteoMarine), loc),
		session, cacheCfg.GetMarineTTL(), metrics)
	weatherAdapter := source.NewCached(weather.NewAdapter(httpClient(p.OpenMeteoWeather), loc),
		session, cacheCfg.GetWeatherTTL(), metrics)

	finder := coastline.NewService(httpClient(p.Overpass.BaseURL), coastline.Options{
		RadiusMeters: p.Overpass.RadiusMeters,
		Store:        longLived,
		TTL:          cacheCfg.GetLocationTTL(),
		Metrics:      metrics,
	})

	svc, err := conditions.NewService(cfg, conditions.Dependencies{
		Premium:   premium,
		Tides:     tides,
		Marine:    marineAdapter,
		Weather:   weatherAdapter,
		Coastline: finder,
	}, conditions.WithMetrics(metrics))
	if err != nil {
		_ = closeCache()
		return nil, fmt.Errorf("initializing conditions service: %w", err)
	}

	searcher := geocoding.NewCached(
		geocoding.NewNominatim(httpClient(p.Nominatim.BaseURL), geocoding.Options{
			UserAgent:    p.Nominatim.UserAgent,
			CountryCodes: p.Nominatim.CountryCodes,
			Limit:        p.Nominatim.Limit,
			Metrics:      metrics,
		}),
		longLived, cacheCfg.GetLocationTTL(),
	)

	log.Info().
		Bool("premium", p.PremiumEnabled()).
		Str("timezone", loc.String()).
		Str("cacheBackend", cacheCfg.LongLivedBackend).
		Msg("Services initialized")

	return &App{
		Config:     cfg,
		Metrics:    metrics,
		Conditions: svc,
		Locations:  searcher,
		closeCache: closeCache,
	}, nil
}

// Close releases cache backend resources.
func (a *App) Close() error {
	if a.closeCache == nil {
		return nil
	}
	return a.closeCache()
}
