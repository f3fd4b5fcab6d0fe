// Package coastline finds the bearing from a point to the nearest mapped
// coastline using the Overpass API. Lookups are best effort: any failure
// yields a nil bearing and the caller carries on without it.
package coastline

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/cache"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const ProviderName = "overpass"

type node struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type element struct {
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Geometry []node `json:"geometry"`
}

type overpassResponse struct {
	Elements []element `json:"elements"`
}

// Finder resolves coastline bearings.
type Finder interface {
	Bearing(ctx context.Context, lat, lon float64) *float64
}

type Options struct {
	RadiusMeters float64
	Store        cache.Store
	TTL          time.Duration
	Metrics      *observability.Metrics
}

type Service struct {
	httpClient client.Interface
	opts       Options
}

var _ Finder = (*Service)(nil)

// NewService creates an Overpass backed Finder. httpClient's base URL must be
// the interpreter endpoint.
func NewService(httpClient client.Interface, opts Options) *Service {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = 50000
	}
	if opts.Store == nil {
		opts.Store = cache.Nop{}
	}
	if opts.TTL == 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Service{httpClient: httpClient, opts: opts}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("coastline:%.4f:%.4f", lat, lon)
}

func (s *Service) query(lat, lon float64) string {
	return fmt.Sprintf(`[out:json][timeout:25];(way["natural"="coastline"](around:%.0f,%f,%f););out geom;`,
		s.opts.RadiusMeters, lat, lon)
}

// Bearing returns the compass bearing towards the nearest coastline node
// within the search radius, or nil when none is found.
func (s *Service) Bearing(ctx context.Context, lat, lon float64) *float64 {
	if err := source.ValidateCoordinates(lat, lon); err != nil {
		return nil
	}

	key := cacheKey(lat, lon)
	var cached float64
	found, err := cache.GetJSON(ctx, s.opts.Store, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if found {
		log.Debug().Str("key", key).Msg("Using cached coastline bearing")
		return &cached
	}

	start := time.Now()
	bearing, err := s.lookup(ctx, lat, lon)
	source.Observe(s.opts.Metrics, ProviderName, start, err)
	if err != nil {
		log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Coastline lookup failed")
		return nil
	}
	if bearing == nil {
		log.Warn().Float64("lat", lat).Float64("lon", lon).Msg("No coastline found near location")
		return nil
	}

	if err := cache.SetJSON(ctx, s.opts.Store, key, *bearing, s.opts.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return bearing
}

func (s *Service) lookup(ctx context.Context, lat, lon float64) (*float64, error) {
	params := url.Values{}
	params.Set("data", s.query(lat, lon))

	resp, err := source.Get(ctx, s.httpClient, ProviderName, "", client.WithQuery(params))
	if err != nil {
		return nil, err
	}

	var payload overpassResponse
	if err := source.DecodeJSON(ProviderName, resp.Body, &payload); err != nil {
		return nil, err
	}

	nearest, distance, ok := nearestNode(payload.Elements, lat, lon)
	if !ok {
		return nil, nil
	}

	bearing := Bearing(lat, lon, nearest.Lat, nearest.Lon)
	log.Debug().
		Float64("bearing", units.Round(bearing, 1)).
		Float64("distanceKm", units.Round(distance, 2)).
		Msg("Coastline bearing calculated")
	return &bearing, nil
}

func nearestNode(elements []element, lat, lon float64) (node, float64, bool) {
	var nearest node
	minDistance := math.Inf(1)
	found := false

	for _, way := range elements {
		for _, n := range way.Geometry {
			d := Distance(lat, lon, n.Lat, n.Lon)
			if d < minDistance {
				minDistance = d
				nearest = n
				found = true
			}
		}
	}
	return nearest, minDistance, found
}
