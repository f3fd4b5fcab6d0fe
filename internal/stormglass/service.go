// Package stormglass is the premium aggregator adapter. One call returns
// marine and weather data from several forecast models; the raw payload is
// cached so a different preferred model can be applied without a new call.
package stormglass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/cache"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const ProviderName = "stormglass"

type Options struct {
	APIKey string
	// Params is the comma separated quantity list sent upstream.
	Params   string
	Policy   source.SubSourcePolicy
	Store    cache.Store
	TTL      time.Duration
	Metrics  *observability.Metrics
	Location *time.Location
}

type Service struct {
	httpClient client.Interface
	opts       Options
}

func NewService(httpClient client.Interface, opts Options) *Service {
	if opts.Store == nil {
		opts.Store = cache.Nop{}
	}
	if opts.TTL == 0 {
		opts.TTL = 6 * time.Hour
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if len(opts.Policy.Priority) == 0 {
		opts.Policy = source.NewSubSourcePolicy(opts.Policy.Preferred, nil)
	}
	return &Service{httpClient: httpClient, opts: opts}
}

// Configured reports whether an API key is present.
func (s *Service) Configured() bool {
	return s.opts.APIKey != ""
}

// Fetch returns the marine and weather series for date. preferred overrides
// the configured preferred model for this call only.
func (s *Service) Fetch(ctx context.Context, lat, lon float64, date, preferred string) (*Bundle, error) {
	if !s.Configured() {
		return nil, models.NewProviderError(ProviderName, models.ErrKeyRequired, 0, "api key not configured", nil)
	}
	if err := source.ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	day, err := source.ParseDate(date, s.opts.Location)
	if err != nil {
		return nil, err
	}

	key := source.CacheKey(ProviderName, lat, lon, date)
	cached, err := s.Reprocess(ctx, lat, lon, date, preferred)
	switch {
	case err == nil:
		log.Debug().Str("key", key).Str("preferred", preferred).Msg("Using cached Stormglass payload")
		return cached, nil
	case !errors.Is(err, models.ErrNoDataForLocation):
		log.Warn().Err(err).Str("key", key).Msg("Cached Stormglass payload unusable, refetching")
	}

	start := time.Now()
	raw, err := s.fetchRaw(ctx, lat, lon, day)
	var bundle *Bundle
	if err == nil {
		bundle, err = decodeAndProcess(raw, s.opts.Policy.WithPreferred(preferred))
	}
	source.Observe(s.opts.Metrics, ProviderName, start, err)
	if err != nil {
		return nil, err
	}

	if err := s.opts.Store.Set(ctx, key, raw, s.opts.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return bundle, nil
}

// Reprocess re-derives the series from a cached payload with a different
// preferred model. It never calls upstream and fails with
// ErrNoDataForLocation when nothing is cached.
func (s *Service) Reprocess(ctx context.Context, lat, lon float64, date, preferred string) (*Bundle, error) {
	key := source.CacheKey(ProviderName, lat, lon, date)
	raw, err := s.opts.Store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading cached payload: %w", err)
	}
	if raw == nil {
		return nil, models.NewProviderError(ProviderName, models.ErrNoDataForLocation, 0, "no cached payload", nil)
	}
	return decodeAndProcess(raw, s.opts.Policy.WithPreferred(preferred))
}

func (s *Service) fetchRaw(ctx context.Context, lat, lon float64, day time.Time) ([]byte, error) {
	end := day.AddDate(0, 0, 1).Add(-time.Second)
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("lng", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("params", s.opts.Params)
	params.Set("start", strconv.FormatInt(day.Unix(), 10))
	params.Set("end", strconv.FormatInt(end.Unix(), 10))

	resp, err := source.Get(ctx, s.httpClient, ProviderName, "/weather/point",
		client.WithQuery(params),
		client.WithHeader("Authorization", s.opts.APIKey),
	)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("lat", params.Get("lat")).
		Str("lng", params.Get("lng")).
		Int("bytes", len(resp.Body)).
		Msg("Fetched Stormglass payload")
	return resp.Body, nil
}

func decodeAndProcess(raw []byte, policy source.SubSourcePolicy) (*Bundle, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, models.NewProviderError(ProviderName, models.ErrProviderUnavailable, 0, "malformed payload", err)
	}
	return Process(&resp, policy)
}
