// Package conditions runs a single conditions lookup: it tries the premium
// aggregator, falls back to the free marine and weather providers, always
// fetches tides from the dedicated tide provider, and assembles the report.
package conditions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/coastline"
	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/internal/stormglass"
	"github.com/bbernstein/paddlewise/backend-go/internal/tide"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Premium is the combined marine and weather aggregator.
type Premium interface {
	Configured() bool
	Fetch(ctx context.Context, lat, lon float64, date, preferred string) (*stormglass.Bundle, error)
}

// TideProvider is the dedicated tide source.
type TideProvider interface {
	Fetch(ctx context.Context, lat, lon float64, date string) (*models.TideData, error)
}

// Dependencies are the upstream collaborators of a Service. Premium and
// Coastline are optional.
type Dependencies struct {
	Premium   Premium
	Tides     TideProvider
	Marine    source.Adapter
	Weather   source.Adapter
	Coastline coastline.Finder
}

// Sources is the raw result of the fetch phase.
type Sources struct {
	Tides            *models.TideData
	Marine           *models.HourlySeries
	Weather          *models.HourlySeries
	CoastlineBearing *float64
	// PremiumUsed is true when marine and weather came from the aggregator.
	PremiumUsed bool
}

type Service struct {
	deps    Dependencies
	cfg     *config.Config
	loc     *time.Location
	clock   clockwork.Clock
	metrics *observability.Metrics
}

type Option func(*Service)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = metrics
	}
}

func NewService(cfg *config.Config, deps Dependencies, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Tides == nil || deps.Marine == nil || deps.Weather == nil {
		return nil, errors.New("tide, marine and weather providers are required")
	}

	s := &Service{
		deps:  deps,
		cfg:   cfg,
		loc:   cfg.Location(),
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Validate rejects malformed queries before any network activity. The date
// must fall between today and today plus the forecast horizon.
func (s *Service) Validate(q models.Query) (time.Time, error) {
	if err := source.ValidateCoordinates(q.Latitude, q.Longitude); err != nil {
		return time.Time{}, err
	}
	day, err := source.ParseDate(q.Date, s.loc)
	if err != nil {
		return time.Time{}, err
	}

	now := s.clock.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	last := today.AddDate(0, 0, s.cfg.ForecastDays)
	if day.Before(today) || day.After(last) {
		return time.Time{}, models.NewInvalidInputError("date",
			fmt.Sprintf("must be between %s and %s", today.Format(source.DateLayout), last.Format(source.DateLayout)))
	}

	start, err := q.StartTime(s.loc)
	if err != nil {
		return time.Time{}, models.NewInvalidInputError("time", "must be HH:MM")
	}
	return start, nil
}

// GetConditions fetches and assembles the full report for q.
func (s *Service) GetConditions(ctx context.Context, q models.Query) (*models.Conditions, error) {
	report, err := s.getConditions(ctx, q)
	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		} else {
			s.metrics.RiskCategory.Observe(float64(report.Risk.Category))
		}
		s.metrics.ConditionsQueries.WithLabelValues(outcome).Inc()
	}
	return report, err
}

func (s *Service) getConditions(ctx context.Context, q models.Query) (*models.Conditions, error) {
	start, err := s.Validate(q)
	if err != nil {
		return nil, err
	}

	sources, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	return Assemble(q, start, sources, s.loc, s.cfg.Tides)
}

// Fetch runs the fetch phase only.
func (s *Service) Fetch(ctx context.Context, q models.Query) (*Sources, error) {
	if _, err := s.Validate(q); err != nil {
		return nil, err
	}
	return s.fetch(ctx, q)
}

func (s *Service) fetch(ctx context.Context, q models.Query) (*Sources, error) {
	lat, lon, date := q.Latitude, q.Longitude, q.Date
	out := &Sources{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.deps.Tides.Fetch(gctx, lat, lon, date)
		if err != nil {
			log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Tide fetch failed")
			return &UserError{Message: tide.UserMessage(err), Err: err}
		}
		out.Tides = data
		return nil
	})

	if s.deps.Coastline != nil {
		g.Go(func() error {
			out.CoastlineBearing = s.deps.Coastline.Bearing(gctx, lat, lon)
			return nil
		})
	}

	if bundle := s.tryPremium(gctx, q); bundle != nil {
		out.Marine = bundle.Marine
		out.Weather = bundle.Weather
		out.PremiumUsed = true
	} else {
		g.Go(func() error {
			series, err := s.fallback(gctx, "marine", s.deps.Marine, lat, lon, date)
			if err != nil {
				return &UserError{Message: MarineFailedMessage, Err: err}
			}
			out.Marine = series
			return nil
		})
		g.Go(func() error {
			series, err := s.fallback(gctx, "weather", s.deps.Weather, lat, lon, date)
			if err != nil {
				return &UserError{Message: WeatherFailedMessage, Err: err}
			}
			out.Weather = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// tryPremium returns nil whenever the aggregator cannot supply both halves.
// Its failures are never surfaced.
func (s *Service) tryPremium(ctx context.Context, q models.Query) *stormglass.Bundle {
	if s.deps.Premium == nil || !s.deps.Premium.Configured() {
		log.Debug().Msg("Premium aggregator not configured, using free providers")
		return nil
	}

	bundle, err := s.deps.Premium.Fetch(ctx, q.Latitude, q.Longitude, q.Date, q.PreferredSubSource)
	if err != nil {
		log.Warn().Err(err).Str("provider", stormglass.ProviderName).Msg("Premium aggregator failed, falling back")
		return nil
	}
	if bundle == nil || bundle.Marine == nil || bundle.Weather == nil {
		log.Warn().Str("provider", stormglass.ProviderName).Msg("Premium aggregator returned an incomplete bundle, falling back")
		return nil
	}
	return bundle
}

func (s *Service) fallback(ctx context.Context, category string, adapter source.Adapter, lat, lon float64, date string) (*models.HourlySeries, error) {
	if s.metrics != nil {
		s.metrics.Fallbacks.WithLabelValues(category).Inc()
	}
	series, err := adapter.Fetch(ctx, lat, lon, date)
	if err != nil {
		log.Error().Err(err).Str("provider", adapter.Provider()).Str("category", category).Msg("Fallback fetch failed")
		return nil, err
	}
	return series, nil
}
