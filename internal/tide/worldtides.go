// Package tide fetches tide predictions from WorldTides and reduces them to
// a single day's summary: high and low waters, range, tidal type and moon
// phase.
package tide

import (
	"context"
	"net/http"
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

const (
	ProviderName     = "worldtides"
	defaultStation   = "Nearest Tide Point"
	defaultCopyright = "WorldTides"
	defaultDatum     = "LAT"
	dayLengthSeconds = 86400
)

type worldTidesExtreme struct {
	Dt     int64   `json:"dt"`
	Date   string  `json:"date"`
	Height float64 `json:"height"`
	Type   string  `json:"type"`
}

type worldTidesHeight struct {
	Dt     int64   `json:"dt"`
	Height float64 `json:"height"`
}

type worldTidesResponse struct {
	Status          int                 `json:"status"`
	Error           string              `json:"error"`
	CallCount       int                 `json:"callCount"`
	Copyright       string              `json:"copyright"`
	RequestLat      float64             `json:"requestLat"`
	RequestLon      float64             `json:"requestLon"`
	ResponseLat     *float64            `json:"responseLat"`
	ResponseLon     *float64            `json:"responseLon"`
	Atlas           string              `json:"atlas"`
	Station         string              `json:"station"`
	StationName     string              `json:"stationName"`
	StationDistance *float64            `json:"stationDistance"`
	ResponseDatum   string              `json:"responseDatum"`
	Datum           string              `json:"datum"`
	Heights         []worldTidesHeight  `json:"heights"`
	Extremes        []worldTidesExtreme `json:"extremes"`
}

type Options struct {
	APIKey string
	Datum  string
	// StepSeconds is the spacing of the height curve.
	StepSeconds int
	Store       cache.Store
	TTL         time.Duration
	Metrics     *observability.Metrics
	Location    *time.Location
}

// WorldTides is the dedicated tide provider adapter.
type WorldTides struct {
	httpClient client.Interface
	opts       Options
}

func NewWorldTides(httpClient client.Interface, opts Options) *WorldTides {
	if opts.Datum == "" {
		opts.Datum = defaultDatum
	}
	if opts.StepSeconds == 0 {
		opts.StepSeconds = 1800
	}
	if opts.Store == nil {
		opts.Store = cache.Nop{}
	}
	if opts.TTL == 0 {
		opts.TTL = 6 * time.Hour
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &WorldTides{httpClient: httpClient, opts: opts}
}

func (w *WorldTides) Provider() string {
	return ProviderName
}

// Fetch returns the provider's extremes and heights for the 24 hours
// starting at local midnight of date. Events are not yet restricted to the
// calendar date; see Summarize.
func (w *WorldTides) Fetch(ctx context.Context, lat, lon float64, date string) (*models.TideData, error) {
	if err := source.ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	day, err := source.ParseDate(date, w.opts.Location)
	if err != nil {
		return nil, err
	}

	key := source.CacheKey(ProviderName, lat, lon, date)
	var cached models.TideData
	if found, err := cache.GetJSON(ctx, w.opts.Store, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	} else if found {
		log.Debug().Str("key", key).Msg("Using cached tide data")
		return &cached, nil
	}

	start := time.Now()
	data, err := w.fetch(ctx, lat, lon, day)
	source.Observe(w.opts.Metrics, ProviderName, start, err)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, w.opts.Store, key, data, w.opts.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return data, nil
}

func (w *WorldTides) fetch(ctx context.Context, lat, lon float64, day time.Time) (*models.TideData, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	params.Set("start", strconv.FormatInt(day.Unix(), 10))
	params.Set("length", strconv.Itoa(dayLengthSeconds))
	params.Set("extremes", "true")
	params.Set("heights", "true")
	params.Set("step", strconv.Itoa(w.opts.StepSeconds))
	params.Set("datum", w.opts.Datum)
	if w.opts.APIKey != "" {
		params.Set("key", w.opts.APIKey)
	}

	resp, err := w.httpClient.Get(ctx, "", client.WithQuery(params))
	if err != nil {
		return nil, models.NewProviderError(ProviderName, models.ErrProviderUnavailable, 0, "request failed", err)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return nil, models.NewProviderError(ProviderName, models.ErrKeyRequired, resp.StatusCode, "api key missing or invalid", nil)
	case http.StatusPaymentRequired:
		return nil, models.NewProviderError(ProviderName, models.ErrQuotaExceeded, resp.StatusCode, "monthly credits used", nil)
	}
	if err := source.CheckStatus(ProviderName, resp); err != nil {
		return nil, err
	}

	var payload worldTidesResponse
	if err := source.DecodeJSON(ProviderName, resp.Body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Extremes) == 0 {
		return nil, models.NewProviderError(ProviderName, models.ErrNoDataForLocation, resp.StatusCode, NoDataMessage, nil)
	}

	data, err := convert(&payload)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("station", data.Station.Name).
		Int("extremes", len(data.Events)).
		Int("heights", len(data.Heights)).
		Int("callCount", payload.CallCount).
		Msg("Fetched tide data from WorldTides")
	return data, nil
}

func convert(payload *worldTidesResponse) (*models.TideData, error) {
	events := make([]models.TideEvent, 0, len(payload.Extremes))
	for _, e := range payload.Extremes {
		kind := models.TideLow
		if e.Type == string(models.TideHigh) {
			kind = models.TideHigh
		}
		event := models.TideEvent{
			Time:         time.Unix(e.Dt, 0).UTC(),
			Kind:         kind,
			HeightMeters: e.Height,
		}
		if err := event.Validate(); err != nil {
			return nil, models.NewProviderError(ProviderName, models.ErrProviderUnavailable, 0, "malformed extreme", err)
		}
		events = append(events, event)
	}

	heights := make([]models.TideHeight, 0, len(payload.Heights))
	for _, h := range payload.Heights {
		heights = append(heights, models.TideHeight{
			Time:         time.Unix(h.Dt, 0).UTC(),
			HeightMeters: h.Height,
		})
	}

	station := models.TideStation{
		Name:      payload.StationName,
		Latitude:  payload.ResponseLat,
		Longitude: payload.ResponseLon,
	}
	if station.Name == "" {
		station.Name = defaultStation
	}
	if station.Latitude == nil {
		station.Latitude = models.Float(payload.RequestLat)
	}
	if station.Longitude == nil {
		station.Longitude = models.Float(payload.RequestLon)
	}
	if payload.StationDistance != nil {
		station.DistanceKm = models.Float(*payload.StationDistance / 1000)
	}

	data := &models.TideData{
		Source:    ProviderName,
		Events:    events,
		Heights:   heights,
		Station:   station,
		Datum:     firstNonEmpty(payload.ResponseDatum, payload.Datum, defaultDatum),
		Copyright: firstNonEmpty(payload.Copyright, defaultCopyright),
	}
	return data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
