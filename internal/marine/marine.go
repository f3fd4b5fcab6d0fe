// Package marine is the free marine fallback adapter backed by the
// Open-Meteo Marine API.
package marine

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const ProviderName = "open-meteo-marine"

var fields = []source.Field{
	{Name: "wave_height", Channel: models.WaveHeight},
	{Name: "wave_direction", Channel: models.WaveDirection},
	{Name: "wave_period", Channel: models.WavePeriod},
	{Name: "swell_wave_height", Channel: models.SwellHeight},
	{Name: "swell_wave_direction", Channel: models.SwellDirection},
	{Name: "swell_wave_period", Channel: models.SwellPeriod},
	// Current velocity is reported in km/h.
	{Name: "ocean_current_velocity", Channel: models.CurrentSpeed, Convert: units.KMHToMPS},
	{Name: "ocean_current_direction", Channel: models.CurrentDirection},
	{Name: "sea_surface_temperature", Channel: models.SeaTemperature},
}

type Adapter struct {
	httpClient client.Interface
	loc        *time.Location
}

var _ source.Adapter = (*Adapter)(nil)

// NewAdapter creates the adapter. httpClient's base URL must point at the
// marine endpoint itself; loc is the timezone hourly timestamps are
// requested in.
func NewAdapter(httpClient client.Interface, loc *time.Location) *Adapter {
	if loc == nil {
		loc = time.UTC
	}
	return &Adapter{httpClient: httpClient, loc: loc}
}

func (a *Adapter) Provider() string {
	return ProviderName
}

func (a *Adapter) Fetch(ctx context.Context, lat, lon float64, date string) (*models.HourlySeries, error) {
	if err := source.ValidateRequest(lat, lon, date); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("start_date", date)
	params.Set("end_date", date)
	params.Set("hourly", strings.Join(source.FieldNames(fields), ","))
	params.Set("timezone", a.loc.String())

	resp, err := source.Get(ctx, a.httpClient, ProviderName, "", client.WithQuery(params))
	if err != nil {
		return nil, err
	}

	var payload source.OpenMeteoResponse
	if err := source.DecodeJSON(ProviderName, resp.Body, &payload); err != nil {
		return nil, err
	}

	series, err := payload.Series(ProviderName, a.loc, fields)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("provider", ProviderName).
		Str("date", date).
		Int("hours", series.Len()).
		Strs("missing", source.MissingChannels(series, models.MarineChannels)).
		Msg("Fetched marine conditions")
	return series, nil
}
