// Package weather is the free weather fallback adapter backed by the
// Open-Meteo forecast API.
package weather

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const ProviderName = "open-meteo-weather"

// Wind is requested in m/s, so no conversion is needed here.
var fields = []source.Field{
	{Name: "temperature_2m", Channel: models.AirTemperature},
	{Name: "apparent_temperature", Channel: models.ApparentTemperature},
	{Name: "wind_speed_10m", Channel: models.WindSpeed},
	{Name: "wind_gusts_10m", Channel: models.WindGust},
	{Name: "wind_direction_10m", Channel: models.WindDirection},
	{Name: "precipitation_probability", Channel: models.PrecipitationProbability},
	{Name: "precipitation", Channel: models.Precipitation},
	{Name: "visibility", Channel: models.Visibility},
	{Name: "cloud_cover", Channel: models.CloudCover},
	{Name: "weather_code", Channel: models.WeatherCode},
}

type Adapter struct {
	httpClient client.Interface
	loc        *time.Location
}

var _ source.Adapter = (*Adapter)(nil)

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
	params.Set("wind_speed_unit", "ms")
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
		Strs("missing", source.MissingChannels(series, models.WeatherChannels)).
		Msg("Fetched weather forecast")
	return series, nil
}
