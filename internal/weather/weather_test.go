package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastPayload = `{
  "latitude": 50.35,
  "longitude": -3.58,
  "timezone": "GMT",
  "utc_offset_seconds": 0,
  "hourly": {
    "time": ["2025-06-01T12:00", "2025-06-01T13:00"],
    "temperature_2m": [17.2, 17.9],
    "apparent_temperature": [15.1, 16.0],
    "wind_speed_10m": [5.2, 6.1],
    "wind_gusts_10m": [9.0, null],
    "wind_direction_10m": [220, 230],
    "precipitation_probability": [10, 35],
    "precipitation": [0, 0.4],
    "visibility": [24140, 18000],
    "cloud_cover": [40, 85],
    "weather_code": [2, 61]
  }
}`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ms", q.Get("wind_speed_unit"))
		assert.Equal(t, "UTC", q.Get("timezone"))
		assert.Equal(t, "2025-06-01", q.Get("start_date"))
		assert.Contains(t, q.Get("hourly"), "wind_gusts_10m")
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	adapter := NewAdapter(client.New(client.Options{BaseURL: server.URL}), nil)
	series, err := adapter.Fetch(context.Background(), 50.35, -3.58, "2025-06-01")
	require.NoError(t, err)

	assert.Equal(t, ProviderName, series.Source)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), series.Times[0])
	assert.Equal(t, 5.2, *series.At(models.WindSpeed, 0))
	assert.Nil(t, series.At(models.WindGust, 1))
	assert.Equal(t, 35.0, *series.At(models.PrecipitationProbability, 1))
	assert.Equal(t, 61.0, *series.At(models.WeatherCode, 1))
	for _, ch := range models.WeatherChannels {
		assert.True(t, series.Has(ch), "channel %s", ch)
	}
}

func TestFetchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := NewAdapter(client.New(client.Options{BaseURL: server.URL}), nil)
	_, err := adapter.Fetch(context.Background(), 50.35, -3.58, "2025-06-01")
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)

	var providerErr *models.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusServiceUnavailable, providerErr.StatusCode)
}
