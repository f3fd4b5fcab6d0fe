package source

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOpenMeteo(t *testing.T, body string) *OpenMeteoResponse {
	t.Helper()
	var resp OpenMeteoResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestOpenMeteoSeries(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	resp := decodeOpenMeteo(t, `{
		"timezone": "Europe/London",
		"utc_offset_seconds": 3600,
		"hourly": {
			"time": ["2025-06-01T09:00", "2025-06-01T10:00"],
			"wave_height": [0.8, null],
			"ocean_current_velocity": [3.6, 1.8]
		}
	}`)

	series, err := resp.Series("open-meteo-marine", london, []Field{
		{Name: "wave_height", Channel: models.WaveHeight},
		{Name: "ocean_current_velocity", Channel: models.CurrentSpeed, Convert: func(v float64) float64 { return v / 3.6 }},
		{Name: "sea_surface_temperature", Channel: models.SeaTemperature},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, series.Len())
	assert.Equal(t, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), series.Times[0].UTC())
	assert.Equal(t, 0.8, *series.At(models.WaveHeight, 0))
	assert.Nil(t, series.At(models.WaveHeight, 1))
	assert.InDelta(t, 1.0, *series.At(models.CurrentSpeed, 0), 1e-9)
	_, ok := series.Values(models.SeaTemperature)
	assert.False(t, ok, "absent variables stay absent")
}

func TestOpenMeteoSeriesFixedOffset(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	stamps := make([]string, 24)
	heights := make([]float64, 24)
	for h := range stamps {
		stamps[h] = fmt.Sprintf("2025-03-30T%02d:00", h)
		heights[h] = 0.5
	}
	body, err := json.Marshal(map[string]interface{}{
		"timezone":           "Europe/London",
		"utc_offset_seconds": 0,
		"hourly": map[string]interface{}{
			"time":        stamps,
			"wave_height": heights,
		},
	})
	require.NoError(t, err)

	resp := decodeOpenMeteo(t, string(body))
	series, err := resp.Series("open-meteo-marine", london, []Field{{Name: "wave_height", Channel: models.WaveHeight}})
	require.NoError(t, err, "clocks-forward day keeps 24 distinct hours")

	require.Equal(t, 24, series.Len())
	start := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)
	for i, ts := range series.Times {
		assert.Equal(t, start.Add(time.Duration(i)*time.Hour), ts.UTC(), "hour %d", i)
	}
	assert.Equal(t, london, series.Times[0].Location())
}

func TestMissingChannels(t *testing.T) {
	resp := decodeOpenMeteo(t, `{
		"hourly": {
			"time": ["2025-06-01T09:00", "2025-06-01T10:00"],
			"wave_height": [0.8, 0.9],
			"wave_period": [null, null]
		}
	}`)
	series, err := resp.Series("p", time.UTC, []Field{
		{Name: "wave_height", Channel: models.WaveHeight},
		{Name: "wave_period", Channel: models.WavePeriod},
	})
	require.NoError(t, err)

	missing := MissingChannels(series, []models.Channel{models.WaveHeight, models.WavePeriod, models.SwellHeight})
	assert.Equal(t, []string{string(models.WavePeriod), string(models.SwellHeight)}, missing)
	assert.Empty(t, MissingChannels(series, []models.Channel{models.WaveHeight}))
}

func TestOpenMeteoSeriesMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no hourly", body: `{"latitude": 50.3}`},
		{name: "no time", body: `{"hourly": {"wave_height": [1]}}`},
		{name: "bad timestamp", body: `{"hourly": {"time": ["yesterday"]}}`},
		{name: "misaligned", body: `{"hourly": {"time": ["2025-06-01T09:00"], "wave_height": [1, 2]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeOpenMeteo(t, tt.body)
			_, err := resp.Series("p", time.UTC, []Field{{Name: "wave_height", Channel: models.WaveHeight}})
			assert.ErrorIs(t, err, models.ErrProviderUnavailable)
		})
	}
}
