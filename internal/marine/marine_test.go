package marine

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

const marinePayload = `{
  "latitude": 50.35,
  "longitude": -3.58,
  "timezone": "Europe/London",
  "utc_offset_seconds": 3600,
  "hourly_units": {"wave_height": "m", "ocean_current_velocity": "km/h"},
  "hourly": {
    "time": ["2025-06-01T08:00", "2025-06-01T09:00", "2025-06-01T10:00"],
    "wave_height": [0.9, 1.1, null],
    "wave_direction": [350, 10, 5],
    "wave_period": [7.5, 8.0, 8.2],
    "swell_wave_height": [0.4, 0.5, 0.5],
    "swell_wave_direction": [240, 245, 250],
    "swell_wave_period": [10, 10.5, 11],
    "ocean_current_velocity": [1.8, 3.6, 0],
    "ocean_current_direction": [90, 95, 100]
  }
}`

func TestFetch(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "50.3500", q.Get("latitude"))
		assert.Equal(t, "-3.5800", q.Get("longitude"))
		assert.Equal(t, "2025-06-01", q.Get("start_date"))
		assert.Equal(t, "2025-06-01", q.Get("end_date"))
		assert.Equal(t, "Europe/London", q.Get("timezone"))
		assert.Contains(t, q.Get("hourly"), "ocean_current_velocity")
		_, _ = w.Write([]byte(marinePayload))
	}))
	defer server.Close()

	adapter := NewAdapter(client.New(client.Options{BaseURL: server.URL}), london)
	assert.Equal(t, ProviderName, adapter.Provider())

	series, err := adapter.Fetch(context.Background(), 50.35, -3.58, "2025-06-01")
	require.NoError(t, err)

	assert.Equal(t, ProviderName, series.Source)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, 9, series.Times[1].In(london).Hour())
	assert.Equal(t, 1.1, *series.At(models.WaveHeight, 1))
	assert.Nil(t, series.At(models.WaveHeight, 2))
	assert.InDelta(t, 0.5, *series.At(models.CurrentSpeed, 0), 1e-9)
	assert.InDelta(t, 1.0, *series.At(models.CurrentSpeed, 1), 1e-9)
	assert.False(t, series.Has(models.SeaTemperature))
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":true,"reason":"Latitude must be in range"}`, wantErr: models.ErrProviderUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantErr: models.ErrQuotaExceeded},
		{name: "missing hourly", status: http.StatusOK, body: `{"latitude": 50.35}`, wantErr: models.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := NewAdapter(client.New(client.Options{BaseURL: server.URL}), nil)
			_, err := adapter.Fetch(context.Background(), 50.35, -3.58, "2025-06-01")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchRejectsInvalidInput(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	adapter := NewAdapter(client.New(client.Options{BaseURL: server.URL}), nil)
	_, err := adapter.Fetch(context.Background(), 50.35, 200, "2025-06-01")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.False(t, called)
}
