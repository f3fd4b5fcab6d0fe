package tide

import (
	"testing"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ukThresholds = config.TideConfig{SpringRangeM: 4.0, NeapRangeM: 3.0}

func event(t time.Time, kind models.TideKind, h float64) models.TideEvent {
	return models.TideEvent{Time: t, Kind: kind, HeightMeters: h}
}

func TestSummarize(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	data := &models.TideData{
		Source: ProviderName,
		Events: []models.TideEvent{
			// 23:30 UTC on 31 May is 00:30 BST on 1 June.
			event(time.Date(2025, 5, 31, 23, 30, 0, 0, time.UTC), models.TideHigh, 4.8),
			event(time.Date(2025, 6, 1, 18, 40, 0, 0, time.UTC), models.TideLow, 0.7),
			event(time.Date(2025, 6, 1, 6, 10, 0, 0, time.UTC), models.TideLow, 0.5),
			event(time.Date(2025, 6, 1, 12, 20, 0, 0, time.UTC), models.TideHigh, 4.9),
			// 23:30 UTC on 1 June is already 2 June in London.
			event(time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC), models.TideHigh, 5.5),
		},
		Heights: []models.TideHeight{
			{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), HeightMeters: 4.8},
			{Time: time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC), HeightMeters: 4.6},
			{Time: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), HeightMeters: 3.0},
		},
		Station:   models.TideStation{Name: "Dartmouth"},
		Datum:     "LAT",
		Copyright: "WorldTides",
	}

	summary, err := Summarize(data, "2025-06-01", london, ukThresholds)
	require.NoError(t, err)

	require.Len(t, summary.Events, 4)
	for i := 1; i < len(summary.Events); i++ {
		assert.True(t, summary.Events[i].Time.After(summary.Events[i-1].Time))
	}
	assert.Len(t, summary.Highs, 2)
	assert.Len(t, summary.Lows, 2)
	assert.Equal(t, 0.5, summary.Lows[0].HeightMeters)
	assert.InDelta(t, 4.4, summary.Range, 1e-9)
	assert.Equal(t, models.TidalSpring, summary.TidalType)

	require.Len(t, summary.Heights, 2)
	assert.Equal(t, 4.6, summary.Heights[0].HeightMeters)

	assert.Equal(t, "Dartmouth", summary.Station.Name)
	assert.Equal(t, "LAT", summary.Datum)
	assert.Equal(t, ProviderName, summary.Source)
	assert.Equal(t, "2025-06-01", summary.Date)
}

func TestSummarizeNoEventsOnDate(t *testing.T) {
	data := &models.TideData{Events: []models.TideEvent{
		event(time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC), models.TideHigh, 4.0),
	}}

	summary, err := Summarize(data, "2025-06-01", time.UTC, ukThresholds)
	require.NoError(t, err)
	assert.Empty(t, summary.Events)
	assert.Equal(t, 0.0, summary.Range)
	assert.Equal(t, models.TidalNeap, summary.TidalType)
}

func TestSummarizeInvalidDate(t *testing.T) {
	_, err := Summarize(&models.TideData{}, "tomorrow", time.UTC, ukThresholds)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestClassifyRange(t *testing.T) {
	tests := []struct {
		rangeM float64
		want   models.TidalType
	}{
		{rangeM: 4.01, want: models.TidalSpring},
		{rangeM: 4.0, want: models.TidalMid},
		{rangeM: 3.0, want: models.TidalMid},
		{rangeM: 2.99, want: models.TidalNeap},
		{rangeM: 0, want: models.TidalNeap},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRange(tt.rangeM, ukThresholds), "range %v", tt.rangeM)
	}

	assert.Equal(t, models.TidalSpring, ClassifyRange(3.5, config.TideConfig{SpringRangeM: 3.2, NeapRangeM: 2.0}))
}

func TestRange(t *testing.T) {
	assert.Equal(t, 0.0, Range(nil))
	assert.Equal(t, 0.0, Range([]models.TideEvent{event(time.Now(), models.TideHigh, 3.3)}))
	assert.Equal(t, 3.33, Range([]models.TideEvent{
		event(time.Now(), models.TideHigh, 4.444),
		event(time.Now(), models.TideLow, 1.111),
	}))
}

func TestMoonPhase(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{date: time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC), want: "New Moon"},
		{date: time.Date(2000, 1, 21, 0, 0, 0, 0, time.UTC), want: "Full Moon"},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			phase := MoonPhase(tt.date)
			assert.Equal(t, tt.want, phase.Name)
			assert.Equal(t, moonPhaseNames[phase.Index], phase.Name)
		})
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 400; d++ {
		phase := MoonPhase(start.AddDate(0, 0, d))
		assert.GreaterOrEqual(t, phase.Index, 0)
		assert.Less(t, phase.Index, 8)
	}
}
