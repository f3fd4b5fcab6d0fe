package interpolate

import (
	"fmt"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

// TideSamples chooses the best curve for a day of tides: the dense height
// series when it has at least two points, otherwise the high/low events.
func TideSamples(summary models.TidalSummary) []Sample {
	if len(summary.Heights) >= 2 {
		samples := make([]Sample, len(summary.Heights))
		for i, h := range summary.Heights {
			samples[i] = Sample{Time: h.Time, Value: h.HeightMeters}
		}
		return samples
	}
	return EventSamples(summary.Events)
}

func EventSamples(events []models.TideEvent) []Sample {
	samples := make([]Sample, len(events))
	for i, e := range events {
		samples[i] = Sample{Time: e.Time, Value: e.HeightMeters}
	}
	return samples
}

// TideHeightAt interpolates the water height at target. At least two
// samples are required.
func TideHeightAt(summary models.TidalSummary, target time.Time) (float64, error) {
	samples := TideSamples(summary)
	if len(samples) < 2 {
		return 0, fmt.Errorf("tide height needs at least 2 samples, have %d: %w", len(samples), models.ErrNoDataForTime)
	}
	return ValueAt(samples, target)
}
