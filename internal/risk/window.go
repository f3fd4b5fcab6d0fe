package risk

import (
	"sort"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
)

// LookAheadHours is the number of hourly samples examined from the start
// time onwards.
const LookAheadHours = 6

// windowIndices returns up to LookAheadHours indices starting at the first
// sample at or after start. When every sample is earlier than start the
// window begins at the first sample.
func windowIndices(series *models.HourlySeries, start time.Time) []int {
	n := series.Len()
	if n == 0 {
		return nil
	}
	first := sort.Search(n, func(i int) bool {
		return !series.Times[i].Before(start)
	})
	if first == n {
		first = 0
	}
	last := first + LookAheadHours
	if last > n {
		last = n
	}

	indices := make([]int, 0, last-first)
	for i := first; i < last; i++ {
		indices = append(indices, i)
	}
	return indices
}

func windowMax(series *models.HourlySeries, ch models.Channel, indices []int) float64 {
	var worst float64
	for _, i := range indices {
		if v := series.At(ch, i); v != nil && *v > worst {
			worst = *v
		}
	}
	return worst
}

func windowMin(series *models.HourlySeries, ch models.Channel, indices []int) *float64 {
	var worst *float64
	for _, i := range indices {
		if v := series.At(ch, i); v != nil && (worst == nil || *v < *worst) {
			worst = models.Float(*v)
		}
	}
	return worst
}

func toKnots(mps float64) float64 {
	return units.Round(units.MPSToKnots(mps), 1)
}

// ExtractBundle finds the worst value of each factor over the look-ahead
// window. Sea temperature is the coldest sample; the others are maxima.
// When the marine series has no sea temperature in the window the day
// summary's minimum, then its average, is used instead. Wind is converted
// from m/s to knots.
func ExtractBundle(weather, marine *models.HourlySeries, start time.Time, seaSummary *models.ScalarStat) models.ConditionBundle {
	var bundle models.ConditionBundle

	if weather != nil {
		idx := windowIndices(weather, start)
		bundle.WindSpeedKnots = toKnots(windowMax(weather, models.WindSpeed, idx))
		bundle.WindGustKnots = toKnots(windowMax(weather, models.WindGust, idx))
	}

	if marine != nil {
		idx := windowIndices(marine, start)
		bundle.WaveHeightM = windowMax(marine, models.WaveHeight, idx)
		bundle.WavePeriodS = windowMax(marine, models.WavePeriod, idx)
		bundle.SeaTemperatureC = windowMin(marine, models.SeaTemperature, idx)
	}

	if bundle.SeaTemperatureC == nil && seaSummary != nil {
		switch {
		case seaSummary.Min != nil:
			bundle.SeaTemperatureC = models.Float(*seaSummary.Min)
		case seaSummary.Avg != nil:
			bundle.SeaTemperatureC = models.Float(*seaSummary.Avg)
		}
	}

	return bundle
}
