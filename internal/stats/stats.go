// Package stats computes the representative-day summaries shown for a
// location: arithmetic stats for scalar channels and circular means for
// directions, both restricted to daytime hours.
package stats

import (
	"math"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
)

const (
	DaytimeStartHour = 6
	DaytimeEndHour   = 20
)

// DaytimeIndices returns the indices whose local hour lies in [6,20].
// Times are evaluated in loc; a nil loc uses each timestamp's own zone.
func DaytimeIndices(times []time.Time, loc *time.Location) []int {
	indices := make([]int, 0, len(times))
	for i, t := range times {
		if loc != nil {
			t = t.In(loc)
		}
		if h := t.Hour(); h >= DaytimeStartHour && h <= DaytimeEndHour {
			indices = append(indices, i)
		}
	}
	return indices
}

// Select picks values at the given indices. Out of range indices yield nil.
func Select(values []*float64, indices []int) []*float64 {
	out := make([]*float64, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(values) {
			out = append(out, nil)
			continue
		}
		out = append(out, values[i])
	}
	return out
}

func valid(values []*float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

// Arithmetic computes avg/min/max after dropping missing samples. The
// average is rounded to precision decimal places; min and max are returned
// as observed.
func Arithmetic(values []*float64, precision int) models.ScalarStat {
	vs := valid(values)
	if len(vs) == 0 {
		return models.ScalarStat{}
	}

	sum, lo, hi := 0.0, vs[0], vs[0]
	for _, v := range vs {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	avg := units.Round(sum/float64(len(vs)), precision)

	return models.ScalarStat{Avg: &avg, Min: &lo, Max: &hi}
}

// minResultantLength is the mean resultant length below which directions
// cancel out and have no meaningful mean.
const minResultantLength = 1e-9

// Circular computes the circular mean of directions in degrees, rounded to
// a whole degree in [0,360). Avg is nil for empty input and when the
// directions cancel out, e.g. 0 and 180.
func Circular(directions []*float64) models.DirectionalStat {
	vs := valid(directions)
	stat := models.DirectionalStat{Raw: vs}
	if len(vs) == 0 {
		return stat
	}

	var sumSin, sumCos float64
	for _, d := range vs {
		r := units.ToRadians(d)
		sumSin += math.Sin(r)
		sumCos += math.Cos(r)
	}
	n := float64(len(vs))
	if math.Hypot(sumSin/n, sumCos/n) < minResultantLength {
		return stat
	}
	avg := units.ToDegrees(math.Atan2(sumSin/n, sumCos/n))
	if avg < 0 {
		avg += 360
	}
	avg = units.NormalizeDegrees(math.Round(avg))
	stat.Avg = &avg
	return stat
}

// Max returns the largest valid value, or nil.
func Max(values []*float64) *float64 {
	vs := valid(values)
	if len(vs) == 0 {
		return nil
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Max(m, v)
	}
	return &m
}

// Min returns the smallest valid value, or nil.
func Min(values []*float64) *float64 {
	vs := valid(values)
	if len(vs) == 0 {
		return nil
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Min(m, v)
	}
	return &m
}
