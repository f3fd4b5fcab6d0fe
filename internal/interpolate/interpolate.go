package interpolate

import (
	"fmt"
	"sort"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

// Sample is one discrete point of a time series.
type Sample struct {
	Time  time.Time
	Value float64
}

func sorted(samples []Sample) []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

func findIndex(samples []Sample, target time.Time) int {
	return sort.Search(len(samples), func(i int) bool {
		return !samples[i].Time.Before(target)
	})
}

// ValueAt linearly interpolates between the two samples bracketing target.
// Targets outside the series hold the nearest endpoint value.
func ValueAt(samples []Sample, target time.Time) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("interpolating at %s: %w", target.Format(time.RFC3339), models.ErrNoDataForTime)
	}

	s := sorted(samples)
	idx := findIndex(s, target)
	if idx <= 0 {
		return s[0].Value, nil
	}
	if idx >= len(s) {
		return s[len(s)-1].Value, nil
	}

	p1 := s[idx-1]
	p2 := s[idx]
	span := p2.Time.Sub(p1.Time)
	if span == 0 {
		return p2.Value, nil
	}
	ratio := float64(target.Sub(p1.Time)) / float64(span)
	return p1.Value + (p2.Value-p1.Value)*ratio, nil
}

// TrendAt reports whether the series is rising or falling at target, using
// the bracketing pair (or the nearest pair at either end).
func TrendAt(samples []Sample, target time.Time) (models.TideTrend, error) {
	if len(samples) < 2 {
		return "", fmt.Errorf("tide trend needs at least 2 samples, have %d: %w", len(samples), models.ErrNoDataForTime)
	}

	s := sorted(samples)
	idx := findIndex(s, target)
	if idx <= 0 {
		idx = 1
	}
	if idx >= len(s) {
		idx = len(s) - 1
	}
	if s[idx].Value >= s[idx-1].Value {
		return models.TideRising, nil
	}
	return models.TideFalling, nil
}
