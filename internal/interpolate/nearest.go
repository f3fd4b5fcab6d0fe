package interpolate

import (
	"fmt"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NearestHourIndex returns the first sample on target's calendar date whose
// hour equals target's hour, both evaluated in loc. Samples on other days
// are never matched.
func NearestHourIndex(times []time.Time, target time.Time, loc *time.Location) (int, error) {
	if loc == nil {
		loc = target.Location()
	}
	target = target.In(loc)
	for i, t := range times {
		t = t.In(loc)
		if sameDate(t, target) && t.Hour() == target.Hour() {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no sample at %s: %w", target.Format("2006-01-02 15:00"), models.ErrNoDataForTime)
}

// SnapshotAt extracts every channel of series at the hour containing target.
func SnapshotAt(series *models.HourlySeries, target time.Time, loc *time.Location) (map[models.Channel]*float64, error) {
	if series == nil {
		return nil, fmt.Errorf("snapshot of empty series: %w", models.ErrNoDataForTime)
	}
	idx, err := NearestHourIndex(series.Times, target, loc)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[models.Channel]*float64, len(series.Channels))
	for ch := range series.Channels {
		snapshot[ch] = series.At(ch, idx)
	}
	return snapshot, nil
}
