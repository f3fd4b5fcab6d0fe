package tide

import (
	"math"
	"sort"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
)

// ClassifyRange labels a day's tidal range against the spring and neap
// thresholds.
func ClassifyRange(rangeM float64, thresholds config.TideConfig) models.TidalType {
	switch {
	case rangeM > thresholds.SpringRangeM:
		return models.TidalSpring
	case rangeM < thresholds.NeapRangeM:
		return models.TidalNeap
	}
	return models.TidalMid
}

func sameDay(t time.Time, day time.Time, loc *time.Location) bool {
	y1, m1, d1 := t.In(loc).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Summarize restricts data to the calendar date in loc and derives the
// day's summary. Events on neighbouring days are dropped. Events need not
// alternate between high and low.
func Summarize(data *models.TideData, date string, loc *time.Location, thresholds config.TideConfig) (*models.TidalSummary, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := source.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}

	summary := &models.TidalSummary{
		Date:      date,
		Events:    []models.TideEvent{},
		Highs:     []models.TideEvent{},
		Lows:      []models.TideEvent{},
		Heights:   []models.TideHeight{},
		MoonPhase: MoonPhase(day),
	}
	if data == nil {
		summary.TidalType = ClassifyRange(0, thresholds)
		return summary, nil
	}

	summary.Station = data.Station
	summary.Datum = data.Datum
	summary.Copyright = data.Copyright
	summary.Source = data.Source

	for _, e := range data.Events {
		if sameDay(e.Time, day, loc) {
			summary.Events = append(summary.Events, e)
		}
	}
	sort.SliceStable(summary.Events, func(i, j int) bool {
		return summary.Events[i].Time.Before(summary.Events[j].Time)
	})

	for _, e := range summary.Events {
		if e.Kind == models.TideHigh {
			summary.Highs = append(summary.Highs, e)
		} else {
			summary.Lows = append(summary.Lows, e)
		}
	}

	for _, h := range data.Heights {
		if sameDay(h.Time, day, loc) {
			summary.Heights = append(summary.Heights, h)
		}
	}
	sort.SliceStable(summary.Heights, func(i, j int) bool {
		return summary.Heights[i].Time.Before(summary.Heights[j].Time)
	})

	summary.Range = Range(summary.Events)
	summary.TidalType = ClassifyRange(summary.Range, thresholds)
	return summary, nil
}

// Range is the spread between the highest and lowest event heights, to two
// decimals. It is 0 when there are no events.
func Range(events []models.TideEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range events {
		lo = math.Min(lo, e.HeightMeters)
		hi = math.Max(hi, e.HeightMeters)
	}
	return units.Round(hi-lo, 2)
}
