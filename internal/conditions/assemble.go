package conditions

import (
	"errors"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/interpolate"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/risk"
	"github.com/bbernstein/paddlewise/backend-go/internal/stats"
	"github.com/bbernstein/paddlewise/backend-go/internal/tide"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
	"github.com/rs/zerolog/log"
)

// Assemble turns fetched sources into the report. It performs no I/O.
func Assemble(q models.Query, start time.Time, src *Sources, loc *time.Location, thresholds config.TideConfig) (*models.Conditions, error) {
	if src == nil || src.Marine == nil || src.Weather == nil {
		return nil, errors.New("assembling conditions: marine and weather series are required")
	}

	summary, err := tide.Summarize(src.Tides, q.Date, loc, thresholds)
	if err != nil {
		return nil, &UserError{Message: tide.GenericMessage, Err: err}
	}

	marineSummary := stats.SummarizeMarine(src.Marine, loc)
	weatherSummary := stats.SummarizeWeather(src.Weather, loc)

	report := &models.Conditions{
		Location: models.Location{Latitude: q.Latitude, Longitude: q.Longitude},
		Date:     q.Date,
		Time:     start.In(loc).Format("15:04"),
		Tides:    tideConditions(*summary, start),
		Marine: models.MarineConditions{
			Series:  src.Marine,
			Summary: marineSummary,
			AtTime:  snapshot(src.Marine, start, loc),
		},
		Weather: models.WeatherConditions{
			Series:  src.Weather,
			Summary: weatherSummary,
			AtTime:  snapshot(src.Weather, start, loc),
		},
		CoastlineBearing: src.CoastlineBearing,
		Wind:             windAdvisory(weatherSummary, marineSummary, src.CoastlineBearing),
		Risk:             risk.Assess(src.Weather, src.Marine, start, marineSummary.SeaTemperature, q.Activities),
	}
	return report, nil
}

func tideConditions(summary models.TidalSummary, start time.Time) models.TideConditions {
	tc := models.TideConditions{TidalSummary: summary}

	height, err := interpolate.TideHeightAt(summary, start)
	if err != nil {
		log.Debug().Err(err).Msg("Tide height unavailable at start time")
		return tc
	}
	height = units.Round(height, 2)
	tc.HeightAtTime = &height

	if trend, err := interpolate.TrendAt(interpolate.TideSamples(summary), start); err == nil {
		tc.TrendAtTime = trend
	}
	return tc
}

func snapshot(series *models.HourlySeries, start time.Time, loc *time.Location) map[models.Channel]*float64 {
	values, err := interpolate.SnapshotAt(series, start, loc)
	if err != nil {
		log.Debug().Err(err).Str("source", series.Source).Msg("No sample at start time")
		return nil
	}
	return values
}

func windAdvisory(weather models.WeatherSummary, marine models.MarineSummary, coastBearing *float64) models.WindAdvisory {
	var w models.WindAdvisory
	if weather.WindSpeed.Avg != nil {
		knots := units.Round(units.MPSToKnots(*weather.WindSpeed.Avg), 1)
		w.AverageKnots = &knots
		w.BeaufortForce, w.BeaufortLabel = units.Beaufort(knots)
		w.PaddlerLevel = units.PaddlerLevel(knots)
	}

	direction := weather.WindDirection.Avg
	if direction == nil {
		return w
	}
	w.Compass = units.Compass(*direction)
	if coastBearing != nil {
		w.Shore = string(units.WindShore(*direction, *coastBearing))
	}
	if marine.CurrentDirection.Avg != nil {
		w.AgainstTideFlow = units.WindAgainstTide(*direction, *marine.CurrentDirection.Avg)
	}
	return w
}
