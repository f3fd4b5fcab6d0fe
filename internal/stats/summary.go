package stats

import (
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

// Decimal precision per channel, matching the physical resolution providers
// report at.
var precision = map[models.Channel]int{
	models.WaveHeight:               2,
	models.WavePeriod:               2,
	models.SwellHeight:              2,
	models.SwellPeriod:              2,
	models.CurrentSpeed:             2,
	models.SeaTemperature:           1,
	models.AirTemperature:           1,
	models.ApparentTemperature:      1,
	models.WindSpeed:                1,
	models.WindGust:                 1,
	models.Visibility:               0,
	models.Precipitation:            1,
	models.PrecipitationProbability: 0,
}

// Precision returns the decimal places used when averaging ch.
func Precision(ch models.Channel) int {
	if p, ok := precision[ch]; ok {
		return p
	}
	return 2
}

type window struct {
	series  *models.HourlySeries
	indices []int
}

func daytime(series *models.HourlySeries, loc *time.Location) window {
	if series == nil {
		return window{}
	}
	return window{series: series, indices: DaytimeIndices(series.Times, loc)}
}

func (w window) values(ch models.Channel) []*float64 {
	values, ok := w.series.Values(ch)
	if !ok {
		return nil
	}
	return Select(values, w.indices)
}

func (w window) scalar(ch models.Channel) models.ScalarStat {
	return Arithmetic(w.values(ch), Precision(ch))
}

func (w window) direction(ch models.Channel) models.DirectionalStat {
	return Circular(w.values(ch))
}

// SummarizeMarine builds the daytime marine summary.
func SummarizeMarine(series *models.HourlySeries, loc *time.Location) models.MarineSummary {
	w := daytime(series, loc)
	summary := models.MarineSummary{
		WaveHeight:       w.scalar(models.WaveHeight),
		WavePeriod:       w.scalar(models.WavePeriod),
		WaveDirection:    w.direction(models.WaveDirection),
		SwellHeight:      w.scalar(models.SwellHeight),
		SwellPeriod:      w.scalar(models.SwellPeriod),
		SwellDirection:   w.direction(models.SwellDirection),
		CurrentSpeed:     w.scalar(models.CurrentSpeed),
		CurrentDirection: w.direction(models.CurrentDirection),
	}
	if sea := w.scalar(models.SeaTemperature); !sea.IsEmpty() {
		summary.SeaTemperature = &sea
	}
	return summary
}

// SummarizeWeather builds the daytime weather summary.
func SummarizeWeather(series *models.HourlySeries, loc *time.Location) models.WeatherSummary {
	w := daytime(series, loc)
	return models.WeatherSummary{
		Temperature:              w.scalar(models.AirTemperature),
		WindSpeed:                w.scalar(models.WindSpeed),
		WindGust:                 w.scalar(models.WindGust),
		WindDirection:            w.direction(models.WindDirection),
		PrecipitationProbability: Max(w.values(models.PrecipitationProbability)),
		Visibility:               w.scalar(models.Visibility),
	}
}
