package stormglass

import (
	"math"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/internal/units"
)

// Process normalizes a raw payload into canonical marine and weather
// series, choosing a model per sample and per channel with policy.
func Process(resp *Response, policy source.SubSourcePolicy) (*Bundle, error) {
	if resp == nil || len(resp.Hours) == 0 {
		return nil, source.Malformed(ProviderName, "hours")
	}

	n := len(resp.Hours)
	times := make([]time.Time, n)
	for i, h := range resp.Hours {
		times[i] = h.Time
	}

	columns := make(map[models.Channel][]*float64)
	column := func(ch models.Channel) []*float64 {
		if _, ok := columns[ch]; !ok {
			columns[ch] = make([]*float64, n)
		}
		return columns[ch]
	}

	pick := func(r readings) *float64 {
		return policy.Resolve(r)
	}
	for i, h := range resp.Hours {
		column(models.WaveHeight)[i] = pick(h.WaveHeight)
		column(models.WavePeriod)[i] = pick(h.WavePeriod)
		column(models.WaveDirection)[i] = pick(h.WaveDirection)
		column(models.SwellHeight)[i] = pick(h.SwellHeight)
		column(models.SwellPeriod)[i] = pick(h.SwellPeriod)
		column(models.SwellDirection)[i] = pick(h.SwellDirection)
		column(models.CurrentSpeed)[i] = pick(h.CurrentSpeed)
		column(models.CurrentDirection)[i] = pick(h.CurrentDirection)
		column(models.SeaTemperature)[i] = pick(h.WaterTemperature)

		air := pick(h.AirTemperature)
		wind := pick(h.WindSpeed)
		gust := pick(h.Gust)
		if gust == nil {
			gust = wind
		}
		precip := pick(h.Precipitation)

		column(models.AirTemperature)[i] = air
		// No apparent temperature upstream; air temperature stands in.
		column(models.ApparentTemperature)[i] = air
		column(models.WindSpeed)[i] = wind
		column(models.WindGust)[i] = gust
		column(models.WindDirection)[i] = pick(h.WindDirection)
		column(models.Precipitation)[i] = precip
		column(models.PrecipitationProbability)[i] = precipitationProbability(precip)
		if vis := pick(h.Visibility); vis != nil {
			column(models.Visibility)[i] = models.Float(units.KmToMeters(*vis))
		}
		column(models.CloudCover)[i] = pick(h.CloudCover)
		column(models.WeatherCode)[i] = WeatherCode(pick(h.CloudCover), precip)
	}

	marine := models.NewHourlySeries(ProviderName, times)
	for _, ch := range models.MarineChannels {
		if err := marine.Set(ch, column(ch)); err != nil {
			return nil, err
		}
	}
	weather := models.NewHourlySeries(ProviderName, times)
	for _, ch := range models.WeatherChannels {
		if err := weather.Set(ch, column(ch)); err != nil {
			return nil, err
		}
	}

	if err := marine.Validate(); err != nil {
		return nil, source.Malformed(ProviderName, "ordered hours")
	}

	return &Bundle{Marine: marine, Weather: weather}, nil
}

// precipitationProbability estimates a chance of rain from the hourly
// amount, since the aggregator reports no probability.
func precipitationProbability(precip *float64) *float64 {
	if precip == nil {
		return nil
	}
	if *precip <= 0 {
		return models.Float(0)
	}
	return models.Float(math.Min(100, *precip*20))
}

// WeatherCode maps cloud cover (percent) and precipitation (mm/h) to the
// WMO code subset used by the fallback weather provider. Missing inputs
// count as zero; nil is returned only when both are missing.
func WeatherCode(cloudCover, precipitation *float64) *float64 {
	if cloudCover == nil && precipitation == nil {
		return nil
	}
	var cloud, precip float64
	if cloudCover != nil {
		cloud = *cloudCover
	}
	if precipitation != nil {
		precip = *precipitation
	}

	switch {
	case precip > 5:
		return models.Float(65)
	case precip > 1:
		return models.Float(63)
	case precip > 0:
		return models.Float(61)
	case cloud > 75:
		return models.Float(3)
	case cloud > 50:
		return models.Float(2)
	case cloud > 25:
		return models.Float(1)
	}
	return models.Float(0)
}
