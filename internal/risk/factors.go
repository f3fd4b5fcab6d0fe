package risk

import (
	"math"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

// Factor names as shown to the user.
const (
	FactorWaterTemperature = "Water Temperature"
	FactorWindSpeed        = "Wind Speed"
	FactorWindGust         = "Wind Gust"
	FactorWaveHeight       = "Wave Height"
	FactorWavePeriod       = "Wave Period"
)

// WaterTemperature scores 2 points per degree below 20°C. Points are not
// rounded. A nil temperature yields a zero-point N/A factor so the reader
// sees why it is missing.
func WaterTemperature(tempC *float64) models.RiskFactor {
	if tempC == nil {
		return models.RiskFactor{
			Name:     FactorWaterTemperature,
			Unit:     "°C",
			Points:   0,
			Severity: models.SeverityAmber,
		}
	}

	t := *tempC
	severity := models.SeverityRed
	switch {
	case t >= 15:
		severity = models.SeverityGreen
	case t >= 10:
		severity = models.SeverityAmber
	}
	return models.RiskFactor{
		Name:     FactorWaterTemperature,
		Value:    models.Float(t),
		Unit:     "°C",
		Points:   math.Max(0, (20-t)*2),
		Severity: severity,
	}
}

// WindSpeed scores 1 point per knot of sustained wind.
func WindSpeed(knots float64) models.RiskFactor {
	severity := models.SeverityRed
	switch {
	case knots < 10:
		severity = models.SeverityGreen
	case knots <= 20:
		severity = models.SeverityAmber
	}
	return models.RiskFactor{
		Name:     FactorWindSpeed,
		Value:    models.Float(knots),
		Unit:     " kn",
		Points:   math.Round(math.Max(0, knots)),
		Severity: severity,
	}
}

// WindGust scores 1 point per 3 knots of gust above the sustained wind.
// Severity is judged on the absolute gust.
func WindGust(gustKnots, windKnots float64) models.RiskFactor {
	severity := models.SeverityRed
	switch {
	case gustKnots < 15:
		severity = models.SeverityGreen
	case gustKnots <= 25:
		severity = models.SeverityAmber
	}
	return models.RiskFactor{
		Name:     FactorWindGust,
		Value:    models.Float(gustKnots),
		Unit:     " kn",
		Points:   math.Round(math.Max(0, gustKnots-windKnots) / 3),
		Severity: severity,
	}
}

// WaveHeight scores 6 points per meter.
func WaveHeight(meters float64) models.RiskFactor {
	severity := models.SeverityRed
	switch {
	case meters < 1:
		severity = models.SeverityGreen
	case meters <= 1.5:
		severity = models.SeverityAmber
	}
	return models.RiskFactor{
		Name:     FactorWaveHeight,
		Value:    models.Float(meters),
		Unit:     "m",
		Points:   math.Round(math.Max(0, meters) * 6),
		Severity: severity,
	}
}

// WavePeriod is informational and never adds points.
func WavePeriod(seconds float64) models.RiskFactor {
	severity := models.SeverityRed
	switch {
	case seconds < 10:
		severity = models.SeverityGreen
	case seconds <= 15:
		severity = models.SeverityAmber
	}
	return models.RiskFactor{
		Name:     FactorWavePeriod,
		Value:    models.Float(seconds),
		Unit:     "s",
		Points:   0,
		Severity: severity,
	}
}
