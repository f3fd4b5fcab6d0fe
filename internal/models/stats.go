package models

// ScalarStat summarizes a numeric channel. Every field is nil when the
// filtered input was empty.
type ScalarStat struct {
	Avg *float64 `json:"avg"`
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

func (s ScalarStat) IsEmpty() bool {
	return s.Avg == nil && s.Min == nil && s.Max == nil
}

// DirectionalStat summarizes an angular channel using the circular mean.
// Avg is nil when there were no samples.
type DirectionalStat struct {
	Avg *float64  `json:"avg"`
	Raw []float64 `json:"raw"`
}

type MarineSummary struct {
	WaveHeight       ScalarStat      `json:"waveHeight"`
	WavePeriod       ScalarStat      `json:"wavePeriod"`
	WaveDirection    DirectionalStat `json:"waveDirection"`
	SwellHeight      ScalarStat      `json:"swellHeight"`
	SwellPeriod      ScalarStat      `json:"swellPeriod"`
	SwellDirection   DirectionalStat `json:"swellDirection"`
	CurrentSpeed     ScalarStat      `json:"currentSpeed"`
	CurrentDirection DirectionalStat `json:"currentDirection"`
	// SeaTemperature is nil when the provider has no sea temperature channel.
	SeaTemperature *ScalarStat `json:"seaTemperature"`
}

type WeatherSummary struct {
	Temperature   ScalarStat      `json:"temperature"`
	WindSpeed     ScalarStat      `json:"windSpeed"`
	WindGust      ScalarStat      `json:"windGust"`
	WindDirection DirectionalStat `json:"windDirection"`
	// PrecipitationProbability is the daytime maximum, in percent.
	PrecipitationProbability *float64   `json:"precipitationProbability"`
	Visibility               ScalarStat `json:"visibility"`
}
