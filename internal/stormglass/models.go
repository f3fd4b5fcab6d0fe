package stormglass

import (
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

// readings holds one quantity as reported by each forecast model, keyed by
// model name (sg, noaa, meto, ...).
type readings map[string]*float64

type hour struct {
	Time             time.Time `json:"time"`
	WaterTemperature readings  `json:"waterTemperature"`
	WaveHeight       readings  `json:"waveHeight"`
	WavePeriod       readings  `json:"wavePeriod"`
	WaveDirection    readings  `json:"waveDirection"`
	SwellHeight      readings  `json:"swellHeight"`
	SwellPeriod      readings  `json:"swellPeriod"`
	SwellDirection   readings  `json:"swellDirection"`
	CurrentSpeed     readings  `json:"currentSpeed"`
	CurrentDirection readings  `json:"currentDirection"`
	AirTemperature   readings  `json:"airTemperature"`
	WindSpeed        readings  `json:"windSpeed"`
	WindDirection    readings  `json:"windDirection"`
	Gust             readings  `json:"gust"`
	Precipitation    readings  `json:"precipitation"`
	Visibility       readings  `json:"visibility"`
	CloudCover       readings  `json:"cloudCover"`
}

// Response is the raw /weather/point payload.
type Response struct {
	Hours []hour `json:"hours"`
	Meta  struct {
		Cost         int `json:"cost"`
		DailyQuota   int `json:"dailyQuota"`
		RequestCount int `json:"requestCount"`
	} `json:"meta"`
}

// Bundle is the marine and weather halves of one premium response.
type Bundle struct {
	Marine  *models.HourlySeries `json:"marine"`
	Weather *models.HourlySeries `json:"weather"`
}
