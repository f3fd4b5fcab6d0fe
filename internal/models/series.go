package models

import (
	"fmt"
	"time"
)

// Channel names a single measured quantity inside an HourlySeries.
type Channel string

// Marine channels. Heights in meters, periods in seconds, speeds in m/s,
// directions in degrees, temperatures in Celsius.
const (
	WaveHeight       Channel = "waveHeight"
	WavePeriod       Channel = "wavePeriod"
	WaveDirection    Channel = "waveDirection"
	SwellHeight      Channel = "swellHeight"
	SwellPeriod      Channel = "swellPeriod"
	SwellDirection   Channel = "swellDirection"
	CurrentSpeed     Channel = "currentSpeed"
	CurrentDirection Channel = "currentDirection"
	SeaTemperature   Channel = "seaTemperature"
)

// Weather channels. Visibility is in meters and precipitation in mm.
const (
	AirTemperature           Channel = "airTemperature"
	ApparentTemperature      Channel = "apparentTemperature"
	WindSpeed                Channel = "windSpeed"
	WindGust                 Channel = "windGust"
	WindDirection            Channel = "windDirection"
	Precipitation            Channel = "precipitation"
	PrecipitationProbability Channel = "precipitationProbability"
	Visibility               Channel = "visibility"
	CloudCover               Channel = "cloudCover"
	WeatherCode              Channel = "weatherCode"
)

var MarineChannels = []Channel{
	WaveHeight, WavePeriod, WaveDirection,
	SwellHeight, SwellPeriod, SwellDirection,
	CurrentSpeed, CurrentDirection, SeaTemperature,
}

var WeatherChannels = []Channel{
	AirTemperature, ApparentTemperature,
	WindSpeed, WindGust, WindDirection,
	Precipitation, PrecipitationProbability,
	Visibility, CloudCover, WeatherCode,
}

// HourlySeries is the canonical time-indexed record every adapter produces.
// Each channel slice is aligned index-for-index with Times; nil entries are
// missing samples. Channels a provider does not report are absent from the map.
type HourlySeries struct {
	Source   string                `json:"source"`
	Times    []time.Time           `json:"times"`
	Channels map[Channel][]*float64 `json:"channels"`
}

func NewHourlySeries(source string, times []time.Time) *HourlySeries {
	return &HourlySeries{
		Source:   source,
		Times:    times,
		Channels: make(map[Channel][]*float64),
	}
}

func (s *HourlySeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Times)
}

// Set attaches a channel. The slice must be aligned with Times.
func (s *HourlySeries) Set(ch Channel, values []*float64) error {
	if len(values) != len(s.Times) {
		return fmt.Errorf("channel %s has %d samples, series has %d", ch, len(values), len(s.Times))
	}
	s.Channels[ch] = values
	return nil
}

// Values returns the channel and whether the provider supplied it at all.
func (s *HourlySeries) Values(ch Channel) ([]*float64, bool) {
	if s == nil || s.Channels == nil {
		return nil, false
	}
	v, ok := s.Channels[ch]
	return v, ok
}

// Has reports whether the channel exists with at least one non-nil sample.
func (s *HourlySeries) Has(ch Channel) bool {
	values, ok := s.Values(ch)
	if !ok {
		return false
	}
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}

// At returns the sample at index i, or nil when absent or out of range.
func (s *HourlySeries) At(ch Channel, i int) *float64 {
	values, ok := s.Values(ch)
	if !ok || i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

// Validate checks ordering of Times and alignment of every channel.
func (s *HourlySeries) Validate() error {
	if s == nil {
		return fmt.Errorf("nil series")
	}
	for i := 1; i < len(s.Times); i++ {
		if !s.Times[i].After(s.Times[i-1]) {
			return fmt.Errorf("times not strictly ascending at index %d", i)
		}
	}
	for ch, values := range s.Channels {
		if len(values) != len(s.Times) {
			return fmt.Errorf("channel %s has %d samples, series has %d", ch, len(values), len(s.Times))
		}
	}
	return nil
}

// Float returns a pointer to v. Handy when building sparse channels.
func Float(v float64) *float64 {
	return &v
}
