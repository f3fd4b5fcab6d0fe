package models

import (
	"fmt"
	"time"
)

type TideKind string

const (
	TideHigh TideKind = "High"
	TideLow  TideKind = "Low"
)

// TideTrend describes whether the water is rising or falling at an instant.
type TideTrend string

const (
	TideRising  TideTrend = "Rising"
	TideFalling TideTrend = "Falling"
)

type TidalType string

const (
	TidalSpring TidalType = "Spring"
	TidalNeap   TidalType = "Neap"
	TidalMid    TidalType = "Mid"
)

// TideEvent is a single high or low water.
type TideEvent struct {
	Time         time.Time `json:"time"`
	Kind         TideKind  `json:"kind"`
	HeightMeters float64   `json:"heightMeters"`
}

// Validate checks the event kind and timestamp.
func (e TideEvent) Validate() error {
	if e.Time.IsZero() {
		return fmt.Errorf("tide event has no time")
	}
	if e.Kind != TideHigh && e.Kind != TideLow {
		return fmt.Errorf("invalid tide event kind: %q", e.Kind)
	}
	return nil
}

// TideHeight is one sample of the denser height curve.
type TideHeight struct {
	Time         time.Time `json:"time"`
	HeightMeters float64   `json:"heightMeters"`
}

type TideStation struct {
	Name       string   `json:"name"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	DistanceKm *float64 `json:"distanceKm"`
}

// TideData is a tide provider's answer before date filtering.
type TideData struct {
	Source    string       `json:"source"`
	Events    []TideEvent  `json:"events"`
	Heights   []TideHeight `json:"heights,omitempty"`
	Station   TideStation  `json:"station"`
	Datum     string       `json:"datum"`
	Copyright string       `json:"copyright,omitempty"`
}

type MoonPhase struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// TidalSummary is the processed view of a single day's tides.
type TidalSummary struct {
	Date      string       `json:"date"`
	Events    []TideEvent  `json:"events"`
	Highs     []TideEvent  `json:"highs"`
	Lows      []TideEvent  `json:"lows"`
	Heights   []TideHeight `json:"heights"`
	Range     float64      `json:"range"`
	TidalType TidalType    `json:"tidalType"`
	MoonPhase MoonPhase    `json:"moonPhase"`
	Station   TideStation  `json:"station"`
	Datum     string       `json:"datum"`
	Copyright string       `json:"copyright,omitempty"`
	Source    string       `json:"source"`
}
