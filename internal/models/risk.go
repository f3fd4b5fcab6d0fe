package models

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityGreen Severity = "Green"
	SeverityAmber Severity = "Amber"
	SeverityRed   Severity = "Red"
)

// Activity is an optional hazardous activity that adds a flat surcharge.
type Activity string

const (
	ActivityRockHopping Activity = "rockhopping"
	ActivitySeaCaves    Activity = "seaCaves"
	ActivitySurfing     Activity = "surfing"
	ActivityNightTime   Activity = "nightTime"
)

var Activities = []Activity{ActivityRockHopping, ActivitySeaCaves, ActivitySurfing, ActivityNightTime}

// ParseActivity accepts the canonical names plus common spellings such as
// "rock-hopping", "sea-caves" and "night".
func ParseActivity(s string) (Activity, error) {
	normalized := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch normalized {
	case "rockhopping":
		return ActivityRockHopping, nil
	case "seacaves", "caves":
		return ActivitySeaCaves, nil
	case "surfing", "surf":
		return ActivitySurfing, nil
	case "nighttime", "night", "nightpaddling":
		return ActivityNightTime, nil
	}
	return "", fmt.Errorf("unknown activity: %q", s)
}

// Label is the human readable activity name.
func (a Activity) Label() string {
	switch a {
	case ActivityRockHopping:
		return "Rock Hopping"
	case ActivitySeaCaves:
		return "Sea Caves"
	case ActivitySurfing:
		return "Surfing"
	case ActivityNightTime:
		return "Night Paddling"
	}
	return string(a)
}

// ConditionBundle holds the worst value of each factor over the look-ahead
// window. SeaTemperatureC is nil when no sea temperature is known at all.
type ConditionBundle struct {
	SeaTemperatureC *float64 `json:"seaTemperatureC"`
	WindSpeedKnots  float64  `json:"windSpeedKnots"`
	WindGustKnots   float64  `json:"windGustKnots"`
	WaveHeightM     float64  `json:"waveHeightM"`
	WavePeriodS     float64  `json:"wavePeriodS"`
}

type RiskFactor struct {
	Name     string   `json:"name"`
	Value    *float64 `json:"value"`
	Unit     string   `json:"unit"`
	Points   float64  `json:"points"`
	Severity Severity `json:"severity"`
}

// Display renders the factor value with its unit, or "N/A".
func (f RiskFactor) Display() string {
	if f.Value == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%s", *f.Value, f.Unit)
}

type RiskAssessment struct {
	TotalPoints float64      `json:"totalPoints"`
	Score       float64      `json:"score"`
	Category    int          `json:"category"`
	Label       string       `json:"label"`
	Title       string       `json:"title"`
	Factors     []RiskFactor `json:"factors"`
	Activities  []Activity   `json:"activities"`
	Concerns    []string     `json:"concerns"`
	Narrative   string       `json:"narrative"`
}

// ScoreDisplay is the score rendered to one decimal place.
func (r RiskAssessment) ScoreDisplay() string {
	return fmt.Sprintf("%.1f", r.Score)
}
