package units

import "math"

type beaufortBand struct {
	force    int
	maxKnots float64
	label    string
}

var beaufortScale = []beaufortBand{
	{0, 0, "Calm"},
	{1, 3, "Light air"},
	{2, 6, "Light breeze"},
	{3, 10, "Gentle breeze"},
	{4, 16, "Moderate breeze"},
	{5, 21, "Fresh breeze"},
	{6, 27, "Strong breeze"},
	{7, 33, "Near gale"},
	{8, 40, "Gale"},
	{9, 47, "Severe gale"},
	{10, 55, "Storm"},
	{11, 63, "Violent storm"},
	{12, math.Inf(1), "Hurricane"},
}

// Beaufort returns the force number and description for a speed in knots.
// Speeds are rounded to whole knots before banding.
func Beaufort(knots float64) (int, string) {
	k := math.Round(math.Max(0, knots))
	for _, b := range beaufortScale {
		if k <= b.maxKnots {
			return b.force, b.label
		}
	}
	last := beaufortScale[len(beaufortScale)-1]
	return last.force, last.label
}

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// PaddlerLevel is the minimum experience recommended for a sustained wind.
func PaddlerLevel(knots float64) string {
	switch {
	case knots <= 10:
		return LevelBeginner
	case knots <= 16:
		return LevelIntermediate
	case knots <= 27:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

type Shore string

const (
	Onshore  Shore = "onshore"
	Offshore Shore = "offshore"
	Parallel Shore = "parallel"
)

// AngleBetween is the smallest absolute difference between two bearings.
func AngleBetween(a, b float64) float64 {
	diff := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// WindShore classifies a wind direction against the coastline bearing
// returned by the coastline lookup.
func WindShore(windDirection, coastBearing float64) Shore {
	diff := AngleBetween(windDirection, coastBearing)
	switch {
	case diff <= 45:
		return Onshore
	case diff >= 135:
		return Offshore
	default:
		return Parallel
	}
}

// WindAgainstTide reports whether wind and current directions differ by at
// least 135 degrees. Wind against tide produces short, steep seas.
func WindAgainstTide(windDirection, currentDirection float64) bool {
	return AngleBetween(windDirection, currentDirection) >= 135
}
