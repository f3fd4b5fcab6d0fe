package units

import "math"

const (
	knotsPerMPS   = 1.94384
	mpsPerKMH     = 1 / 3.6
	metersPerKm   = 1000.0
	degreesPerRad = 180 / math.Pi
)

func MPSToKnots(mps float64) float64 { return mps * knotsPerMPS }

func KnotsToMPS(knots float64) float64 { return knots / knotsPerMPS }

func KMHToMPS(kmh float64) float64 { return kmh * mpsPerKMH }

func KmToMeters(km float64) float64 { return km * metersPerKm }

func ToRadians(deg float64) float64 { return deg / degreesPerRad }

func ToDegrees(rad float64) float64 { return rad * degreesPerRad }

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// NormalizeDegrees folds any angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass maps a bearing to the nearest of the 16 compass points.
func Compass(deg float64) string {
	idx := int(math.Round(NormalizeDegrees(deg)/22.5)) % len(compassPoints)
	return compassPoints[idx]
}
