package coastline

import (
	"math"

	"github.com/bbernstein/paddlewise/backend-go/internal/units"
)

const earthRadiusKm = 6371.0

// Distance is the great-circle distance between two points in kilometres.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := units.ToRadians(lat2 - lat1)
	dLon := units.ToRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(units.ToRadians(lat1))*math.Cos(units.ToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Bearing is the initial compass bearing from the first point towards the
// second, in [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := units.ToRadians(lat1)
	phi2 := units.ToRadians(lat2)
	dLon := units.ToRadians(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)
	return units.NormalizeDegrees(units.ToDegrees(math.Atan2(y, x)))
}
