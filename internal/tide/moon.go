package tide

import (
	"math"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

const synodicMonthDays = 29.5305882

var moonPhaseNames = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// MoonPhase approximates the moon phase for a calendar date from the mean
// synodic month. Only the date's year, month and day are used.
func MoonPhase(date time.Time) models.MoonPhase {
	year := float64(date.Year())
	month := float64(date.Month())
	day := float64(date.Day())

	if month < 3 {
		year--
		month += 12
	}

	jd := 365.25*year + 30.6*month + day - 694039.09
	cycles := jd / synodicMonthDays
	fraction := cycles - math.Floor(cycles)

	index := int(math.Round(fraction * 8))
	if index >= 8 {
		index = 0
	}
	return models.MoonPhase{Index: index, Name: moonPhaseNames[index]}
}
