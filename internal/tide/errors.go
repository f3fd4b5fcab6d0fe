package tide

import (
	"errors"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

const (
	KeyRequiredMessage = "WorldTides API key required. Please register for a FREE API key (takes 2 minutes):\n\n" +
		"1. Visit: https://www.worldtides.info/register\n" +
		"2. Verify your email\n" +
		"3. Get your API key from your account\n" +
		"4. Set WORLDTIDES_API_KEY in the environment"

	QuotaExceededMessage = "WorldTides API quota exceeded. Your free tier resets next month, or upgrade for more requests."

	NoDataMessage = "No tide data available for this location"

	GenericMessage = "Failed to fetch tide data. Please try again."
)

// UserMessage turns a tide fetch failure into the text shown to the user.
// Quota and key problems get remediation instructions.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrKeyRequired):
		return KeyRequiredMessage
	case errors.Is(err, models.ErrQuotaExceeded):
		return QuotaExceededMessage
	case errors.Is(err, models.ErrNoDataForLocation):
		return NoDataMessage
	}
	return GenericMessage
}
