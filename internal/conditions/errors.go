package conditions

const (
	MarineFailedMessage  = "Failed to fetch marine conditions. Please try again."
	WeatherFailedMessage = "Failed to fetch weather conditions. Please try again."
)

// UserError carries the single message shown to the user for a failed
// lookup. Err keeps the cause for logging and errors.Is checks.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}
