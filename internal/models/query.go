package models

import "time"

// Query is the immutable input of a single conditions lookup.
type Query struct {
	Latitude  float64
	Longitude float64
	// Date is a calendar date, YYYY-MM-DD, in the configured local timezone.
	Date string
	// Time is HH:MM on Date. Empty means the start of the day.
	Time               string
	PreferredSubSource string
	Activities         []Activity
}

// StartTime resolves Date and Time in loc.
func (q Query) StartTime(loc *time.Location) (time.Time, error) {
	if q.Time == "" {
		return time.ParseInLocation("2006-01-02", q.Date, loc)
	}
	return time.ParseInLocation("2006-01-02 15:04", q.Date+" "+q.Time, loc)
}
