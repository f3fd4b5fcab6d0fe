package source

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

// OpenMeteoTimeLayout is the local timestamp format of hourly.time.
const OpenMeteoTimeLayout = "2006-01-02T15:04"

// OpenMeteoResponse is the envelope shared by the Open-Meteo marine and
// forecast endpoints.
type OpenMeteoResponse struct {
	Latitude         float64                    `json:"latitude"`
	Longitude        float64                    `json:"longitude"`
	Timezone         string                     `json:"timezone"`
	UTCOffsetSeconds int                        `json:"utc_offset_seconds"`
	HourlyUnits      map[string]string          `json:"hourly_units"`
	Hourly           map[string]json.RawMessage `json:"hourly"`
}

// Field maps one Open-Meteo hourly variable onto a canonical channel.
// Convert, when set, is applied to every non-null sample.
type Field struct {
	Name    string
	Channel models.Channel
	Convert func(float64) float64
}

// Series converts the hourly block into a canonical series. Open-Meteo labels
// every hour with the single utc_offset_seconds of the response, so stamps
// are read in that fixed zone rather than against loc's DST rules, then
// moved into loc. Variables missing from the payload are left out of the
// series.
func (r *OpenMeteoResponse) Series(provider string, loc *time.Location, fields []Field) (*models.HourlySeries, error) {
	if r.Hourly == nil {
		return nil, Malformed(provider, "hourly")
	}
	rawTimes, ok := r.Hourly["time"]
	if !ok {
		return nil, Malformed(provider, "hourly.time")
	}

	var stamps []string
	if err := json.Unmarshal(rawTimes, &stamps); err != nil {
		return nil, models.NewProviderError(provider, models.ErrProviderUnavailable, 0, "malformed hourly.time", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	zone := r.zone(loc)
	times := make([]time.Time, len(stamps))
	for i, s := range stamps {
		t, err := time.ParseInLocation(OpenMeteoTimeLayout, s, zone)
		if err != nil {
			return nil, models.NewProviderError(provider, models.ErrProviderUnavailable, 0,
				fmt.Sprintf("malformed timestamp %q", s), err)
		}
		times[i] = t.In(loc)
	}

	series := models.NewHourlySeries(provider, times)
	for _, f := range fields {
		raw, ok := r.Hourly[f.Name]
		if !ok {
			continue
		}
		var values []*float64
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, models.NewProviderError(provider, models.ErrProviderUnavailable, 0,
				fmt.Sprintf("malformed hourly.%s", f.Name), err)
		}
		if f.Convert != nil {
			for i, v := range values {
				if v != nil {
					values[i] = models.Float(f.Convert(*v))
				}
			}
		}
		if err := series.Set(f.Channel, values); err != nil {
			return nil, models.NewProviderError(provider, models.ErrProviderUnavailable, 0, "misaligned hourly block", err)
		}
	}

	if err := series.Validate(); err != nil {
		return nil, models.NewProviderError(provider, models.ErrProviderUnavailable, 0, "invalid hourly block", err)
	}
	return series, nil
}

// zone is the fixed offset the response labels its hours in. Payloads that
// carry no timezone fall back to loc.
func (r *OpenMeteoResponse) zone(loc *time.Location) *time.Location {
	if r.Timezone == "" {
		return loc
	}
	return time.FixedZone(r.Timezone, r.UTCOffsetSeconds)
}

// MissingChannels lists the channels with no usable sample in series.
func MissingChannels(series *models.HourlySeries, channels []models.Channel) []string {
	var missing []string
	for _, ch := range channels {
		if !series.Has(ch) {
			missing = append(missing, string(ch))
		}
	}
	return missing
}

// FieldNames lists the upstream variable names, for the hourly query parameter.
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
