// Package source defines the contract shared by every upstream data
// provider adapter: input validation, status classification, cache keys
// and the sub-source selection policy of multi-model providers.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
)

// DateLayout is the calendar date format accepted by every adapter.
const DateLayout = "2006-01-02"

// Adapter fetches one provider's hourly series for a calendar date and
// normalizes it into canonical channels and units.
type Adapter interface {
	Provider() string
	Fetch(ctx context.Context, lat, lon float64, date string) (*models.HourlySeries, error)
}

// ValidateCoordinates rejects out of range or non-finite coordinates.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return models.NewInvalidInputError("latitude", fmt.Sprintf("%v is outside [-90, 90]", lat))
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return models.NewInvalidInputError("longitude", fmt.Sprintf("%v is outside [-180, 180]", lon))
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, models.NewInvalidInputError("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", date))
	}
	return t, nil
}

// ValidateRequest runs the checks every adapter performs before any
// network call.
func ValidateRequest(lat, lon float64, date string) error {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return err
	}
	_, err := ParseDate(date, time.UTC)
	return err
}

// CacheKey builds the per-provider key. Coordinates are rounded to four
// decimals so nearby lookups share an entry.
func CacheKey(provider string, lat, lon float64, date string) string {
	return fmt.Sprintf("%s:%.4f:%.4f:%s", provider, lat, lon, date)
}

// CheckStatus classifies a provider response. Rate limiting maps to
// ErrQuotaExceeded, auth failures to ErrKeyRequired and any other non-2xx
// status to ErrProviderUnavailable.
func CheckStatus(provider string, resp *client.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	message := http.StatusText(resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return models.NewProviderError(provider, models.ErrQuotaExceeded, resp.StatusCode, message, nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.NewProviderError(provider, models.ErrKeyRequired, resp.StatusCode, message, nil)
	default:
		return models.NewProviderError(provider, models.ErrProviderUnavailable, resp.StatusCode, message, nil)
	}
}

// Get issues the request and classifies the outcome. Transport failures
// are reported as ErrProviderUnavailable.
func Get(ctx context.Context, httpClient client.Interface, provider, path string, opts ...client.RequestOption) (*client.Response, error) {
	resp, err := httpClient.Get(ctx, path, opts...)
	if err != nil {
		return nil, models.NewProviderError(provider, models.ErrProviderUnavailable, 0, "request failed", err)
	}
	if err := CheckStatus(provider, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DecodeJSON decodes a provider payload. A payload that does not decode is
// malformed and reported as ErrProviderUnavailable.
func DecodeJSON(provider string, body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return models.NewProviderError(provider, models.ErrProviderUnavailable, 0, "malformed payload", err)
	}
	return nil
}

// Malformed reports a payload missing a required top-level field.
func Malformed(provider, field string) error {
	return models.NewProviderError(provider, models.ErrProviderUnavailable, 0,
		fmt.Sprintf("malformed payload: missing %s", field), nil)
}

// Outcome names the metrics label for an adapter result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, models.ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, models.ErrKeyRequired):
		return "key_required"
	case errors.Is(err, models.ErrNoDataForLocation):
		return "no_data"
	default:
		return "unavailable"
	}
}
