package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by every provider. Match with errors.Is.
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrQuotaExceeded       = errors.New("provider quota exceeded")
	ErrKeyRequired         = errors.New("provider api key required")
	ErrNoDataForLocation   = errors.New("no data for location")
	ErrNoDataForTime       = errors.New("no data for time")
	ErrInvalidInput        = errors.New("invalid input")
)

// ProviderError describes a failed call to an upstream data provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Kind       error
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrQuotaExceeded) works
// without unwrapping through Err.
func (e *ProviderError) Is(target error) bool {
	return e.Kind == target
}

// NewProviderError creates a provider error of the given kind.
func NewProviderError(provider string, kind error, statusCode int, message string, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
		Kind:       kind,
		Err:        err,
	}
}

// InvalidInputError is returned before any network call when a query is malformed.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewInvalidInputError(field, message string) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: message}
}
