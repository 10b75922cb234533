// ABOUTME: Error values returned by the speech client
// ABOUTME: Sentinel validation errors plus the vendor APIError
package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when no API key is configured
	ErrMissingCredential = errors.New("gemini: API key is missing")

	// ErrEmptyText is returned for a blank script
	ErrEmptyText = errors.New("gemini: text is empty")

	// ErrTemperatureRange is returned when the temperature is outside [0, 2]
	ErrTemperatureRange = errors.New("gemini: temperature out of range")

	// ErrMissingPayload is returned when the response carries no audio
	ErrMissingPayload = errors.New("gemini: no audio data returned")
)

// APIError is a non-2xx response from the vendor
type APIError struct {
	Status  int    // HTTP status code
	Code    string // vendor status string, e.g. "INVALID_ARGUMENT"
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gemini: HTTP %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gemini: HTTP %d: %s", e.Status, e.Message)
}
