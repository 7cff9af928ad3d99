package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrPlaceNotFound   = errors.New("place not found")
	ErrInvalidResponse = errors.New("invalid weather data received")
	ErrNetwork         = errors.New("network error")
	ErrUpstream        = errors.New("unexpected upstream response")
)

// LookupError carries the kind of a pipeline failure together with the
// stage that produced it and the query being looked up.
type LookupError struct {
	Kind  error  // one of the Err* kinds above
	Op    string // "geocode", "forecast", or "normalize"
	Place string
	Err   error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewPlaceNotFound reports that geocoding returned no matches for place.
func NewPlaceNotFound(place string) error {
	return &LookupError{Kind: ErrPlaceNotFound, Op: "geocode", Place: place}
}

// Message converts a pipeline error into the single line shown to the user.
func Message(err error) string {
	var le *LookupError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPlaceNotFound):
		place := ""
		if errors.As(err, &le) {
			place = le.Place
		}
		return fmt.Sprintf("City '%s' not found", place)
	case errors.Is(err, ErrInvalidResponse):
		return "Invalid weather data received"
	case errors.Is(err, ErrNetwork):
		return "Could not reach the weather service"
	case errors.Is(err, ErrUpstream):
		return "Weather service returned an unexpected response"
	default:
		return "Failed to fetch weather data"
	}
}

// Outcome names the error kind for metrics labels. nil maps to "success".
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrPlaceNotFound):
		return "place_not_found"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, ErrNetwork):
		return "network_error"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
