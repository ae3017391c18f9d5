package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing listing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a malformed or missing request field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLandmarkNotFound signals that no landmark matches the requested name.
	ErrLandmarkNotFound = errors.New("landmark not found")
	// ErrStoreUnavailable signals a failed or timed out listing store call. Retryable.
	ErrStoreUnavailable = errors.New("listing store unavailable")
)

// LandmarkNotFoundError wraps ErrLandmarkNotFound with the name that was looked up.
type LandmarkNotFoundError struct {
	Name string
}

func (e *LandmarkNotFoundError) Error() string {
	return fmt.Sprintf("landmark %q not found", e.Name)
}

func (e *LandmarkNotFoundError) Unwrap() error { return ErrLandmarkNotFound }

// NewLandmarkNotFound creates a landmark-not-found error for name.
func NewLandmarkNotFound(name string) error {
	return &LandmarkNotFoundError{Name: name}
}

// InvalidInput wraps ErrInvalidInput with a client-facing reason.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
