package adapter

import (
	"errors"
	"fmt"
)

// Sentinel classes of identity backend failures.
var (
	// ErrInvalidCredentials is returned when a password grant is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a bearer token is rejected (401/403).
	ErrInvalidToken = errors.New("invalid token")
	// ErrBadRequest covers the remaining 4xx answers, 422 included.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound is returned for 404 answers and admin lookups that miss.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is returned for 429 answers.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable covers 5xx answers and transport failures.
	ErrUnavailable = errors.New("identity provider unavailable")
)

// ProviderError describes a non-2xx answer from the identity backend.
type ProviderError struct {
	// Status is the HTTP status code. Zero for transport failures.
	Status int
	// Code is the backend's machine-readable error code, if any.
	Code string
	// Message is the backend's human-readable message.
	Message string

	kind error
}

// NewProviderError builds a ProviderError of the given class. kind should be
// one of the sentinels above.
func NewProviderError(kind error, status int, message string) *ProviderError {
	return &ProviderError{Status: status, Message: message, kind: kind}
}

func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.kind, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.kind, e.Status, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.kind
}

// ProviderMessage returns the backend's message carried by err, or an empty
// string if err does not come from the backend.
func ProviderMessage(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return ""
}
