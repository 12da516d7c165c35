package client

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordsDoNotMatch is returned before any request when the new
	// password and its confirmation differ.
	ErrPasswordsDoNotMatch = errors.New("Passwords do not match")

	// ErrRecoveryLinkExpired is returned for links the backend marked as
	// expired and for tokens whose exp already passed.
	ErrRecoveryLinkExpired = errors.New("Password reset link has expired. Please request a new one.")

	// ErrRecoveryTokenNotFound is returned when a link carries no token.
	ErrRecoveryTokenNotFound = errors.New("Reset token not found. Please request a new password reset link.")

	// ErrRecoveryLinkInvalid is returned for links carrying any other error.
	ErrRecoveryLinkInvalid = errors.New("An error occurred. Please try again.")

	// ErrTooManyResetAttempts replaces the backend's rate-limit answer.
	ErrTooManyResetAttempts = errors.New("Too many reset attempts. Please wait a few minutes before trying again.")

	// ErrNotSignedIn is returned by commands that need a stored session.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrSessionExpired is returned when the stored session is past its
	// expiry.
	ErrSessionExpired = errors.New("session expired, please sign in again")

	// ErrPasswordRequired is returned when a password flag is empty.
	ErrPasswordRequired = errors.New("password is required")

	// ErrUnknownCommand is returned for unsupported CLI commands.
	ErrUnknownCommand = errors.New("unknown command")
)

// APIError is a non-2xx answer of the postdesk API.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}
