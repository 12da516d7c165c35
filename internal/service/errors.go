// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Validation errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrEmailRequired       = errors.New("email is required")
	ErrResetTokenRequired  = errors.New("token is required for password reset")
	ErrPasswordRequired    = errors.New("password is required")
)

// Authentication errors.
var (
	// ErrNoToken is returned when a protected operation gets no token.
	ErrNoToken = errors.New("no token provided")

	// ErrTokenIsExpired is returned when the token's exp claim lies in the
	// past. The provider is not asked in that case.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrInvalidToken is returned when the provider rejects a token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials is returned when email and password do not match.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrWrongCurrentPassword is returned by change-password when the
	// re-authentication fails.
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
)

// Password reset and account errors.
var (
	ErrInvalidResetToken    = errors.New("invalid reset token")
	ErrPasswordUpdateFailed = errors.New("failed to update password")
	ErrVerificationFailed   = errors.New("email verification failed")

	// ErrUserNotFound is only produced when the reset existence check is
	// enabled.
	ErrUserNotFound = errors.New("user not found")

	ErrRateLimited = errors.New("too many requests")
)

// Resource errors.
var (
	// ErrPostNotFound covers both missing posts and posts owned by someone
	// else.
	ErrPostNotFound = errors.New("post not found or access denied")

	ErrSettingsUnavailable = errors.New("settings storage unavailable")
	ErrPostsUnavailable    = errors.New("posts storage unavailable")

	// ErrProviderUnavailable is returned when the identity provider cannot
	// be reached or answers with a 5xx.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
