// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)

// Fallback messages for unexpected failures. Details are logged, not sent.
const (
	msgInternalServerError = "Internal server error"
	msgFetchSettingsFailed = "Failed to fetch settings"
	msgFetchPostsFailed    = "Failed to fetch posts"
	msgDeletePostFailed    = "Failed to delete post"
	msgNotFound            = "Not found"
)

// Success messages.
const (
	msgRegistered      = "Registration successful. Check your email."
	msgResetLinkSent   = "Password reset link sent successfully. Please check your email."
	msgPasswordUpdated = "Password has been successfully updated"
	msgSettingsSaved   = "Settings saved successfully"
	msgLoggedOut       = "Logged out successfully"
	msgPostDeleted     = "Post deleted successfully"
	msgProfileUpdated  = "Profile updated successfully"
	msgPasswordChanged = "Password changed successfully"
	msgEmailUpdated    = "Email updated successfully"
)
