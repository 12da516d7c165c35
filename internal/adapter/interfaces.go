// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the hosted identity backend (a GoTrue-compatible
// REST API).
//
// [IdentityProvider] decouples the service layer from the wire protocol.
// The only implementation, [NewGoTrueAdapter], keeps two resty handles: one
// carrying the unprivileged anon key and one carrying the elevated
// service-role key.
//
// Non-2xx answers become [*ProviderError] values that wrap one of the
// sentinels in errors.go, so callers can branch with [errors.Is] and still
// show the backend's human-readable message.
package adapter

import (
	"context"

	"github.com/MKhiriev/postdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_provider_mock.go -package=mock

// IdentityProvider is the set of identity backend operations postdesk uses.
type IdentityProvider interface {
	// SignIn exchanges email and password for a session.
	// Wrong credentials yield [ErrInvalidCredentials].
	SignIn(ctx context.Context, email, password string) (models.Session, error)

	// SignUp creates an account. The confirmation email links back to
	// <public URL>/login.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error)

	// SendPasswordReset asks the backend to email a recovery link pointing
	// at <public URL>/reset-password. Unknown addresses are a silent no-op
	// on the backend side.
	SendPasswordReset(ctx context.Context, email string) error

	// GetUser resolves an access or recovery token to its user.
	// Rejected tokens yield [ErrInvalidToken].
	GetUser(ctx context.Context, token string) (models.User, error)

	// SignOut revokes the session the token belongs to.
	SignOut(ctx context.Context, token string) error

	// VerifyEmail confirms a sign-up using the token hash from the
	// confirmation link.
	VerifyEmail(ctx context.Context, tokenHash string) error

	// UpdateUserByID applies an admin update with the elevated credential.
	UpdateUserByID(ctx context.Context, id string, update models.AdminUserUpdate) (models.User, error)

	// FindUserByEmail scans the admin user list. A miss yields [ErrNotFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// Health reports whether the backend answers its health endpoint.
	Health(ctx context.Context) error
}
