package service

import (
	"context"

	"github.com/MKhiriev/postdesk/models"
)

// AuthService drives the session lifecycle against the identity provider.
type AuthService interface {
	Login(ctx context.Context, credentials models.Credentials) (models.Session, error)
	Register(ctx context.Context, req models.SignUpRequest) (models.User, error)

	// RequestPasswordReset sends the recovery email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword verifies a recovery token and sets a new password.
	ResetPassword(ctx context.Context, token, password string) error

	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (models.User, error)

	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, tokenHash string) error

	UpdateProfile(ctx context.Context, user models.User, firstName, lastName string) (models.User, error)
	ChangePassword(ctx context.Context, user models.User, currentPassword, newPassword string) error
	UpdateEmail(ctx context.Context, user models.User, email string) (models.User, error)
}

// SettingsService reads and saves per-user integration settings.
type SettingsService interface {
	// Get returns empty defaults for users without a saved row.
	Get(ctx context.Context, userID string) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) (models.Settings, error)
}

// PostService lists and deletes a user's posts.
type PostService interface {
	List(ctx context.Context, page models.PostPage) (models.PostList, error)
	Delete(ctx context.Context, userID, postID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfoResponse
}
