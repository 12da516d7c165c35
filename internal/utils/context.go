// Package utils holds small helpers shared across postdesk packages:
// typed context keys, JSON response writing, the resty client wrapper,
// bearer and JWT parsing, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/postdesk/models"
)

// contextKey is a private type for context keys so that they never collide
// with string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey holds the models.User resolved by the session middleware.
var UserCtxKey = contextKey("user")

// TokenCtxKey holds the raw access token the request was authenticated with.
var TokenCtxKey = contextKey("accessToken")

// WithUser returns a copy of ctx carrying the authenticated user and token.
func WithUser(ctx context.Context, user models.User, token string) context.Context {
	ctx = context.WithValue(ctx, UserCtxKey, user)
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetUserFromContext returns the authenticated user. ok is false when the
// request did not pass through the session middleware.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// GetTokenFromContext returns the access token the request was
// authenticated with.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
