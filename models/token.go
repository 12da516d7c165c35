package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is what the identity provider hands out on a successful sign-in.
// It is owned by the client for its lifetime; the server never stores it.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Expiry returns the moment the access token stops being valid.
// ExpiresAt wins when the provider sent it; otherwise ExpiresIn is counted
// from now.
func (s Session) Expiry() time.Time {
	if s.ExpiresAt > 0 {
		return time.Unix(s.ExpiresAt, 0)
	}
	return time.Now().Add(time.Duration(s.ExpiresIn) * time.Second)
}

// TokenClaims is the subset of an access or recovery token payload the
// application reads without verifying the signature.
//
// These values are cosmetic: they pre-fill forms and let obviously expired
// tokens be rejected early. Trust decisions are always made by the identity
// provider.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Email is the address the token was issued for.
	Email string `json:"email,omitempty"`

	// Role is the provider role carried in the token.
	Role string `json:"role,omitempty"`

	// SessionID identifies the provider session the token belongs to.
	SessionID string `json:"session_id,omitempty"`
}

// IsExpired reports whether the token carries an exp claim that lies before
// now. A token without exp is treated as expired.
func (c TokenClaims) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}
