package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/postdesk/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded as a JWT.
var ErrMalformedToken = errors.New("malformed token")

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseUnverifiedClaims decodes the payload of a JWT without checking its
// signature. The result must only be used for display and for rejecting
// tokens that are obviously expired.
func ParseUnverifiedClaims(tokenString string) (models.TokenClaims, error) {
	var claims models.TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.TokenClaims{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	return claims, nil
}

// IsTokenExpired reports whether the token can be decoded and carries an exp
// claim in the past. Undecodable tokens and tokens without exp return false
// so that the identity provider gets to decide about them.
func IsTokenExpired(tokenString string, now time.Time) bool {
	claims, err := ParseUnverifiedClaims(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.IsExpired(now)
}

// SignHS256 mints an HS256 token for the given claims.
func SignHS256(claims models.TokenClaims, key string) (string, error) {
	if key == "" {
		return "", errors.New("empty sign key")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		return "", fmt.Errorf("error signing JWT token: %w", err)
	}
	return signed, nil
}
