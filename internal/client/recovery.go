package client

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

var tokenInURL = regexp.MustCompile(`[?#&](?:access_token|token)=([^&]+)`)

// RecoveryLink is what a password-reset email link carries.
type RecoveryLink struct {
	Token string
	Type  string

	Error            string
	ErrorCode        string
	ErrorDescription string
}

// IsRecovery reports whether the backend marked the link as a recovery
// link.
func (l RecoveryLink) IsRecovery() bool {
	return l.Type == "recovery"
}

// Err turns the error parameters of the link into one of the package
// errors. It returns nil for links without an error.
func (l RecoveryLink) Err() error {
	switch {
	case l.Error == "":
		return nil
	case l.Error == "access_denied" && l.ErrorCode == "otp_expired":
		return ErrRecoveryLinkExpired
	case l.ErrorDescription != "":
		return fmt.Errorf("%w: %s", ErrRecoveryLinkInvalid, l.ErrorDescription)
	default:
		return ErrRecoveryLinkInvalid
	}
}

// ParseRecoveryLink reads the token and the error parameters from a reset
// link. The link's own error wins over a missing token.
func ParseRecoveryLink(rawURL string) (RecoveryLink, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return RecoveryLink{}, fmt.Errorf("parsing link: %w", err)
	}

	fragment, _ := url.ParseQuery(u.Fragment)
	link := RecoveryLink{
		Token:            ExtractRecoveryToken(rawURL),
		Type:             fragment.Get("type"),
		Error:            fragment.Get("error"),
		ErrorCode:        fragment.Get("error_code"),
		ErrorDescription: fragment.Get("error_description"),
	}

	if err = link.Err(); err != nil {
		return link, err
	}
	if link.Token == "" {
		return link, ErrRecoveryTokenNotFound
	}
	return link, nil
}

// ExtractRecoveryToken finds the token in a reset link: the access_token
// fragment parameter first, then the token query parameter, then anything
// that looks like either in the raw URL. It returns "" when none is found.
func ExtractRecoveryToken(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)

	if u, err := url.Parse(rawURL); err == nil {
		if fragment, err := url.ParseQuery(u.Fragment); err == nil {
			if token := fragment.Get("access_token"); token != "" {
				return token
			}
		}
		if token := u.Query().Get("token"); token != "" {
			return token
		}
	}

	if m := tokenInURL.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// DecodeTokenClaims decodes a recovery or access token without verifying
// it. Tokens whose exp passed, or that carry none, yield
// ErrRecoveryLinkExpired together with the decoded claims.
func DecodeTokenClaims(token string) (models.TokenClaims, error) {
	claims, err := utils.ParseUnverifiedClaims(token)
	if err != nil {
		return models.TokenClaims{}, err
	}
	if claims.IsExpired(now()) {
		return claims, ErrRecoveryLinkExpired
	}
	return claims, nil
}

// RecoveryEmail returns the email a reset link was issued for, for display
// next to the new-password prompt. Errors leave it empty.
func RecoveryEmail(link RecoveryLink) string {
	claims, err := DecodeTokenClaims(link.Token)
	if err != nil && !errors.Is(err, ErrRecoveryLinkExpired) {
		return ""
	}
	return claims.Email
}
