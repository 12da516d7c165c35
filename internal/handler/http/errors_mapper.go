package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/postdesk/internal/adapter"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/service"
	"github.com/MKhiriev/postdesk/internal/utils"
)

// providerText says where the identity provider's own message goes.
type providerText int

const (
	providerTextNone providerText = iota
	// providerTextAsError replaces the error message with the provider's.
	providerTextAsError
	// providerTextAsDetails puts the provider's message into "details".
	providerTextAsDetails
)

type errorMapping struct {
	target  error
	status  int
	message string
	text    providerText
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{service.ErrNoToken, http.StatusUnauthorized, "No token provided", providerTextNone},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, "token is expired", providerTextNone},
	{service.ErrInvalidToken, http.StatusUnauthorized, "Invalid token", providerTextNone},

	{service.ErrInvalidCredentials, http.StatusBadRequest, "Invalid login credentials", providerTextAsError},
	{service.ErrWrongCurrentPassword, http.StatusBadRequest, "Current password is incorrect", providerTextNone},
	{service.ErrEmailRequired, http.StatusBadRequest, "Email is required", providerTextNone},
	{service.ErrResetTokenRequired, http.StatusBadRequest, "Token is required for password reset", providerTextNone},
	{service.ErrPasswordRequired, http.StatusBadRequest, "Password is required", providerTextNone},
	{service.ErrInvalidResetToken, http.StatusBadRequest, "Invalid reset token", providerTextAsDetails},
	{service.ErrPasswordUpdateFailed, http.StatusBadRequest, "Failed to update password", providerTextAsDetails},
	{service.ErrVerificationFailed, http.StatusBadRequest, "Email verification failed", providerTextAsDetails},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "Invalid data provided", providerTextAsError},

	{service.ErrUserNotFound, http.StatusNotFound, "Unfortunately, we could not find an account associated with this email address.", providerTextNone},
	{service.ErrPostNotFound, http.StatusNotFound, "Post not found or access denied", providerTextNone},

	{service.ErrRateLimited, http.StatusTooManyRequests, "Too many requests. Please try again later.", providerTextAsDetails},

	{service.ErrProviderUnavailable, http.StatusInternalServerError, msgInternalServerError, providerTextNone},
	{service.ErrSettingsUnavailable, http.StatusInternalServerError, msgInternalServerError, providerTextNone},
	{service.ErrPostsUnavailable, http.StatusInternalServerError, msgInternalServerError, providerTextNone},
}

func lookupError(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

func statusFromError(err error) int {
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// writeServiceError translates err into the API error shape. Server errors
// use fallback as their message and never carry details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromRequest(r)

	m, ok := lookupError(err)
	if !ok || m.status >= http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
		utils.WriteError(w, http.StatusInternalServerError, fallback, "")
		return
	}

	log.Debug().Err(err).Int("status", m.status).Str("path", r.URL.Path).Msg("request rejected")

	message, details := m.message, ""
	if providerMessage := adapter.ProviderMessage(err); providerMessage != "" {
		switch m.text {
		case providerTextAsError:
			message = providerMessage
		case providerTextAsDetails:
			details = providerMessage
		}
	}

	utils.WriteError(w, m.status, message, details)
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, msgNotFound, "")
}
