package http

import (
	"net/http"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/utils"
)

// auth resolves the request's token to a user before protected handlers
// run.
//
// The token is taken from "Authorization: Bearer <token>" first and from the
// access_token cookie second. Requests are rejected with 401 when no token
// is present, when the token's exp claim already passed, or when the
// identity provider does not accept the token. An unreachable provider
// yields 500. On success the user and the raw token are stored in the
// request context under [utils.UserCtxKey] and [utils.TokenCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		token := tokenFromRequest(r)
		user, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			log.Debug().Err(err).Msg("request not authenticated")
			writeServiceError(w, r, err, msgInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user, token)))
	})
}

// tokenFromRequest returns the bearer token or, failing that, the session
// cookie value. It returns "" when neither is present.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
