package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/web"
)

// page serves one of the embedded HTML shells.
func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, web.Files, name)
	}
}

// staticFiles serves embedded assets. Directories are answered with 404
// instead of a listing.
func staticFiles() http.Handler {
	files := http.FileServerFS(web.Files)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if info, err := fs.Stat(web.Files, name); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// loginPage serves the login shell. When the request carries the
// access_token parameter of an email confirmation link, the token hash is
// verified first and the browser is redirected to "/" with the outcome.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	tokenHash := r.URL.Query().Get("access_token")
	if tokenHash == "" {
		http.ServeFileFS(w, r, web.Files, "login.html")
		return
	}

	if err := h.services.AuthService.VerifyEmail(r.Context(), tokenHash); err != nil {
		logger.FromRequest(r).Err(err).Msg("email confirmation failed")
		http.Redirect(w, r, "/?error=verification_failed", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/?verified=true", http.StatusFound)
}

// fallback redirects unknown page paths: to /dashboard for requests with a
// valid session, to / otherwise.
func (h *Handler) fallback(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if token := tokenFromRequest(r); token != "" {
		if _, err := h.services.AuthService.Authenticate(r.Context(), token); err == nil {
			target = "/dashboard"
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}

