package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, middleware.RealIP, h.withTraceID, h.withLogging, withGZip)

	// page shells
	router.Get("/", h.page("index.html"))
	router.Get("/login", h.loginPage)
	router.Get("/dashboard", h.page("dashboard.html"))
	router.Get("/reset-password", h.page("reset-password.html"))
	router.Handle("/static/*", staticFiles())

	router.Route("/api", func(api chi.Router) {
		// routes without authorization
		api.Group(func(r chi.Router) {
			r.Post("/login", h.login)
			r.Post("/register", h.register)
			r.Post("/reset-password", h.resetPassword)
			r.Post("/update-password", h.updatePassword)
			r.Get("/version", h.getServerVersion)
		})

		// routes with authorization
		api.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/check-auth", h.checkAuth)
			r.Post("/logout", h.logout)

			r.Get("/get-settings", h.getSettings)
			r.Post("/save-settings", h.saveSettings)

			r.Get("/posts", h.listPosts)
			r.Delete("/posts/{id}", h.deletePost)

			r.Post("/update-profile", h.updateProfile)
			r.Post("/change-password", h.changePassword)
			r.Post("/update-email", h.updateEmail)
		})

		api.NotFound(apiNotFound)
		api.MethodNotAllowed(apiNotFound)
	})

	router.NotFound(h.fallback)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
