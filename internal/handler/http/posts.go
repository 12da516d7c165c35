package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

// listPosts answers GET /api/posts?page=&per_page=. "limit" is accepted as
// an alias of per_page. Missing or malformed values fall back to defaults.
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	query := r.URL.Query()
	perPage := query.Get("per_page")
	if perPage == "" {
		perPage = query.Get("limit")
	}

	list, err := h.services.PostService.List(ctx, models.PostPage{
		UserID:  user.ID,
		Page:    atoiOrZero(query.Get("page")),
		PerPage: atoiOrZero(perPage),
	})
	if err != nil {
		writeServiceError(w, r, err, msgFetchPostsFailed)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	if err := h.services.PostService.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, msgDeletePostFailed)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgPostDeleted}, http.StatusOK)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
