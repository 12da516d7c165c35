package http

import (
	"net/http"

	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

type saveSettingsRequest struct {
	WordpressAPIKey string `json:"wordpress_api_key"`
	WebflowAPIKey   string `json:"webflow_api_key"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	settings, err := h.services.SettingsService.Get(ctx, user.ID)
	if err != nil {
		writeServiceError(w, r, err, msgFetchSettingsFailed)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	var req saveSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	saved, err := h.services.SettingsService.Save(ctx, models.Settings{
		UserID:          user.ID,
		WordpressAPIKey: req.WordpressAPIKey,
		WebflowAPIKey:   req.WebflowAPIKey,
	})
	if err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	utils.WriteJSON(w, models.SaveSettingsResponse{Message: msgSettingsSaved, Data: saved}, http.StatusOK)
}
