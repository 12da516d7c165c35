package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

type resetPasswordRequest struct {
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// updateEmailRequest accepts both field names used by the dashboard forms.
type updateEmailRequest struct {
	Email    string `json:"email"`
	NewEmail string `json:"newEmail"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := decodeJSON(r, &credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}
	if err := h.validate.Struct(credentials); err != nil {
		utils.WriteError(w, http.StatusBadRequest, validationMessage(err), "")
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	h.setSessionCookie(w, session.AccessToken)
	utils.WriteJSON(w, models.LoginResponse{User: session.User, Session: session}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, validationMessage(err), "")
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	resp := models.RegisterResponse{Message: msgRegistered, User: user}
	if user.ConfirmationSentAt != nil {
		resp.ConfirmationSent = user.ConfirmationSentAt.Format(time.RFC3339)
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgResetLinkSent}, http.StatusOK)
}

// updatePassword completes a reset. The recovery token comes from the body
// or, when absent there, from the Authorization header.
func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}
	if req.Token == "" {
		req.Token, _ = utils.ParseBearerToken(r.Header.Get("Authorization"))
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgPasswordUpdated}, http.StatusOK)
}

func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	settings, err := h.services.SettingsService.Get(ctx, user.ID)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("settings unavailable, answering with defaults")
		settings = models.DefaultSettings(user.ID)
	}

	utils.WriteJSON(w, models.CheckAuthResponse{
		User:         user,
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		Settings:     settings,
	}, http.StatusOK)
}

// logout revokes the session at the provider and clears the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, _ := utils.GetTokenFromContext(ctx)

	if err := h.services.AuthService.Logout(ctx, token); err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Message: msgLoggedOut}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	if _, err := h.services.AuthService.UpdateProfile(ctx, user, req.FirstName, req.LastName); err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgProfileUpdated}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, validationMessage(err), "")
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, user, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgPasswordChanged}, http.StatusOK)
}

func (h *Handler) updateEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	var req updateEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	email := req.NewEmail
	if email == "" {
		email = req.Email
	}
	if err := h.validate.Var(email, "omitempty,email"); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "email must be a valid email address", "")
		return
	}

	if _, err := h.services.AuthService.UpdateEmail(ctx, user, email); err != nil {
		writeServiceError(w, r, err, msgInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgEmailUpdated}, http.StatusOK)
}
