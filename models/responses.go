package models

// ErrorResponse is the only error shape the HTTP API emits.
// Details carries a provider-supplied message when one is safe to show.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the body of operations that only report success.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}

// RegisterResponse is returned by POST /api/register.
type RegisterResponse struct {
	Message          string `json:"message"`
	User             User   `json:"user"`
	ConfirmationSent string `json:"confirmationSent,omitempty"`
}

// CheckAuthResponse is returned by GET /api/check-auth.
type CheckAuthResponse struct {
	User         User         `json:"user"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	Settings     Settings     `json:"settings"`
}

// SaveSettingsResponse is returned by POST /api/save-settings.
type SaveSettingsResponse struct {
	Message string   `json:"message"`
	Data    Settings `json:"data"`
}

// BuildInfoResponse is returned by GET /api/version.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
