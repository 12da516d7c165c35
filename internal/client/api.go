package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

type httpAPI struct {
	http   *utils.HTTPClient
	logger *logger.Logger
}

// NewAPI returns an [API] talking to the server at cfg.BaseURL.
func NewAPI(cfg config.Client, log *logger.Logger) API {
	return &httpAPI{
		http:   utils.NewHTTPClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.RequestTimeout),
		logger: log,
	}
}

func (a *httpAPI) request(ctx context.Context) *resty.Request {
	return a.http.R().
		SetContext(ctx).
		SetError(&models.ErrorResponse{})
}

func (a *httpAPI) authorized(ctx context.Context, session Session) (*resty.Request, error) {
	if session.AccessToken == "" {
		return nil, ErrNotSignedIn
	}
	return a.request(ctx).SetAuthToken(session.AccessToken), nil
}

func (a *httpAPI) Login(ctx context.Context, email, password string) (Session, error) {
	var result models.LoginResponse
	resp, err := a.request(ctx).
		SetBody(models.Credentials{Email: email, Password: password}).
		SetResult(&result).
		Post("/api/login")
	if err = a.check("login", resp, err); err != nil {
		return Session{}, err
	}
	return NewSession(result.Session), nil
}

func (a *httpAPI) Register(ctx context.Context, req models.SignUpRequest) (models.RegisterResponse, error) {
	var result models.RegisterResponse
	resp, err := a.request(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/register")
	if err = a.check("register", resp, err); err != nil {
		return models.RegisterResponse{}, err
	}
	return result, nil
}

func (a *httpAPI) Logout(ctx context.Context, session Session) error {
	req, err := a.authorized(ctx, session)
	if err != nil {
		return err
	}
	resp, err := req.Post("/api/logout")
	return a.check("logout", resp, err)
}

func (a *httpAPI) CheckAuth(ctx context.Context, session Session) (models.CheckAuthResponse, error) {
	req, err := a.authorized(ctx, session)
	if err != nil {
		return models.CheckAuthResponse{}, err
	}

	var result models.CheckAuthResponse
	resp, err := req.SetResult(&result).Get("/api/check-auth")
	if err = a.check("check auth", resp, err); err != nil {
		return models.CheckAuthResponse{}, err
	}
	return result, nil
}

// RequestPasswordReset asks the server to email a reset link. Rate-limit
// answers become ErrTooManyResetAttempts.
func (a *httpAPI) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := a.request(ctx).
		SetBody(map[string]string{"email": email}).
		Post("/api/reset-password")
	err = a.check("request password reset", resp, err)

	var apiErr *APIError
	if errors.As(err, &apiErr) && isRateLimit(apiErr) {
		return fmt.Errorf("%w: %w", ErrTooManyResetAttempts, err)
	}
	return err
}

func isRateLimit(e *APIError) bool {
	return e.Status == http.StatusTooManyRequests ||
		strings.Contains(strings.ToLower(e.Message), "rate limit") ||
		strings.Contains(strings.ToLower(e.Details), "rate limit")
}

// ResetPassword completes a reset with the token from link. Mismatched
// passwords, link errors and expired tokens are reported without contacting
// the server.
func (a *httpAPI) ResetPassword(ctx context.Context, link, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordsDoNotMatch
	}
	if newPassword == "" {
		return ErrPasswordRequired
	}

	recovery, err := ParseRecoveryLink(link)
	if err != nil {
		return err
	}
	if _, err = DecodeTokenClaims(recovery.Token); errors.Is(err, ErrRecoveryLinkExpired) {
		return err
	}

	resp, err := a.request(ctx).
		SetBody(map[string]string{"password": newPassword, "token": recovery.Token}).
		Post("/api/update-password")
	return a.check("reset password", resp, err)
}

func (a *httpAPI) GetSettings(ctx context.Context, session Session) (models.Settings, error) {
	req, err := a.authorized(ctx, session)
	if err != nil {
		return models.Settings{}, err
	}

	var result models.Settings
	resp, err := req.SetResult(&result).Get("/api/get-settings")
	if err = a.check("get settings", resp, err); err != nil {
		return models.Settings{}, err
	}
	return result, nil
}

func (a *httpAPI) SaveSettings(ctx context.Context, session Session, wordpressKey, webflowKey string) (models.Settings, error) {
	req, err := a.authorized(ctx, session)
	if err != nil {
		return models.Settings{}, err
	}

	var result models.SaveSettingsResponse
	resp, err := req.
		SetBody(map[string]string{"wordpress_api_key": wordpressKey, "webflow_api_key": webflowKey}).
		SetResult(&result).
		Post("/api/save-settings")
	if err = a.check("save settings", resp, err); err != nil {
		return models.Settings{}, err
	}
	return result.Data, nil
}

func (a *httpAPI) ListPosts(ctx context.Context, session Session, page, perPage int) (models.PostList, error) {
	req, err := a.authorized(ctx, session)
	if err != nil {
		return models.PostList{}, err
	}
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		req.SetQueryParam("per_page", strconv.Itoa(perPage))
	}

	var result models.PostList
	resp, err := req.SetResult(&result).Get("/api/posts")
	if err = a.check("list posts", resp, err); err != nil {
		return models.PostList{}, err
	}
	return result, nil
}

func (a *httpAPI) DeletePost(ctx context.Context, session Session, postID string) error {
	req, err := a.authorized(ctx, session)
	if err != nil {
		return err
	}
	resp, err := req.SetPathParam("id", postID).Delete("/api/posts/{id}")
	return a.check("delete post", resp, err)
}

func (a *httpAPI) Version(ctx context.Context) (models.BuildInfoResponse, error) {
	var result models.BuildInfoResponse
	resp, err := a.request(ctx).SetResult(&result).Get("/api/version")
	if err = a.check("version", resp, err); err != nil {
		return models.BuildInfoResponse{}, err
	}
	return result, nil
}

// check turns a transport error or an error answer into an error. Error
// answers become *APIError.
func (a *httpAPI) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
	if body, ok := resp.Error().(*models.ErrorResponse); ok && body.Error != "" {
		apiErr.Message, apiErr.Details = body.Error, body.Details
	}

	a.logger.Debug().Str("op", op).Int("status", apiErr.Status).Str("error", apiErr.Message).Msg("request rejected")
	return apiErr
}
