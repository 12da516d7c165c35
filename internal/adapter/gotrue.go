package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathToken      = "/auth/v1/token"
	pathSignUp     = "/auth/v1/signup"
	pathRecover    = "/auth/v1/recover"
	pathUser       = "/auth/v1/user"
	pathLogout     = "/auth/v1/logout"
	pathVerify     = "/auth/v1/verify"
	pathAdminUsers = "/auth/v1/admin/users"
	pathHealth     = "/auth/v1/health"

	adminUsersPerPage = 50
)

type goTrueAdapter struct {
	anon    *utils.HTTPClient
	service *utils.HTTPClient

	loginRedirect string
	resetRedirect string

	logger *logger.Logger
}

// NewGoTrueAdapter builds an [IdentityProvider] for the backend at cfg.URL.
// publicURL is the externally visible base of this application; it is used
// for the redirect links embedded in confirmation and recovery emails.
func NewGoTrueAdapter(cfg config.Identity, publicURL string, log *logger.Logger) (IdentityProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity url: %w", err)
	}
	if cfg.AnonKey == "" || cfg.ServiceRoleKey == "" {
		return nil, errors.New("identity api keys are required")
	}

	anon := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	anon.SetHeader("apikey", cfg.AnonKey).SetAuthToken(cfg.AnonKey)

	service := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	service.SetHeader("apikey", cfg.ServiceRoleKey).SetAuthToken(cfg.ServiceRoleKey)

	publicURL = strings.TrimRight(publicURL, "/")

	return &goTrueAdapter{
		anon:          anon,
		service:       service,
		loginRedirect: publicURL + "/login",
		resetRedirect: publicURL + "/reset-password",
		logger:        log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SignIn implements [IdentityProvider] with the password grant.
func (g *goTrueAdapter) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session

	resp, err := g.anon.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		Post(pathToken)
	if err = g.check(ctx, "sign in", resp, err); err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) && perr.Status == http.StatusBadRequest {
			perr.kind = ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	return session, nil
}

type signUpBody struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

// signUpResult covers both answers of the signup endpoint: a bare user when
// email confirmation is on, or a full session when it is off.
type signUpResult struct {
	models.User
	AccessToken string       `json:"access_token"`
	SessionUser *models.User `json:"user"`
}

// SignUp implements [IdentityProvider].
func (g *goTrueAdapter) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	body := signUpBody{Email: req.Email, Password: req.Password}
	if req.FirstName != "" || req.LastName != "" {
		body.Data = map[string]string{"firstName": req.FirstName, "lastName": req.LastName}
	}

	var result signUpResult
	resp, err := g.anon.R().
		SetContext(ctx).
		SetQueryParam("redirect_to", g.loginRedirect).
		SetBody(body).
		SetResult(&result).
		Post(pathSignUp)
	if err = g.check(ctx, "sign up", resp, err); err != nil {
		return models.User{}, err
	}

	if result.AccessToken != "" && result.SessionUser != nil {
		return *result.SessionUser, nil
	}
	return result.User, nil
}

// SendPasswordReset implements [IdentityProvider].
func (g *goTrueAdapter) SendPasswordReset(ctx context.Context, email string) error {
	resp, err := g.anon.R().
		SetContext(ctx).
		SetQueryParam("redirect_to", g.resetRedirect).
		SetBody(map[string]string{"email": email}).
		Post(pathRecover)

	return g.check(ctx, "send password reset", resp, err)
}

// GetUser implements [IdentityProvider]. The token replaces the anon key in
// the Authorization header.
func (g *goTrueAdapter) GetUser(ctx context.Context, token string) (models.User, error) {
	var user models.User

	resp, err := g.anon.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		Get(pathUser)
	if err = g.check(ctx, "get user", resp, err); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// SignOut implements [IdentityProvider]. Only the token's own session is
// revoked.
func (g *goTrueAdapter) SignOut(ctx context.Context, token string) error {
	resp, err := g.anon.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("scope", "local").
		Post(pathLogout)

	return g.check(ctx, "sign out", resp, err)
}

// VerifyEmail implements [IdentityProvider].
func (g *goTrueAdapter) VerifyEmail(ctx context.Context, tokenHash string) error {
	resp, err := g.anon.R().
		SetContext(ctx).
		SetBody(map[string]string{"type": "email", "token_hash": tokenHash}).
		Post(pathVerify)

	return g.check(ctx, "verify email", resp, err)
}

// UpdateUserByID implements [IdentityProvider] using the service-role handle.
func (g *goTrueAdapter) UpdateUserByID(ctx context.Context, id string, update models.AdminUserUpdate) (models.User, error) {
	var user models.User

	resp, err := g.service.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(update).
		SetResult(&user).
		Put(pathAdminUsers + "/{id}")
	if err = g.check(ctx, "update user", resp, err); err != nil {
		return models.User{}, err
	}

	return user, nil
}

type adminUsersPage struct {
	Users []models.User `json:"users"`
}

// FindUserByEmail implements [IdentityProvider]. Pages are fetched until the
// user is found, a short page signals the end of the list or ctx is done.
// Emails are compared case-insensitively.
func (g *goTrueAdapter) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	for page := 1; ; page++ {
		var result adminUsersPage

		resp, err := g.service.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"page":     strconv.Itoa(page),
				"per_page": strconv.Itoa(adminUsersPerPage),
			}).
			SetResult(&result).
			Get(pathAdminUsers)
		if err = g.check(ctx, "list users", resp, err); err != nil {
			return models.User{}, err
		}

		for _, u := range result.Users {
			if strings.EqualFold(u.Email, email) {
				return u, nil
			}
		}

		if len(result.Users) < adminUsersPerPage {
			break
		}
	}

	return models.User{}, NewProviderError(ErrNotFound, http.StatusNotFound, "user not found")
}

// Health implements [IdentityProvider].
func (g *goTrueAdapter) Health(ctx context.Context) error {
	resp, err := g.anon.R().SetContext(ctx).Get(pathHealth)
	return g.check(ctx, "health", resp, err)
}

// check turns a transport error or a non-2xx answer into a ProviderError and
// logs it at debug level.
func (g *goTrueAdapter) check(ctx context.Context, op string, resp *resty.Response, err error) error {
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		g.logger.Debug().Err(err).Str("op", op).Msg("identity provider unreachable")
		return fmt.Errorf("%s: %w", op, unavailable(err))
	}

	if perr := mapHTTPError(resp); perr != nil {
		g.logger.Debug().
			Str("op", op).
			Int("status", resp.StatusCode()).
			Str("error", perr.Error()).
			Msg("identity provider rejected request")
		return fmt.Errorf("%s: %w", op, perr)
	}

	return nil
}
