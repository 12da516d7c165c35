package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/crypto"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/mock"
	"github.com/MKhiriev/postdesk/internal/service"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

// testDeps are the mocks behind a handler built by newTestHandler.
type testDeps struct {
	provider *mock.MockIdentityProvider
	settings *mock.MockSettingsRepository
	posts    *mock.MockPostRepository
}

var testUser = models.User{ID: "user-1", Email: "a@b.com", UserMetadata: models.UserMetadata{"firstName": "Ann"}}

// newTestHandler wires real services on top of gomock provider and
// repositories.
func newTestHandler(t *testing.T, cfg config.App) (http.Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		provider: mock.NewMockIdentityProvider(ctrl),
		settings: mock.NewMockSettingsRepository(ctrl),
		posts:    mock.NewMockPostRepository(ctrl),
	}
	sealer, err := crypto.NewSealer("")
	require.NoError(t, err)

	services := &service.Services{
		AuthService:     service.NewAuthService(deps.provider, cfg, logger.Nop()),
		SettingsService: service.NewSettingsService(deps.settings, sealer, logger.Nop()),
		PostService:     service.NewPostService(deps.posts, logger.Nop()),
		AppInfoService:  service.NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop()),
	}

	if cfg.SessionMaxAge == 0 {
		cfg.SessionMaxAge = 24 * time.Hour
	}
	return NewHandler(services, cfg, logger.Nop()).Init(), deps
}

// validToken mints a token whose exp lies an hour ahead.
func validToken(t *testing.T) string {
	t.Helper()
	return tokenExpiringAt(t, time.Now().Add(time.Hour))
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := utils.SignHS256(models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: testUser.ID, ExpiresAt: jwt.NewNumericDate(exp)},
		Email:            testUser.Email,
	}, "handler-test-key")
	require.NoError(t, err)
	return token
}

// expectAuthenticated makes the provider accept token once.
func (d testDeps) expectAuthenticated(token string) {
	d.provider.EXPECT().GetUser(gomock.Any(), token).Return(testUser, nil)
}

type requestOption func(r *http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(token string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token}) }
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
