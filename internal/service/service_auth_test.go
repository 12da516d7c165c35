package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/postdesk/internal/adapter"
	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/mock"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

// newTestAuthSvc builds an authService on a gomock provider.
func newTestAuthSvc(t *testing.T, cfg config.App) (*authService, *mock.MockIdentityProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mock.NewMockIdentityProvider(ctrl)

	svc := NewAuthService(provider, cfg, logger.Nop()).(*authService)
	return svc, provider
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := utils.SignHS256(models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(exp)},
		Email:            "a@b.com",
	}, "test-key")
	require.NoError(t, err)
	return token
}

// ── Login / Register ─────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	want := models.Session{AccessToken: "tok", User: models.User{ID: "user-1", Email: "a@b.com"}}
	provider.EXPECT().SignIn(ctx, "a@b.com", "secret").Return(want, nil)

	got, err := svc.Login(ctx, models.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	perr := adapter.NewProviderError(adapter.ErrInvalidCredentials, http.StatusBadRequest, "Invalid login credentials")
	provider.EXPECT().SignIn(ctx, "a@b.com", "wrong").Return(models.Session{}, perr)

	_, err := svc.Login(ctx, models.Credentials{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid login credentials", adapter.ProviderMessage(err))
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.App{})

	_, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()
	req := models.SignUpRequest{Email: "a@b.com", Password: "secret1", FirstName: "Ann", LastName: "Lee"}

	provider.EXPECT().SignUp(ctx, req).Return(models.User{ID: "user-1", Email: "a@b.com"}, nil)

	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestAuthService_Register_RateLimited(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	provider.EXPECT().SignUp(ctx, gomock.Any()).Return(models.User{}, adapter.NewProviderError(adapter.ErrRateLimited, 429, "slow down"))

	_, err := svc.Register(ctx, models.SignUpRequest{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrRateLimited)
}

// ── Password reset ───────────────────────────────────────────────────────────

func TestAuthService_RequestPasswordReset(t *testing.T) {
	tests := []struct {
		name    string
		check   bool
		email   string
		setup   func(p *mock.MockIdentityProvider)
		wantErr error
	}{
		{
			name:    "empty email",
			email:   "  ",
			setup:   func(p *mock.MockIdentityProvider) {},
			wantErr: ErrEmailRequired,
		},
		{
			name:  "check disabled sends without lookup",
			email: "nobody@b.com",
			setup: func(p *mock.MockIdentityProvider) {
				p.EXPECT().SendPasswordReset(gomock.Any(), "nobody@b.com").Return(nil)
			},
		},
		{
			name:  "check enabled and user missing",
			check: true,
			email: "nobody@b.com",
			setup: func(p *mock.MockIdentityProvider) {
				p.EXPECT().FindUserByEmail(gomock.Any(), "nobody@b.com").Return(models.User{}, adapter.NewProviderError(adapter.ErrNotFound, 404, "user not found"))
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:  "check enabled and user present",
			check: true,
			email: "a@b.com",
			setup: func(p *mock.MockIdentityProvider) {
				gomock.InOrder(
					p.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(models.User{ID: "user-1"}, nil),
					p.EXPECT().SendPasswordReset(gomock.Any(), "a@b.com").Return(nil),
				)
			},
		},
		{
			name:  "rate limited",
			email: "a@b.com",
			setup: func(p *mock.MockIdentityProvider) {
				p.EXPECT().SendPasswordReset(gomock.Any(), "a@b.com").Return(adapter.NewProviderError(adapter.ErrRateLimited, 429, "email rate limit exceeded"))
			},
			wantErr: ErrRateLimited,
		},
		{
			name:  "provider down",
			email: "a@b.com",
			setup: func(p *mock.MockIdentityProvider) {
				p.EXPECT().SendPasswordReset(gomock.Any(), "a@b.com").Return(adapter.NewProviderError(adapter.ErrUnavailable, 0, "connection refused"))
			},
			wantErr: ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, provider := newTestAuthSvc(t, config.App{ResetCheckUserExists: tt.check})
			tt.setup(provider)

			err := svc.RequestPasswordReset(context.Background(), tt.email)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	gomock.InOrder(
		provider.EXPECT().GetUser(ctx, "recovery").Return(models.User{ID: "user-1"}, nil),
		provider.EXPECT().UpdateUserByID(ctx, "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, update models.AdminUserUpdate) (models.User, error) {
				require.NotNil(t, update.Password)
				assert.Equal(t, "new-secret", *update.Password)
				assert.Nil(t, update.Email)
				return models.User{ID: "user-1"}, nil
			}),
	)

	require.NoError(t, svc.ResetPassword(ctx, "recovery", "new-secret"))
}

func TestAuthService_ResetPassword_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.App{})
		assert.ErrorIs(t, svc.ResetPassword(context.Background(), "", "x"), ErrResetTokenRequired)
	})

	t.Run("missing password", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.App{})
		assert.ErrorIs(t, svc.ResetPassword(context.Background(), "tok", ""), ErrPasswordRequired)
	})

	t.Run("token rejected", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		provider.EXPECT().GetUser(gomock.Any(), "bad").Return(models.User{}, adapter.NewProviderError(adapter.ErrInvalidToken, 401, "invalid JWT"))

		err := svc.ResetPassword(context.Background(), "bad", "new-secret")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
		assert.Equal(t, "invalid JWT", adapter.ProviderMessage(err))
	})

	t.Run("admin update fails", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		provider.EXPECT().GetUser(gomock.Any(), "tok").Return(models.User{ID: "user-1"}, nil)
		provider.EXPECT().UpdateUserByID(gomock.Any(), "user-1", gomock.Any()).Return(models.User{}, adapter.NewProviderError(adapter.ErrBadRequest, 422, "Password should be at least 6 characters"))

		err := svc.ResetPassword(context.Background(), "tok", "123")
		assert.ErrorIs(t, err, ErrPasswordUpdateFailed)
		assert.Equal(t, "Password should be at least 6 characters", adapter.ProviderMessage(err))
	})
}

// ── Authenticate / Logout ────────────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.App{})
		_, err := svc.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("expired token never reaches the provider", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.App{})
		token := signedToken(t, time.Now().Add(-time.Minute))

		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenIsExpired)
	})

	t.Run("valid token", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		token := signedToken(t, time.Now().Add(time.Hour))
		provider.EXPECT().GetUser(gomock.Any(), token).Return(models.User{ID: "user-1", Email: "a@b.com"}, nil)

		user, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
	})

	t.Run("opaque token is checked by provider", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		provider.EXPECT().GetUser(gomock.Any(), "opaque").Return(models.User{}, adapter.NewProviderError(adapter.ErrInvalidToken, 401, "bad jwt"))

		_, err := svc.Authenticate(context.Background(), "opaque")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("provider unreachable", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		provider.EXPECT().GetUser(gomock.Any(), "opaque").Return(models.User{}, adapter.NewProviderError(adapter.ErrUnavailable, 0, "dial tcp"))

		_, err := svc.Authenticate(context.Background(), "opaque")
		assert.ErrorIs(t, err, ErrProviderUnavailable)
		assert.False(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestAuthService_Authenticate_ProviderFailureClasses(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant error
	}{
		{name: "token rejected", err: adapter.NewProviderError(adapter.ErrInvalidToken, 403, "bad jwt"), want: ErrInvalidToken},
		{name: "malformed token", err: adapter.NewProviderError(adapter.ErrBadRequest, 400, "bad request"), want: ErrInvalidToken},
		{name: "user gone", err: adapter.NewProviderError(adapter.ErrNotFound, 404, "user not found"), want: ErrInvalidToken},
		{name: "rate limited", err: adapter.NewProviderError(adapter.ErrRateLimited, 429, "slow down"), want: ErrRateLimited, notWant: ErrInvalidToken},
		{name: "request cancelled", err: fmt.Errorf("get user: %w", context.Canceled), want: ErrProviderUnavailable, notWant: ErrInvalidToken},
		{name: "deadline exceeded", err: fmt.Errorf("get user: %w", context.DeadlineExceeded), want: ErrProviderUnavailable, notWant: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, provider := newTestAuthSvc(t, config.App{})
			provider.EXPECT().GetUser(gomock.Any(), "opaque").Return(models.User{}, tt.err)

			_, err := svc.Authenticate(context.Background(), "opaque")
			assert.ErrorIs(t, err, tt.want)
			if tt.notWant != nil {
				assert.NotErrorIs(t, err, tt.notWant)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	provider.EXPECT().SignOut(ctx, "tok").Return(nil)
	assert.NoError(t, svc.Logout(ctx, "tok"))

	provider.EXPECT().SignOut(ctx, "revoked").Return(adapter.NewProviderError(adapter.ErrInvalidToken, 401, "session not found"))
	assert.NoError(t, svc.Logout(ctx, "revoked"))

	provider.EXPECT().SignOut(ctx, "tok").Return(adapter.NewProviderError(adapter.ErrUnavailable, 503, "down"))
	assert.ErrorIs(t, svc.Logout(ctx, "tok"), ErrProviderUnavailable)

	assert.ErrorIs(t, svc.Logout(ctx, ""), ErrNoToken)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	provider.EXPECT().VerifyEmail(ctx, "hash").Return(nil)
	assert.NoError(t, svc.VerifyEmail(ctx, "hash"))

	provider.EXPECT().VerifyEmail(ctx, "stale").Return(adapter.NewProviderError(adapter.ErrInvalidToken, 403, "expired"))
	assert.ErrorIs(t, svc.VerifyEmail(ctx, "stale"), ErrVerificationFailed)

	assert.ErrorIs(t, svc.VerifyEmail(ctx, ""), ErrInvalidDataProvided)
}

// ── Account management ───────────────────────────────────────────────────────

func TestAuthService_UpdateProfile_MergesMetadata(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	user := models.User{ID: "user-1", UserMetadata: models.UserMetadata{"firstName": "Old", "plan": "pro"}}

	provider.EXPECT().UpdateUserByID(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, update models.AdminUserUpdate) (models.User, error) {
			assert.Equal(t, "New", update.UserMetadata.FirstName())
			assert.Equal(t, "Name", update.UserMetadata.LastName())
			assert.Equal(t, "pro", update.UserMetadata["plan"])
			return models.User{ID: "user-1", UserMetadata: update.UserMetadata}, nil
		})

	updated, err := svc.UpdateProfile(context.Background(), user, " New ", "Name")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.UserMetadata.FirstName())
	// caller's map is untouched
	assert.Equal(t, "Old", user.UserMetadata.FirstName())
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := models.User{ID: "user-1", Email: "a@b.com"}

	t.Run("success revokes the re-auth session", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		gomock.InOrder(
			provider.EXPECT().SignIn(gomock.Any(), "a@b.com", "old").Return(models.Session{AccessToken: "tmp"}, nil),
			provider.EXPECT().SignOut(gomock.Any(), "tmp").Return(nil),
			provider.EXPECT().UpdateUserByID(gomock.Any(), "user-1", gomock.Any()).Return(user, nil),
		)

		assert.NoError(t, svc.ChangePassword(context.Background(), user, "old", "new-secret"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, provider := newTestAuthSvc(t, config.App{})
		provider.EXPECT().SignIn(gomock.Any(), "a@b.com", "bad").Return(models.Session{}, adapter.NewProviderError(adapter.ErrInvalidCredentials, 400, "Invalid login credentials"))

		assert.ErrorIs(t, svc.ChangePassword(context.Background(), user, "bad", "new-secret"), ErrWrongCurrentPassword)
	})

	t.Run("empty passwords", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.App{})
		assert.ErrorIs(t, svc.ChangePassword(context.Background(), user, "", "x"), ErrPasswordRequired)
	})
}

func TestAuthService_UpdateEmail(t *testing.T) {
	svc, provider := newTestAuthSvc(t, config.App{})
	user := models.User{ID: "user-1"}

	provider.EXPECT().UpdateUserByID(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, update models.AdminUserUpdate) (models.User, error) {
			require.NotNil(t, update.Email)
			return models.User{ID: "user-1", Email: *update.Email}, nil
		})

	updated, err := svc.UpdateEmail(context.Background(), user, " new@b.com ")
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", updated.Email)

	_, err = svc.UpdateEmail(context.Background(), user, "")
	assert.ErrorIs(t, err, ErrEmailRequired)
}
