package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/MKhiriev/postdesk/internal/adapter"
	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

// authService is the concrete implementation of AuthService.
// It holds no session state: every call is answered by the identity
// provider.
type authService struct {
	provider adapter.IdentityProvider

	// checkUserExists enables the admin lookup before a reset email is
	// sent, which lets the API answer 404 for unknown addresses.
	checkUserExists bool

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService on top of provider.
func NewAuthService(provider adapter.IdentityProvider, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		provider:        provider,
		checkUserExists: cfg.ResetCheckUserExists,
		now:             time.Now,
		logger:          logger,
	}
}

// Login exchanges credentials for a session.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	if credentials.Email == "" || credentials.Password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	session, err := a.provider.SignIn(ctx, credentials.Email, credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("email", credentials.Email).Msg("sign in failed")
		return models.Session{}, providerError(err)
	}

	log.Info().Str("func", "authService.Login").Str("user_id", session.User.ID).Msg("user signed in")
	return session, nil
}

// Register creates an account. First and last name go to user metadata.
func (a *authService) Register(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.provider.SignUp(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Str("email", req.Email).Msg("sign up failed")
		return models.User{}, providerError(err)
	}

	log.Info().Str("func", "authService.Register").Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// RequestPasswordReset sends a recovery email.
//
// With the existence check disabled the provider's silent no-op for unknown
// addresses is accepted and the caller cannot tell the two cases apart.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	if a.checkUserExists {
		if _, err := a.provider.FindUserByEmail(ctx, email); err != nil {
			if errors.Is(err, adapter.ErrNotFound) {
				log.Info().Str("func", "authService.RequestPasswordReset").Msg("reset requested for unknown email")
				return ErrUserNotFound
			}
			log.Err(err).Str("func", "authService.RequestPasswordReset").Msg("user lookup failed")
			return providerError(err)
		}
	}

	if err := a.provider.SendPasswordReset(ctx, email); err != nil {
		log.Err(err).Str("func", "authService.RequestPasswordReset").Msg("sending reset email failed")
		return providerError(err)
	}

	return nil
}

// ResetPassword resolves the recovery token to its user and then sets the
// password with the elevated credential. The token itself stays valid until
// the provider expires it.
func (a *authService) ResetPassword(ctx context.Context, token, password string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrResetTokenRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}

	user, err := a.provider.GetUser(ctx, token)
	if err != nil {
		log.Err(err).Str("func", "authService.ResetPassword").Msg("recovery token rejected")
		return fmt.Errorf("%w: %w", ErrInvalidResetToken, err)
	}

	if _, err = a.provider.UpdateUserByID(ctx, user.ID, models.AdminUserUpdate{Password: &password}); err != nil {
		log.Err(err).Str("func", "authService.ResetPassword").Str("user_id", user.ID).Msg("password update failed")
		return fmt.Errorf("%w: %w", ErrPasswordUpdateFailed, err)
	}

	log.Info().Str("func", "authService.ResetPassword").Str("user_id", user.ID).Msg("password reset")
	return nil
}

// Authenticate resolves token to a user. Tokens whose unverified exp lies in
// the past are rejected locally; every other token is checked by the
// provider. Only a provider rejection of the token yields ErrInvalidToken;
// rate limits, cancelled requests and transport failures do not.
func (a *authService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrNoToken
	}
	if utils.IsTokenExpired(token, a.now()) {
		return models.User{}, ErrTokenIsExpired
	}

	user, err := a.provider.GetUser(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, adapter.ErrInvalidToken),
			errors.Is(err, adapter.ErrBadRequest),
			errors.Is(err, adapter.ErrNotFound):
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		case errors.Is(err, adapter.ErrRateLimited):
			return models.User{}, providerError(err)
		}
		logger.FromContext(ctx).Err(err).Str("func", "authService.Authenticate").Msg("identity provider unreachable")
		return models.User{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	return user, nil
}

// Logout revokes the token's session. A token the provider no longer
// accepts is already logged out.
func (a *authService) Logout(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrNoToken
	}

	if err := a.provider.SignOut(ctx, token); err != nil {
		if errors.Is(err, adapter.ErrInvalidToken) {
			log.Debug().Str("func", "authService.Logout").Msg("session already revoked")
			return nil
		}
		log.Err(err).Str("func", "authService.Logout").Msg("sign out failed")
		return providerError(err)
	}

	return nil
}

// VerifyEmail confirms a sign-up with the token hash from the email link.
func (a *authService) VerifyEmail(ctx context.Context, tokenHash string) error {
	if tokenHash == "" {
		return ErrInvalidDataProvided
	}

	if err := a.provider.VerifyEmail(ctx, tokenHash); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.VerifyEmail").Msg("email verification failed")
		return fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	return nil
}

func (a *authService) UpdateProfile(ctx context.Context, user models.User, firstName, lastName string) (models.User, error) {
	metadata := models.UserMetadata{}
	maps.Copy(metadata, user.UserMetadata)
	metadata["firstName"] = strings.TrimSpace(firstName)
	metadata["lastName"] = strings.TrimSpace(lastName)

	updated, err := a.provider.UpdateUserByID(ctx, user.ID, models.AdminUserUpdate{UserMetadata: metadata})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.UpdateProfile").Str("user_id", user.ID).Msg("profile update failed")
		return models.User{}, providerError(err)
	}

	return updated, nil
}

// ChangePassword re-authenticates with currentPassword before setting
// newPassword. The session created by the re-authentication is revoked
// right away.
func (a *authService) ChangePassword(ctx context.Context, user models.User, currentPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if currentPassword == "" || newPassword == "" {
		return ErrPasswordRequired
	}

	session, err := a.provider.SignIn(ctx, user.Email, currentPassword)
	if err != nil {
		if errors.Is(err, adapter.ErrInvalidCredentials) || errors.Is(err, adapter.ErrBadRequest) {
			return ErrWrongCurrentPassword
		}
		log.Err(err).Str("func", "authService.ChangePassword").Msg("re-authentication failed")
		return providerError(err)
	}
	if err = a.provider.SignOut(ctx, session.AccessToken); err != nil {
		log.Warn().Err(err).Str("func", "authService.ChangePassword").Msg("could not revoke re-authentication session")
	}

	if _, err = a.provider.UpdateUserByID(ctx, user.ID, models.AdminUserUpdate{Password: &newPassword}); err != nil {
		log.Err(err).Str("func", "authService.ChangePassword").Str("user_id", user.ID).Msg("password update failed")
		return fmt.Errorf("%w: %w", ErrPasswordUpdateFailed, err)
	}

	log.Info().Str("func", "authService.ChangePassword").Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (a *authService) UpdateEmail(ctx context.Context, user models.User, email string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, ErrEmailRequired
	}

	updated, err := a.provider.UpdateUserByID(ctx, user.ID, models.AdminUserUpdate{Email: &email})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.UpdateEmail").Str("user_id", user.ID).Msg("email update failed")
		return models.User{}, providerError(err)
	}

	return updated, nil
}

// providerError maps an adapter failure to the service sentinel of the same
// class. The original error stays in the chain so the provider's message
// can still be read with [adapter.ProviderMessage].
func providerError(err error) error {
	switch {
	case errors.Is(err, adapter.ErrInvalidCredentials):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case errors.Is(err, adapter.ErrInvalidToken):
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, adapter.ErrRateLimited):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
}
