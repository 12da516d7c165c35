package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/postdesk/internal/crypto"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/store"
	"github.com/MKhiriev/postdesk/models"
)

// settingsService seals integration keys on the way into the repository and
// opens them on the way out.
type settingsService struct {
	repository store.SettingsRepository
	sealer     crypto.Sealer
	logger     *logger.Logger
}

func NewSettingsService(repository store.SettingsRepository, sealer crypto.Sealer, logger *logger.Logger) SettingsService {
	return &settingsService{
		repository: repository,
		sealer:     sealer,
		logger:     logger,
	}
}

func (s *settingsService) Get(ctx context.Context, userID string) (models.Settings, error) {
	if userID == "" {
		return models.Settings{}, ErrInvalidDataProvided
	}

	settings, err := s.repository.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrSettingsUnavailable, err)
	}

	return s.open(ctx, settings)
}

func (s *settingsService) Save(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if settings.UserID == "" {
		return models.Settings{}, ErrInvalidDataProvided
	}

	sealed := settings
	var err error
	if sealed.WordpressAPIKey, err = s.sealer.Seal(settings.WordpressAPIKey); err != nil {
		return models.Settings{}, fmt.Errorf("sealing wordpress key: %w", err)
	}
	if sealed.WebflowAPIKey, err = s.sealer.Seal(settings.WebflowAPIKey); err != nil {
		return models.Settings{}, fmt.Errorf("sealing webflow key: %w", err)
	}

	saved, err := s.repository.Upsert(ctx, sealed)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrSettingsUnavailable, err)
	}

	logger.FromContext(ctx).Info().Str("func", "settingsService.Save").Str("user_id", saved.UserID).Bool("sealed", s.sealer.Enabled()).Msg("settings saved")
	return s.open(ctx, saved)
}

func (s *settingsService) open(ctx context.Context, settings models.Settings) (models.Settings, error) {
	var err error
	if settings.WordpressAPIKey, err = s.sealer.Open(settings.WordpressAPIKey); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "settingsService.open").Str("user_id", settings.UserID).Msg("cannot open wordpress key")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrSettingsUnavailable, err)
	}
	if settings.WebflowAPIKey, err = s.sealer.Open(settings.WebflowAPIKey); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "settingsService.open").Str("user_id", settings.UserID).Msg("cannot open webflow key")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrSettingsUnavailable, err)
	}
	return settings, nil
}
