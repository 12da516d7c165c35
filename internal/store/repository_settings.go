package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/utils"
	"github.com/MKhiriev/postdesk/models"
)

type settingsRepository struct {
	*DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewSettingsRepository returns a [SettingsRepository] backed by db.
func NewSettingsRepository(db *DB, log *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    func() time.Time { return time.Now().UTC() },
		logger: log,
	}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (models.Settings, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.selectSettings(userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.Settings
	err = r.QueryRowContext(ctx, query, args...).Scan(&s.UserID, &s.WordpressAPIKey, &s.WebflowAPIKey, &s.UpdatedAt)
	if err != nil {
		err = r.translate(err)
		if errors.Is(err, ErrNotFound) {
			return models.Settings{}, ErrNotFound
		}
		log.Err(err).Str("func", "settingsRepository.Get").Msg("error selecting settings")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.upsertSettings(r.ids.Generate(), settings, r.now())
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var saved models.Settings
	err = r.QueryRowContext(ctx, query, args...).Scan(&saved.UserID, &saved.WordpressAPIKey, &saved.WebflowAPIKey, &saved.UpdatedAt)
	if err != nil {
		log.Err(err).Str("func", "settingsRepository.Upsert").Str("user_id", settings.UserID).Msg("error saving settings")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.translate(err))
	}

	log.Debug().Str("func", "settingsRepository.Upsert").Str("user_id", saved.UserID).Msg("settings saved")
	return saved, nil
}
