package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/models"
)

var settingsRowColumns = []string{"user_id", "wordpress_api_key", "webflow_api_key", "updated_at"}

func TestSettingsRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, logger.Nop())
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT user_id, wordpress_api_key, webflow_api_key, updated_at FROM user_settings WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(settingsRowColumns).AddRow("user-1", "wp", "wf", now))

	got, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.Settings{UserID: "user-1", WordpressAPIKey: "wp", WebflowAPIKey: "wf", UpdatedAt: now}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectQuery(`FROM user_settings`).
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepository_Get_Unavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectQuery(`FROM user_settings`).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, logger.Nop()).(*settingsRepository)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectQuery(`INSERT INTO user_settings \(id,user_id,wordpress_api_key,webflow_api_key,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5\) ON CONFLICT \(user_id\) DO UPDATE SET`).
		WithArgs(sqlmock.AnyArg(), "user-1", "wp", "wf", now).
		WillReturnRows(sqlmock.NewRows(settingsRowColumns).AddRow("user-1", "wp", "wf", now))

	saved, err := repo.Upsert(context.Background(), models.Settings{UserID: "user-1", WordpressAPIKey: "wp", WebflowAPIKey: "wf"})
	require.NoError(t, err)
	assert.Equal(t, "wp", saved.WordpressAPIKey)
	assert.Equal(t, now, saved.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Upsert_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectQuery(`INSERT INTO user_settings`).
		WillReturnError(pgError(pgerrcode.NotNullViolation))

	_, err := repo.Upsert(context.Background(), models.Settings{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutingStatement))
	assert.True(t, errors.Is(err, ErrConflict))
}
