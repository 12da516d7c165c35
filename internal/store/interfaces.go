// Package store persists per-user settings and posts in a relational
// database. PostgreSQL (pgx) and SQLite (go-sqlite3) are supported; queries
// are built with squirrel so that the placeholder style follows the driver.
package store

import (
	"context"

	"github.com/MKhiriev/postdesk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SettingsRepository stores at most one settings row per user.
type SettingsRepository interface {
	// Get returns the user's settings or [ErrNotFound].
	Get(ctx context.Context, userID string) (models.Settings, error)

	// Upsert inserts the row or replaces the keys of the existing one.
	Upsert(ctx context.Context, settings models.Settings) (models.Settings, error)
}

// PostRepository reads and deletes posts. Every query is scoped by user id.
type PostRepository interface {
	// List returns one page of the user's posts, newest first.
	List(ctx context.Context, page models.PostPage) ([]models.Post, error)

	// Count returns how many posts the user owns.
	Count(ctx context.Context, userID string) (int, error)

	// Get returns the post only if userID owns it, otherwise [ErrNotFound].
	Get(ctx context.Context, userID, postID string) (models.Post, error)

	// Delete removes the post scoped by id and owner. [ErrNotFound] is
	// returned when nothing matched.
	Delete(ctx context.Context, userID, postID string) error
}

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
