// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/models"
)

const (
	tableSettings = "user_settings"
	tablePosts    = "posts"
)

var (
	settingsColumns = []string{"user_id", "wordpress_api_key", "webflow_api_key", "updated_at"}
	postColumns     = []string{"id", "user_id", "title", "content", "status", "keywords", "created_at"}
)

// queryBuilder renders SQL with the placeholder style of the active driver.
type queryBuilder struct {
	sq.StatementBuilderType
}

func newQueryBuilder(driver string) queryBuilder {
	var format sq.PlaceholderFormat = sq.Question
	if driver == config.DriverPostgres {
		format = sq.Dollar
	}
	return queryBuilder{StatementBuilderType: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (b queryBuilder) selectSettings(userID string) (string, []any, error) {
	return b.Select(settingsColumns...).
		From(tableSettings).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// upsertSettings inserts a row or overwrites both keys of the user's row.
// Both dialects accept ON CONFLICT ... DO UPDATE with RETURNING.
func (b queryBuilder) upsertSettings(id string, s models.Settings, now time.Time) (string, []any, error) {
	return b.Insert(tableSettings).
		Columns("id", "user_id", "wordpress_api_key", "webflow_api_key", "updated_at").
		Values(id, s.UserID, s.WordpressAPIKey, s.WebflowAPIKey, now).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			wordpress_api_key = excluded.wordpress_api_key,
			webflow_api_key = excluded.webflow_api_key,
			updated_at = excluded.updated_at
		RETURNING user_id, wordpress_api_key, webflow_api_key, updated_at`).
		ToSql()
}

func (b queryBuilder) listPosts(page models.PostPage) (string, []any, error) {
	return b.Select(postColumns...).
		From(tablePosts).
		Where(sq.Eq{"user_id": page.UserID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.PerPage)).
		Offset(uint64(page.Offset())).
		ToSql()
}

func (b queryBuilder) countPosts(userID string) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(tablePosts).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func (b queryBuilder) selectPost(userID, postID string) (string, []any, error) {
	return b.Select(postColumns...).
		From(tablePosts).
		Where(sq.Eq{"id": postID, "user_id": userID}).
		ToSql()
}

func (b queryBuilder) deletePost(userID, postID string) (string, []any, error) {
	return b.Delete(tablePosts).
		Where(sq.Eq{"id": postID, "user_id": userID}).
		ToSql()
}
