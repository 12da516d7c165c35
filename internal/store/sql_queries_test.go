// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/models"
)

func TestQueryBuilder_Placeholders(t *testing.T) {
	pg := newQueryBuilder(config.DriverPostgres)
	lite := newQueryBuilder(config.DriverSQLite)

	q, args, err := pg.selectPost("user-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, user_id, title, content, status, keywords, created_at FROM posts WHERE id = $1 AND user_id = $2", q)
	assert.Equal(t, []any{"p1", "user-1"}, args)

	q, _, err = lite.selectPost("user-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, user_id, title, content, status, keywords, created_at FROM posts WHERE id = ? AND user_id = ?", q)
}

func TestQueryBuilder_ListPosts(t *testing.T) {
	q, args, err := newQueryBuilder(config.DriverSQLite).listPosts(models.PostPage{UserID: "u", Page: 3, PerPage: 5})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(q, "ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 10"), q)
	assert.Equal(t, []any{"u"}, args)
}

func TestQueryBuilder_UpsertSettings(t *testing.T) {
	now := time.Now()
	q, args, err := newQueryBuilder(config.DriverPostgres).upsertSettings("id-1", models.Settings{UserID: "u", WordpressAPIKey: "a", WebflowAPIKey: "b"}, now)
	require.NoError(t, err)
	assert.Contains(t, q, "ON CONFLICT (user_id) DO UPDATE SET")
	assert.Contains(t, q, "RETURNING user_id, wordpress_api_key, webflow_api_key, updated_at")
	assert.Equal(t, []any{"id-1", "u", "a", "b", now}, args)
}
