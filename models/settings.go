// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Settings holds the per-user integration keys. There is at most one row per
// user; it is created on first save and upserted afterwards.
type Settings struct {
	UserID          string    `json:"user_id,omitempty"`
	WordpressAPIKey string    `json:"wordpress_api_key"`
	WebflowAPIKey   string    `json:"webflow_api_key"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

// DefaultSettings is returned to users who never saved anything.
func DefaultSettings(userID string) Settings {
	return Settings{UserID: userID}
}
