// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/postdesk/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command and returns when it is done.
	Run(ctx context.Context) error
}

// API is the postdesk HTTP API as seen by the client.
type API interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, req models.SignUpRequest) (models.RegisterResponse, error)
	Logout(ctx context.Context, session Session) error
	CheckAuth(ctx context.Context, session Session) (models.CheckAuthResponse, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, link, newPassword, confirmPassword string) error

	GetSettings(ctx context.Context, session Session) (models.Settings, error)
	SaveSettings(ctx context.Context, session Session, wordpressKey, webflowKey string) (models.Settings, error)

	ListPosts(ctx context.Context, session Session, page, perPage int) (models.PostList, error)
	DeletePost(ctx context.Context, session Session, postID string) error

	Version(ctx context.Context) (models.BuildInfoResponse, error)
}
