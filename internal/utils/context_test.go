// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/postdesk/models"
)

func TestContextKeyString(t *testing.T) {
	if UserCtxKey.String() != "user" {
		t.Errorf("expected 'user', got '%s'", UserCtxKey.String())
	}
	if TokenCtxKey.String() != "accessToken" {
		t.Errorf("expected 'accessToken', got '%s'", TokenCtxKey.String())
	}
}

func TestWithUser_RoundTrip(t *testing.T) {
	ctx := WithUser(context.Background(), models.User{ID: "u-1", Email: "a@b.com"}, "tok")

	user, ok := GetUserFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if user.ID != "u-1" || user.Email != "a@b.com" {
		t.Errorf("unexpected user %+v", user)
	}

	token, ok := GetTokenFromContext(ctx)
	if !ok || token != "tok" {
		t.Errorf("expected token 'tok', got '%s' (ok=%v)", token, ok)
	}
}

func TestGetUserFromContext_Missing(t *testing.T) {
	if _, ok := GetUserFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
	if _, ok := GetTokenFromContext(context.Background()); ok {
		t.Fatal("expected ok=false for missing token, got true")
	}
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not-a-user")

	if _, ok := GetUserFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetTokenFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenCtxKey, "")

	if _, ok := GetTokenFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty token, got true")
	}
}
