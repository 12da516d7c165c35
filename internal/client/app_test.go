package client

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/models"
)

func newTestApp(t *testing.T, api API, args ...string) (*App, *SessionStore, *bytes.Buffer) {
	t.Helper()
	sessions := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	out := &bytes.Buffer{}
	return NewApp(api, sessions, args, out, logger.Nop()), sessions, out
}

func TestApp_LoginStoresSession(t *testing.T) {
	_, api := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.LoginResponse{
			Session: models.Session{AccessToken: "tok", ExpiresIn: 3600, User: models.User{ID: "u1", Email: "a@b.com"}},
		})
	})
	app, sessions, out := newTestApp(t, api, "login", "-email", "a@b.com", "-password", "secret")

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Signed in as a@b.com")
	session, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", session.AccessToken)
}

func TestApp_SettingsMasksKeys(t *testing.T) {
	_, api := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Settings{WordpressAPIKey: "wp-secret-1234"})
	})
	app, sessions, out := newTestApp(t, api, "settings")
	require.NoError(t, sessions.Save(Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "wordpress: **********1234\nwebflow: (not set)\n", out.String())
}

func TestApp_RequiresSession(t *testing.T) {
	srv, api := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {})
	app, _, _ := newTestApp(t, api, "posts")

	err := app.Run(context.Background())

	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Equal(t, int32(0), srv.requests.Load())
}

func TestApp_LogoutClearsSession(t *testing.T) {
	srv, api := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
	})
	app, sessions, _ := newTestApp(t, api, "logout")
	require.NoError(t, sessions.Save(Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, int32(1), srv.requests.Load())
	_, err := sessions.Load()
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestApp_ResetMismatch(t *testing.T) {
	srv, api := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {})
	app, _, _ := newTestApp(t, api, "reset", "-link", "https://app.test/#access_token=x", "-password", "a", "-confirm", "b")

	assert.ErrorIs(t, app.Run(context.Background()), ErrPasswordsDoNotMatch)
	assert.Equal(t, int32(0), srv.requests.Load())
}

func TestApp_UnknownCommand(t *testing.T) {
	_, api := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {})
	app, _, out := newTestApp(t, api, "frobnicate")

	assert.ErrorIs(t, app.Run(context.Background()), ErrUnknownCommand)
	assert.Contains(t, out.String(), "usage: postdesk")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "(not set)", mask(""))
	assert.Equal(t, "***", mask("abc"))
	assert.Equal(t, "**cdef", mask("abcdef"))
}
