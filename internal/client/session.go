package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/postdesk/models"
)

// now is replaced in tests.
var now = time.Now

// Session is the client's copy of a sign-in. It is passed explicitly to
// every call that needs it.
type Session struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        models.User `json:"user"`
}

// NewSession converts the provider session returned by /api/login.
func NewSession(s models.Session) Session {
	return Session{
		AccessToken: s.AccessToken,
		ExpiresAt:   s.Expiry(),
		User:        s.User,
	}
}

// Valid reports whether the session has a token that has not expired at t.
func (s Session) Valid(t time.Time) bool {
	return s.AccessToken != "" && t.Before(s.ExpiresAt)
}

// SessionStore keeps one session in a file readable only by the owner.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load returns the stored session. A missing file yields ErrNotSignedIn and
// an expired session ErrSessionExpired.
func (s *SessionStore) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNotSignedIn
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session: %w", err)
	}

	var session Session
	if err = json.Unmarshal(raw, &session); err != nil {
		return Session{}, fmt.Errorf("decoding session: %w", err)
	}
	if !session.Valid(now()) {
		return Session{}, ErrSessionExpired
	}
	return session, nil
}

func (s *SessionStore) Save(session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear removes the stored session. A missing file is not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
