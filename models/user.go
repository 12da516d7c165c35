package models

import "time"

// User is an account record owned by the identity provider.
// The password is never part of this struct: it lives only inside the
// provider and is passed through request-scoped values when needed.
type User struct {
	// ID is the opaque identifier assigned by the identity provider.
	ID string `json:"id"`

	// Aud is the audience the provider issued the account for.
	Aud string `json:"aud,omitempty"`

	// Role is the provider-side role (usually "authenticated").
	Role string `json:"role,omitempty"`

	// Email is unique per account.
	Email string `json:"email"`

	// UserMetadata holds user-editable profile data such as firstName and
	// lastName.
	UserMetadata UserMetadata `json:"user_metadata"`

	// ConfirmedAt is set once the user confirmed their email address.
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	// EmailConfirmedAt mirrors ConfirmedAt for the email channel.
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`

	// ConfirmationSentAt is set when a confirmation email was sent after
	// sign-up.
	ConfirmationSentAt *time.Time `json:"confirmation_sent_at,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UserMetadata is the free-form profile map kept by the identity provider.
// The dashboard uses the firstName and lastName keys.
type UserMetadata map[string]any

// FirstName returns the "firstName" entry or an empty string.
func (m UserMetadata) FirstName() string {
	return m.stringValue("firstName")
}

// LastName returns the "lastName" entry or an empty string.
func (m UserMetadata) LastName() string {
	return m.stringValue("lastName")
}

func (m UserMetadata) stringValue(key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

// Credentials is the email/password pair used for sign-in and sign-up.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest describes a new account. FirstName and LastName are stored in
// the provider's user metadata.
type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AdminUserUpdate is a partial update applied with the elevated credential.
// Only non-nil fields are sent to the provider.
type AdminUserUpdate struct {
	Email        *string      `json:"email,omitempty"`
	Password     *string      `json:"password,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata,omitempty"`
}
