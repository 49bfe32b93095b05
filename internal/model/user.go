// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// OAuth provider tags stored in users.oauth_provider.
//
// "local" means the account was created with an email + password through
// POST /api/users/. "github" means it was created by the GitHub OAuth
// callback — those accounts have no password at all.
const (
	ProviderLocal  = "local"
	ProviderGitHub = "github"
)

// User represents a registered user account.
//
// WHY PasswordHash *string (a pointer)?
// Accounts created via GitHub OAuth never set a password, and the users
// table stores NULL for them. A *string maps cleanly to SQL NULL:
// nil pointer ↔ NULL column. A plain string would force us to treat ""
// as "no password", which blurs the invariant.
//
// The `json:"-"` tag is load-bearing: it tells encoding/json to NEVER
// serialize this field. Password hashes must not leak into API responses,
// no matter which handler marshals a User.
type User struct {
	ID            string    `json:"id"            db:"id"`
	Name          string    `json:"name"          db:"name"`
	Email         string    `json:"email"         db:"email"` // unique across all users
	PasswordHash  *string   `json:"-"             db:"password"`
	OAuthProvider string    `json:"oauthProvider" db:"oauth_provider"` // "local" or "github"
	CreatedAt     time.Time `json:"created_at"    db:"created_at"`
}

// UserUpdate is a partial update to a user's profile.
//
// POINTER FIELDS FOR PARTIAL UPDATES:
// nil means "field not supplied — leave the stored value untouched".
// A non-nil pointer means "overwrite with this". encoding/json gives us
// this for free: JSON keys that are absent leave the pointer nil.
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
