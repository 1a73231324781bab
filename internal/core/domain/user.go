package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// User models a stored user document. Only the fields the repair tooling
// touches are mapped; the real documents carry much more.
type User struct {
	ID        string
	Profile   Profile
	Auth      Auth
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the public-facing subdocument of a user.
type Profile struct {
	Username    string
	DisplayName string
}

// Auth is the identity subdocument of a user.
type Auth struct {
	Email      string
	ProviderID string
}

// SeedName picks the raw string a username should be derived from: the
// display name when set, otherwise the email local-part, otherwise "user".
func (u User) SeedName() string {
	if u.Profile.DisplayName != "" {
		return u.Profile.DisplayName
	}
	if u.Auth.Email != "" {
		local, _, _ := strings.Cut(u.Auth.Email, "@")
		return local
	}
	return "user"
}
