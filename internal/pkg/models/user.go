package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash never leaves
// the server; JSON serialization skips it.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Verified     bool      `json:"verified" db:"verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile is the public view of a user returned by the API and cached
// by clients.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile builds the public view. When no name was provided the local part
// of the email is used instead.
func (u *User) Profile() *UserProfile {
	name := strings.TrimSpace(u.FullName)
	if name == "" {
		if at := strings.Index(u.Email, "@"); at > 0 {
			name = u.Email[:at]
		} else {
			name = u.Email
		}
	}
	return &UserProfile{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  name,
	}
}
