package domain

import (
	"strings"
	"time"
)

// User is a credential identity. Officers provision placeholder users
// (Active=false, random password) ahead of invitation activation; the member
// takes ownership of the credential when they redeem their invitation code.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // argon2 encoded
	Active       bool
	Officer      bool       // officers get the admin capability set
	TOTPEnabled  *time.Time // timestamp when TOTP was enabled (nullable)
	TOTPSecret   *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "First Last", falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// IsPlaceholder reports whether this is an admin-provisioned credential
// that has never been activated by its member.
func (u User) IsPlaceholder() bool {
	return !u.Active
}
