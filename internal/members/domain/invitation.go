package domain

import (
	"strings"
	"time"
)

// Invitation is a one-time signup code bound to an email address.
// The optional name and member number fields are copied onto the account
// during activation.
type Invitation struct {
	ID           string
	Code         string
	Email        string
	FirstName    string
	LastName     string
	MemberNumber string
	Used         bool
	UsedBy       string // user ID, empty until redeemed
	UsedAt       *time.Time
	CreatedBy    string
	ExpiresAt    *time.Time // nil means the code never expires
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the optional expiry has passed.
func (i Invitation) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Valid reports whether the code can still be redeemed:
// not used, and not past its expiry.
func (i Invitation) Valid(now time.Time) bool {
	return !i.Used && !i.Expired(now)
}

// EmailMatches compares the submitted email case-insensitively.
func (i Invitation) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(i.Email))
}
