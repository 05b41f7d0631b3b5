package domain

import (
	"math"
	"time"
)

// Status is a member's standing with the chapter.
type Status string

const (
	StatusFinancial              Status = "financial"
	StatusNonFinancial           Status = "non_financial"
	StatusFinancialLifeMember    Status = "financial_life_member"
	StatusNonFinancialLifeMember Status = "non_financial_life_member"
	StatusNewMember              Status = "new_member"
	StatusSuspended              Status = "suspended"
)

// RemovalGraceDays is the window a member has to restore compliance after
// being marked for removal.
const RemovalGraceDays = 90

// Member is a chapter member profile, linked one-to-one to a User credential.
type Member struct {
	ID           string
	UserID       string
	MemberNumber string
	Status       Status
	DuesCurrent  bool
	Phone        string
	LineName     string
	LineNumber   string

	// Removal tracking: non-nil starts the 90-day countdown.
	MarkedForRemovalAt *time.Time
	RemovalReason      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarkedForRemoval reports whether the member is in the grace period.
func (m Member) MarkedForRemoval() bool {
	return m.MarkedForRemovalAt != nil
}

// DaysUntilRemoval returns the whole days remaining before the member is
// eligible for removal, clamped at zero. The second return is false when the
// member is not marked.
func (m Member) DaysUntilRemoval(now time.Time) (int, bool) {
	if m.MarkedForRemovalAt == nil {
		return 0, false
	}
	// Ceiling, so a member marked moments ago still sees the full 90 days.
	deadline := m.MarkedForRemovalAt.Add(RemovalGraceDays * 24 * time.Hour)
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days, true
}

// RemovalDue reports whether the full grace period has elapsed.
func (m Member) RemovalDue(now time.Time) bool {
	if m.MarkedForRemovalAt == nil {
		return false
	}
	deadline := m.MarkedForRemovalAt.Add(RemovalGraceDays * 24 * time.Hour)
	return !now.Before(deadline)
}

// IsProtectedStatus reports whether a status is a terminal standing that
// dues state and invitation activation must never overwrite.
func IsProtectedStatus(s Status) bool {
	switch s {
	case StatusFinancialLifeMember, StatusNonFinancialLifeMember, StatusSuspended:
		return true
	}
	return false
}

// DeriveStatus computes the status that follows from the dues flag.
// New members, suspended members and both life-member standings keep their
// current status; everyone else tracks dues_current.
func DeriveStatus(current Status, duesCurrent bool) Status {
	if current == StatusNewMember || IsProtectedStatus(current) {
		return current
	}
	if duesCurrent {
		return StatusFinancial
	}
	return StatusNonFinancial
}

// ActivationStatus computes the status an account takes on invitation
// activation: forced to new_member unless the existing standing is protected.
func ActivationStatus(current Status) Status {
	if IsProtectedStatus(current) {
		return current
	}
	return StatusNewMember
}
