package store

import (
	"context"
	"errors"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Invitations() Invitations
	Members() Members
	Payments() Payments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername matches the username case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ActivateUser takes ownership of a credential during signup: sets the
	// password hash, marks the user active, and applies the invitation's
	// names and email.
	ActivateUser(ctx context.Context, userID, passwordHash, firstName, lastName, email string) error

	// DeactivateUser flips active=0 so the credential can no longer log in.
	DeactivateUser(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to the member profile link (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// UpdateTOTPSecret sets the TOTP secret for a user.
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error

	// EnableTOTP marks TOTP as enabled for a user (sets totp_enabled timestamp).
	EnableTOTP(ctx context.Context, userID string) error

	// DisableTOTP disables TOTP for a user (clears totp_enabled and totp_secret).
	DisableTOTP(ctx context.Context, userID string) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation. The code column carries a
	// UNIQUE constraint; a collision surfaces as ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByCode returns an invitation by its exact code.
	GetInvitationByCode(ctx context.Context, code string) (domain.Invitation, error)

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// ListInvitations returns invitations newest first. When includeUsed is
	// false only open codes are returned.
	ListInvitations(ctx context.Context, includeUsed bool) ([]domain.Invitation, error)

	// MarkInvitationUsed claims the code for a user. The update is conditional
	// on used=0 so only one concurrent caller wins; the bool reports whether
	// this call made the claim.
	MarkInvitationUsed(ctx context.Context, invitationID string, usedByUserID string) (bool, error)

	// DeleteInvitation removes an unwanted code.
	DeleteInvitation(ctx context.Context, invitationID string) error

	// DeleteExpiredInvitations removes unused codes past their expiry
	// (housekeeping) and returns how many were removed.
	DeleteExpiredInvitations(ctx context.Context) (int64, error)
}

type Members interface {
	// CreateMember inserts a new member profile.
	CreateMember(ctx context.Context, m domain.Member) error

	// GetMemberByID returns a member by id.
	GetMemberByID(ctx context.Context, id string) (domain.Member, error)

	// GetMemberByUserID returns the member linked to a credential.
	GetMemberByUserID(ctx context.Context, userID string) (domain.Member, error)

	// GetMemberByNumber returns a member by their national member number.
	GetMemberByNumber(ctx context.Context, memberNumber string) (domain.Member, error)

	// ListMembers returns all members ordered by member number.
	ListMembers(ctx context.Context) ([]domain.Member, error)

	// ListMarkedForRemoval returns members with an active removal mark,
	// oldest mark first.
	ListMarkedForRemoval(ctx context.Context) ([]domain.Member, error)

	// UpdateStanding sets status and dues_current together.
	UpdateStanding(ctx context.Context, memberID string, status domain.Status, duesCurrent bool) error

	// SetRemovalMark starts the removal countdown. Leaves an existing mark
	// untouched; the bool reports whether this call set it.
	SetRemovalMark(ctx context.Context, memberID string, at time.Time, reason string) (bool, error)

	// ClearRemovalMark stops the countdown.
	ClearRemovalMark(ctx context.Context, memberID string) error

	// LinkUser points the profile at a credential (empty userID unlinks).
	LinkUser(ctx context.Context, memberID string, userID string) error

	// SetMemberNumber attaches a national member number to a profile.
	SetMemberNumber(ctx context.Context, memberID string, memberNumber string) error

	// UpdateContact sets the mutable roster fields.
	UpdateContact(ctx context.Context, memberID string, phone, lineName, lineNumber string) error

	// DeleteMember removes a profile. Payments cascade per schema.
	DeleteMember(ctx context.Context, memberID string) error
}

type Payments interface {
	// CreatePayment inserts a payment record.
	CreatePayment(ctx context.Context, p domain.Payment) error

	// GetPaymentByID returns a payment by id.
	GetPaymentByID(ctx context.Context, id string) (domain.Payment, error)

	// GetPaymentByStripeSession looks up the payment created for a checkout
	// session, used when the webhook settles it.
	GetPaymentByStripeSession(ctx context.Context, sessionID string) (domain.Payment, error)

	// ListPaymentsByMember returns a member's payments newest first.
	ListPaymentsByMember(ctx context.Context, memberID string) ([]domain.Payment, error)

	// UpdatePaymentStatus settles or fails a payment.
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, paidAt *time.Time) error
}
