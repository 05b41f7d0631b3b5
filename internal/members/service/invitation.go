package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/idx"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvitationNotFound  = errors.New("invitation code not found")
	ErrInvitationUsed      = errors.New("invitation code has already been used")
	ErrInvitationExpired   = errors.New("invitation code has expired")
	ErrEmailMismatch       = errors.New("email does not match invitation")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrProfileLinkConflict = errors.New("member number already linked to another account")
)

// codeRetries bounds the unlikely loop on a UNIQUE collision when minting codes.
const codeRetries = 3

// InvitationMailer delivers invitation codes to prospective members.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, email, name, code string, expiresAt *time.Time) error
}

type InvitationService struct {
	Store  store.Store
	Mailer InvitationMailer // optional; nil disables delivery
}

// CreateInvitationParams carries officer input when minting a code.
type CreateInvitationParams struct {
	Email        string
	FirstName    string
	LastName     string
	MemberNumber string
	ExpiresAt    *time.Time
	Notes        string
	CreatedBy    string
}

// CreateInvitation mints a single-use signup code for an email address and
// emails it to the recipient when a mailer is configured.
func (s *InvitationService) CreateInvitation(ctx context.Context, p CreateInvitationParams) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		log.Warn("invitation requested without a usable email")
		return domain.Invitation{}, ErrInvalidRequest
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(time.Now()) {
		log.Warn("invitation requested with past expiry",
			slog.Time("expires_at", *p.ExpiresAt),
		)
		return domain.Invitation{}, ErrInvalidRequest
	}

	// 2. Mint the code and insert. The code column is UNIQUE; on the
	// vanishingly rare collision we mint a fresh code and try again.
	var inv domain.Invitation
	for attempt := 0; ; attempt++ {
		code, err := cryptox.GenerateToken(cryptox.TokenSizeInvite)
		if err != nil {
			log.Error("failed to generate invitation code", slog.Any("error", err))
			return domain.Invitation{}, err
		}

		inv = domain.Invitation{
			ID:           idx.New().String(),
			Code:         code,
			Email:        p.Email,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			MemberNumber: p.MemberNumber,
			CreatedBy:    p.CreatedBy,
			ExpiresAt:    p.ExpiresAt,
			Notes:        p.Notes,
		}

		err = s.Store.Invitations().CreateInvitation(ctx, inv)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrAlreadyExists) && attempt < codeRetries {
			log.Warn("invitation code collision, regenerating")
			continue
		}
		log.Error("failed to create invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 3. Deliver the code. Failures are logged, never fatal; officers can
	// re-read the code from the roster and resend.
	s.deliver(ctx, inv)

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("member_number", inv.MemberNumber),
		slog.String("created_by", inv.CreatedBy),
	)

	return inv, nil
}

// ResendInvitation re-delivers an open code to its recipient.
func (s *InvitationService) ResendInvitation(ctx context.Context, invitationID string) error {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	if !inv.Valid(time.Now()) {
		if inv.Used {
			return ErrInvitationUsed
		}
		return ErrInvitationExpired
	}

	s.deliver(ctx, inv)
	log.Info("invitation resent", slog.String("invitation_id", inv.ID))
	return nil
}

// ListInvitations returns invitations, optionally including redeemed ones.
func (s *InvitationService) ListInvitations(ctx context.Context, includeUsed bool) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListInvitations(ctx, includeUsed)
}

// RevokeInvitation deletes an open code so it can no longer be redeemed.
func (s *InvitationService) RevokeInvitation(ctx context.Context, invitationID string) error {
	err := s.Store.Invitations().DeleteInvitation(ctx, invitationID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvitationNotFound
	}
	return err
}

// ValidateCode checks a code and email pair without consuming the code. It is
// the read-only precheck behind the signup form; activation re-validates
// inside its transaction.
func (s *InvitationService) ValidateCode(ctx context.Context, code, email string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if code == "" || strings.TrimSpace(email) == "" {
		return domain.Invitation{}, ErrInvalidRequest
	}

	inv, err := s.Store.Invitations().GetInvitationByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("validation attempted with unknown invitation code")
			return domain.Invitation{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	if err := checkInvitation(inv, email, time.Now()); err != nil {
		log.Warn("invitation validation failed",
			slog.String("invitation_id", inv.ID),
			slog.Any("reason", err),
		)
		return domain.Invitation{}, err
	}

	return inv, nil
}

// ActivateAccount redeems an invitation code and hands the new member a live
// login. The whole redemption happens in one transaction:
//  1. Re-validate the code against the submitted email
//  2. Claim the code; losing a concurrent claim surfaces as already-used
//  3. Create the credential, or take over an admin-provisioned placeholder
//  4. Attach or create the member profile for the invitation's member number
func (s *InvitationService) ActivateAccount(
	ctx context.Context,
	code string,
	email string,
	username string,
	password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	code = strings.TrimSpace(code)
	username = strings.TrimSpace(username)
	if code == "" || email == "" || username == "" || password == "" {
		log.Warn("activation missing required fields")
		return domain.User{}, ErrInvalidRequest
	}

	// 2. Hash the password up front; argon2 is too expensive to hold a write
	// transaction open for.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now()

		// 3. Fetch and re-validate the invitation inside the transaction
		inv, err := tx.Invitations().GetInvitationByCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}
		if err := checkInvitation(inv, email, now); err != nil {
			return err
		}

		// 4. Resolve the credential: fresh account, or adoption of an
		// admin-provisioned placeholder that matches the username.
		existing, err := tx.Users().GetUserByUsername(ctx, username)
		switch {
		case err == nil && existing.Active:
			return ErrUsernameTaken
		case err == nil:
			// Placeholder takeover: the member claims the prepared credential.
			if err := tx.Users().ActivateUser(ctx, existing.ID, passwordHash, inv.FirstName, inv.LastName, inv.Email); err != nil {
				return err
			}
			user, err = tx.Users().GetUserByID(ctx, existing.ID)
			if err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			user = domain.User{
				ID:           idx.New().String(),
				Username:     username,
				Email:        inv.Email,
				FirstName:    inv.FirstName,
				LastName:     inv.LastName,
				PasswordHash: passwordHash,
				Active:       true,
			}
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					return ErrUsernameTaken
				}
				return err
			}
		default:
			return err
		}

		// 5. Claim the code. The update is conditional on used=0, so exactly
		// one concurrent activation wins.
		claimed, err := tx.Invitations().MarkInvitationUsed(ctx, inv.ID, user.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrInvitationUsed
		}

		// 6. Attach the member profile
		return s.attachProfile(ctx, tx, inv, user)
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("account activated",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// attachProfile links the activated credential to its member profile. Rosters
// synced from headquarters often carry profiles that predate the credential,
// so an existing profile for the invitation's member number is adopted rather
// than duplicated.
func (s *InvitationService) attachProfile(ctx context.Context, tx store.Tx, inv domain.Invitation, user domain.User) error {
	if inv.MemberNumber == "" {
		// No national number on the invitation; give the user a bare profile
		// unless one is already linked.
		_, err := tx.Members().GetMemberByUserID(ctx, user.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Members().CreateMember(ctx, domain.Member{
			ID:     idx.New().String(),
			UserID: user.ID,
			Status: domain.StatusNewMember,
		})
	}

	member, err := tx.Members().GetMemberByNumber(ctx, inv.MemberNumber)
	if errors.Is(err, store.ErrNotFound) {
		// A provisioned placeholder may already own a bare profile; attach
		// the number to it rather than creating a duplicate.
		owned, ownedErr := tx.Members().GetMemberByUserID(ctx, user.ID)
		if ownedErr == nil {
			if err := tx.Members().SetMemberNumber(ctx, owned.ID, inv.MemberNumber); err != nil {
				return err
			}
			return tx.Members().UpdateStanding(ctx, owned.ID, domain.ActivationStatus(owned.Status), owned.DuesCurrent)
		}
		if !errors.Is(ownedErr, store.ErrNotFound) {
			return ownedErr
		}
		return tx.Members().CreateMember(ctx, domain.Member{
			ID:           idx.New().String(),
			UserID:       user.ID,
			MemberNumber: inv.MemberNumber,
			Status:       domain.StatusNewMember,
		})
	}
	if err != nil {
		return err
	}

	if member.UserID != "" && member.UserID != user.ID {
		holder, err := tx.Users().GetUserByID(ctx, member.UserID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err == nil && holder.Active {
			// A live account already owns this member number. Refuse rather
			// than silently stealing the profile.
			return ErrProfileLinkConflict
		}
		// Stale placeholder link: move the profile and retire the orphan.
		if err == nil {
			if err := tx.Users().DeactivateUser(ctx, holder.ID); err != nil {
				return err
			}
		}
	}

	if member.UserID != user.ID {
		if err := tx.Members().LinkUser(ctx, member.ID, user.ID); err != nil {
			return err
		}
	}

	// Fresh activations start as new members unless the standing is one that
	// must survive (life member, suspended).
	return tx.Members().UpdateStanding(ctx, member.ID, domain.ActivationStatus(member.Status), member.DuesCurrent)
}

// checkInvitation applies the redemption rules in a fixed order so callers
// always see the most specific error.
func checkInvitation(inv domain.Invitation, email string, now time.Time) error {
	// Expiry wins over used so a stale code always reads as expired.
	if inv.Expired(now) {
		return ErrInvitationExpired
	}
	if inv.Used {
		return ErrInvitationUsed
	}
	if !inv.EmailMatches(email) {
		return ErrEmailMismatch
	}
	return nil
}

func (s *InvitationService) deliver(ctx context.Context, inv domain.Invitation) {
	if s.Mailer == nil {
		return
	}
	log := slogx.FromContext(ctx)

	name := strings.TrimSpace(inv.FirstName + " " + inv.LastName)
	go func() {
		// Detached from the request; delivery must never block or fail the call.
		if err := s.Mailer.SendInvitation(context.Background(), inv.Email, name, inv.Code, inv.ExpiresAt); err != nil {
			log.Error("failed to send invitation email",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
	}()
}
