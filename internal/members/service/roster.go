package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/roster"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/idx"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

// RosterService manages member profiles outside the activation flow:
// officer provisioning and the periodic roster sync from headquarters.
type RosterService struct {
	Store       store.Store
	Mailer      ComplianceMailer   // optional; nil disables dues reminders
	Invitations *InvitationService // optional; nil disables provisioning invites
}

// ProvisionMemberParams carries officer input when pre-creating an account.
type ProvisionMemberParams struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	MemberNumber string
	Officer      bool
	CreatedBy    string
}

// ProvisionMember creates an inactive placeholder credential and its member
// profile ahead of the member's own signup. The random password is discarded;
// the member sets their own during activation.
func (s *RosterService) ProvisionMember(ctx context.Context, p ProvisionMemberParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	p.Username = strings.TrimSpace(p.Username)
	if p.Username == "" {
		return domain.User{}, ErrInvalidRequest
	}

	// Placeholder accounts cannot log in, but the schema requires a hash.
	password, err := cryptox.GeneratePassword()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: hash,
		Active:       false,
		Officer:      p.Officer,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}

		if p.MemberNumber == "" {
			return tx.Members().CreateMember(ctx, domain.Member{
				ID:     idx.New().String(),
				UserID: user.ID,
				Status: domain.StatusNewMember,
			})
		}

		// Adopt an unlinked profile from a previous roster sync if one
		// exists for this number.
		member, err := tx.Members().GetMemberByNumber(ctx, p.MemberNumber)
		if errors.Is(err, store.ErrNotFound) {
			return tx.Members().CreateMember(ctx, domain.Member{
				ID:           idx.New().String(),
				UserID:       user.ID,
				MemberNumber: p.MemberNumber,
				Status:       domain.StatusNewMember,
			})
		}
		if err != nil {
			return err
		}
		if member.UserID != "" {
			return ErrProfileLinkConflict
		}
		return tx.Members().LinkUser(ctx, member.ID, user.ID)
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("member provisioned",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("member_number", p.MemberNumber),
	)

	// Invite the member to claim the placeholder. The credential stands
	// either way; an officer can re-mint a code if this fails.
	if s.Invitations != nil && p.Email != "" {
		_, err := s.Invitations.CreateInvitation(ctx, CreateInvitationParams{
			Email:        p.Email,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			MemberNumber: p.MemberNumber,
			CreatedBy:    p.CreatedBy,
		})
		if err != nil {
			log.Error("failed to mint invitation for provisioned member",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}

	return user, nil
}

// SyncReport summarises a roster sync.
type SyncReport struct {
	Matched   int
	Created   int
	Marked    int
	DryRun    bool
	RowErrors []string
}

const syncMarkReason = "not on current headquarters roster"

// SyncRoster reconciles the local roster against the set of member numbers
// on the headquarters export. Members absent from the list are marked for
// removal, starting the grace period; members present on the list are left
// untouched, so an existing mark is only ever cleared by a payment or a
// manual reset. Unknown member numbers become unlinked profiles awaiting
// invitation or provisioning. With dryRun the report is computed but nothing
// is written.
func (s *RosterService) SyncRoster(ctx context.Context, rows []roster.Row, dryRun bool) (SyncReport, error) {
	log := slogx.FromContext(ctx)

	numbers, rowErrors := roster.Numbers(rows)
	report := SyncReport{DryRun: dryRun, RowErrors: rowErrors}

	members, err := s.Store.Members().ListMembers(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	known := make(map[string]bool, len(members))
	for _, m := range members {
		if m.MemberNumber != "" {
			known[m.MemberNumber] = true
		}
	}

	now := time.Now().UTC()
	var marked []domain.Member

	for _, m := range members {
		if m.MemberNumber == "" || numbers[m.MemberNumber] {
			if m.MemberNumber != "" {
				report.Matched++
			}
			continue
		}
		if m.MarkedForRemovalAt != nil {
			// Already in the grace period; the clock keeps running.
			continue
		}
		if domain.IsProtectedStatus(m.Status) || m.Status == domain.StatusNewMember {
			continue
		}

		if !dryRun {
			member := m
			err := s.Store.WithTx(ctx, func(tx store.Tx) error {
				if err := tx.Members().UpdateStanding(ctx, member.ID, domain.StatusNonFinancial, false); err != nil {
					return err
				}
				_, err := tx.Members().SetRemovalMark(ctx, member.ID, now, syncMarkReason)
				return err
			})
			if err != nil {
				log.Error("roster sync failed to mark member",
					slog.String("member_number", m.MemberNumber),
					slog.Any("error", err),
				)
				report.RowErrors = append(report.RowErrors, m.MemberNumber+": "+err.Error())
				continue
			}
			marked = append(marked, m)
		}
		report.Marked++
	}

	for number := range numbers {
		if known[number] {
			continue
		}
		if !dryRun {
			err := s.Store.Members().CreateMember(ctx, domain.Member{
				ID:           idx.New().String(),
				MemberNumber: number,
				Status:       domain.StatusFinancial,
				DuesCurrent:  true,
			})
			if err != nil {
				log.Error("roster sync failed to create profile",
					slog.String("member_number", number),
					slog.Any("error", err),
				)
				report.RowErrors = append(report.RowErrors, number+": "+err.Error())
				continue
			}
		}
		report.Created++
	}

	for _, m := range marked {
		s.notifyMarked(ctx, m, now)
	}

	log.Info("roster sync finished",
		slog.Int("matched", report.Matched),
		slog.Int("created", report.Created),
		slog.Int("marked", report.Marked),
		slog.Int("row_errors", len(report.RowErrors)),
		slog.Bool("dry_run", dryRun),
	)

	return report, nil
}

func (s *RosterService) notifyMarked(ctx context.Context, member domain.Member, markedAt time.Time) {
	if s.Mailer == nil || member.UserID == "" {
		return
	}
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, member.UserID)
	if err != nil || user.Email == "" {
		return
	}

	member.MarkedForRemovalAt = &markedAt
	days, _ := member.DaysUntilRemoval(time.Now())
	go func() {
		if err := s.Mailer.SendRemovalNotice(context.Background(), user.Email, user.FullName(), days); err != nil {
			log.Error("failed to send removal notice",
				slog.String("member_id", member.ID),
				slog.Any("error", err),
			)
		}
	}()
}

// GetMember returns a single member with countdown state.
func (s *RosterService) GetMember(ctx context.Context, memberID string) (MemberStanding, error) {
	member, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MemberStanding{}, ErrMemberNotFound
		}
		return MemberStanding{}, err
	}
	return Standing(member, time.Now()), nil
}

// GetMemberByUser resolves the member profile linked to a credential.
func (s *RosterService) GetMemberByUser(ctx context.Context, userID string) (MemberStanding, error) {
	member, err := s.Store.Members().GetMemberByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MemberStanding{}, ErrMemberNotFound
		}
		return MemberStanding{}, err
	}
	return Standing(member, time.Now()), nil
}
