package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrStatusProtected = errors.New("member status is protected from removal")
)

// ComplianceMailer delivers dues reminders to members entering the
// removal window.
type ComplianceMailer interface {
	SendRemovalNotice(ctx context.Context, email, name string, daysLeft int) error
}

// ComplianceService owns the removal countdown: marking members, clearing
// marks when standing is restored, and sweeping out members whose grace
// period has elapsed.
type ComplianceService struct {
	Store  store.Store
	Mailer ComplianceMailer // optional; nil disables notices
}

// MemberStanding pairs a member with their countdown for roster views.
type MemberStanding struct {
	Member           domain.Member
	DaysUntilRemoval *int
	RemovalEligible  bool
}

// Standing computes the countdown fields for a member at now.
func Standing(m domain.Member, now time.Time) MemberStanding {
	out := MemberStanding{Member: m}
	if days, ok := m.DaysUntilRemoval(now); ok {
		out.DaysUntilRemoval = &days
		out.RemovalEligible = m.RemovalDue(now)
	}
	return out
}

// ListStandings returns every member with their countdown state.
func (s *ComplianceService) ListStandings(ctx context.Context) ([]MemberStanding, error) {
	members, err := s.Store.Members().ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]MemberStanding, 0, len(members))
	for _, m := range members {
		out = append(out, Standing(m, now))
	}
	return out, nil
}

// MarkForRemoval starts the 90-day countdown for a member. Marking an
// already-marked member is a no-op; the original clock keeps running.
// Protected standings (life members, suspended) cannot be marked.
func (s *ComplianceService) MarkForRemoval(ctx context.Context, memberID, reason string) (domain.Member, error) {
	log := slogx.FromContext(ctx)

	// 1. Fetch and check the member's standing
	member, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, err
	}
	if domain.IsProtectedStatus(member.Status) {
		log.Warn("attempted to mark protected member for removal",
			slog.String("member_id", memberID),
			slog.String("status", string(member.Status)),
		)
		return domain.Member{}, ErrStatusProtected
	}

	// 2. Set the mark. The update is conditional on no existing mark so a
	// repeat call never resets the clock.
	now := time.Now().UTC()
	set, err := s.Store.Members().SetRemovalMark(ctx, memberID, now, reason)
	if err != nil {
		return domain.Member{}, err
	}

	member, err = s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, err
	}

	if !set {
		log.Debug("member already marked for removal",
			slog.String("member_id", memberID),
		)
		return member, nil
	}

	log.Info("member marked for removal",
		slog.String("member_id", memberID),
		slog.String("member_number", member.MemberNumber),
		slog.String("reason", reason),
	)

	// 3. Notify the member. Delivery is detached; a mail outage must never
	// undo the mark.
	s.notifyRemoval(ctx, member)

	return member, nil
}

// ClearRemoval stops the countdown, typically after dues are settled.
func (s *ComplianceService) ClearRemoval(ctx context.Context, memberID string) (domain.Member, error) {
	log := slogx.FromContext(ctx)

	err := s.Store.Members().ClearRemovalMark(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, err
	}

	member, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, err
	}

	log.Info("removal mark cleared",
		slog.String("member_id", memberID),
		slog.String("member_number", member.MemberNumber),
	)
	return member, nil
}

// SweepResult reports what a sweep did (or would do, for a dry run).
type SweepResult struct {
	Examined int
	Removed  []domain.Member
	DryRun   bool
}

// SweepExpired removes every member whose grace period has fully elapsed.
// With dryRun the candidates are reported and logged but nothing is deleted.
// The sweep is idempotent; members removed once are simply gone on the next
// pass.
func (s *ComplianceService) SweepExpired(ctx context.Context, dryRun bool) (SweepResult, error) {
	log := slogx.FromContext(ctx)

	marked, err := s.Store.Members().ListMarkedForRemoval(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	now := time.Now()
	result := SweepResult{Examined: len(marked), DryRun: dryRun}

	for _, m := range marked {
		if !m.RemovalDue(now) {
			continue
		}
		if domain.IsProtectedStatus(m.Status) {
			// Standing changed after the mark was set; leave them alone.
			log.Warn("skipping protected member in removal sweep",
				slog.String("member_id", m.ID),
				slog.String("status", string(m.Status)),
			)
			continue
		}

		// Every removal is logged before it happens so the audit trail
		// survives even a partial sweep.
		log.Info("removing member past grace period",
			slog.String("member_id", m.ID),
			slog.String("member_number", m.MemberNumber),
			slog.Time("marked_at", *m.MarkedForRemovalAt),
			slog.String("reason", m.RemovalReason),
			slog.Bool("dry_run", dryRun),
		)

		if !dryRun {
			err := s.Store.WithTx(ctx, func(tx store.Tx) error {
				if m.UserID != "" {
					if err := tx.Users().DeactivateUser(ctx, m.UserID); err != nil && !errors.Is(err, store.ErrNotFound) {
						return err
					}
				}
				return tx.Members().DeleteMember(ctx, m.ID)
			})
			if err != nil {
				log.Error("failed to remove member",
					slog.String("member_id", m.ID),
					slog.Any("error", err),
				)
				return result, err
			}
		}

		result.Removed = append(result.Removed, m)
	}

	log.Info("removal sweep finished",
		slog.Int("examined", result.Examined),
		slog.Int("removed", len(result.Removed)),
		slog.Bool("dry_run", dryRun),
	)

	return result, nil
}

func (s *ComplianceService) notifyRemoval(ctx context.Context, member domain.Member) {
	if s.Mailer == nil || member.UserID == "" {
		return
	}
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, member.UserID)
	if err != nil || user.Email == "" {
		return
	}

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
