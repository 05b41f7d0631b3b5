package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/pkg/idx"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrCheckoutFailed  = errors.New("failed to start checkout")
)

// CheckoutProvider creates hosted checkout sessions with the payment
// processor. Implemented by the billing package's Stripe client.
type CheckoutProvider interface {
	CreateDuesCheckout(ctx context.Context, memberID, email string) (sessionID, url string, amountCents int64, err error)
}

// DuesService records payments and keeps member standing in sync with them.
type DuesService struct {
	Store    store.Store
	Checkout CheckoutProvider // optional; nil disables hosted checkout
}

// RecordPayment books a manual payment (cash, check, remitted to HQ) as paid
// and settles the member's standing in the same transaction.
func (s *DuesService) RecordPayment(
	ctx context.Context,
	memberID string,
	amountCents int64,
	paymentType domain.PaymentType,
	note string,
) (domain.Payment, error) {
	log := slogx.FromContext(ctx)

	if amountCents <= 0 {
		return domain.Payment{}, ErrInvalidRequest
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:          idx.New().String(),
		MemberID:    memberID,
		AmountCents: amountCents,
		Currency:    "usd",
		Type:        paymentType,
		Status:      domain.PaymentPaid,
		Note:        note,
		PaidAt:      &now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		member, err := tx.Members().GetMemberByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if err := tx.Payments().CreatePayment(ctx, payment); err != nil {
			return err
		}
		return settleStanding(ctx, tx, member, payment)
	})
	if err != nil {
		return domain.Payment{}, err
	}

	log.Info("payment recorded",
		slog.String("payment_id", payment.ID),
		slog.String("member_id", memberID),
		slog.Int64("amount_cents", amountCents),
		slog.String("type", string(paymentType)),
	)

	return payment, nil
}

// StartCheckout opens a hosted checkout session for the member's dues and
// books a pending payment against the session.
func (s *DuesService) StartCheckout(ctx context.Context, memberID string) (string, error) {
	log := slogx.FromContext(ctx)

	if s.Checkout == nil {
		return "", ErrCheckoutFailed
	}

	// 1. Resolve the member and their email for the checkout page.
	member, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}

	email := ""
	if member.UserID != "" {
		if user, err := s.Store.Users().GetUserByID(ctx, member.UserID); err == nil {
			email = user.Email
		}
	}

	// 2. Create the session with the processor.
	sessionID, url, amountCents, err := s.Checkout.CreateDuesCheckout(ctx, member.ID, email)
	if err != nil {
		log.Error("failed to create checkout session",
			slog.String("member_id", memberID),
			slog.Any("error", err),
		)
		return "", ErrCheckoutFailed
	}

	// 3. Book the pending payment so the webhook has something to settle.
	payment := domain.Payment{
		ID:            idx.New().String(),
		MemberID:      member.ID,
		AmountCents:   amountCents,
		Currency:      "usd",
		Type:          domain.PaymentAnnualDues,
		Status:        domain.PaymentPending,
		StripeSession: sessionID,
	}
	if err := s.Store.Payments().CreatePayment(ctx, payment); err != nil {
		return "", err
	}

	log.Info("checkout session started",
		slog.String("payment_id", payment.ID),
		slog.String("member_id", member.ID),
		slog.String("session_id", sessionID),
	)

	return url, nil
}

// StartCheckoutForUser resolves the caller's own member profile and opens a
// checkout session for it.
func (s *DuesService) StartCheckoutForUser(ctx context.Context, userID string) (string, error) {
	member, err := s.Store.Members().GetMemberByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}
	return s.StartCheckout(ctx, member.ID)
}

// SettleCheckout resolves a pending checkout payment from a processor
// webhook. A successful settlement restores the member's standing and clears
// any removal mark in the same transaction.
func (s *DuesService) SettleCheckout(ctx context.Context, sessionID string, succeeded bool) error {
	log := slogx.FromContext(ctx)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		payment, err := tx.Payments().GetPaymentByStripeSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.Status != domain.PaymentPending {
			// Webhooks redeliver; a settled payment stays settled.
			log.Debug("checkout already settled",
				slog.String("payment_id", payment.ID),
				slog.String("status", string(payment.Status)),
			)
			return nil
		}

		if !succeeded {
			if err := tx.Payments().UpdatePaymentStatus(ctx, payment.ID, domain.PaymentFailed, nil); err != nil {
				return err
			}
			log.Warn("checkout payment failed",
				slog.String("payment_id", payment.ID),
				slog.String("member_id", payment.MemberID),
			)
			return nil
		}

		now := time.Now().UTC()
		if err := tx.Payments().UpdatePaymentStatus(ctx, payment.ID, domain.PaymentPaid, &now); err != nil {
			return err
		}
		payment.Status = domain.PaymentPaid
		payment.PaidAt = &now

		member, err := tx.Members().GetMemberByID(ctx, payment.MemberID)
		if err != nil {
			return err
		}

		log.Info("checkout payment settled",
			slog.String("payment_id", payment.ID),
			slog.String("member_id", member.ID),
			slog.Int64("amount_cents", payment.AmountCents),
		)

		return settleStanding(ctx, tx, member, payment)
	})
}

// ListPayments returns a member's payment history.
func (s *DuesService) ListPayments(ctx context.Context, memberID string) ([]domain.Payment, error) {
	return s.Store.Payments().ListPaymentsByMember(ctx, memberID)
}

// settleStanding applies a settled payment to the member's standing: dues
// become current, the status follows, and any removal mark is cleared.
func settleStanding(ctx context.Context, tx store.Tx, member domain.Member, payment domain.Payment) error {
	if !payment.CountsTowardDues() {
		return nil
	}

	status := domain.DeriveStatus(member.Status, true)
	if err := tx.Members().UpdateStanding(ctx, member.ID, status, true); err != nil {
		return err
	}
	if member.MarkedForRemovalAt != nil {
		if err := tx.Members().ClearRemovalMark(ctx, member.ID); err != nil {
			return err
		}
	}
	return nil
}
