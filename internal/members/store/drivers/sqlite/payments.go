package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
)

const paymentCols = `id, member_id, amount_cents, currency, type, status,
	stripe_session, note, paid_at, created_at, updated_at`

type paymentsRepo struct {
	db dbtx
}

func scanPayment(row interface{ Scan(...any) error }) (domain.Payment, error) {
	var (
		p      domain.Payment
		paidAt sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.MemberID, &p.AmountCents, &p.Currency, &p.Type, &p.Status,
		&p.StripeSession, &p.Note, &paidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	p.PaidAt = mapNullTimePtr(paidAt)
	return p, nil
}

func (r *paymentsRepo) CreatePayment(ctx context.Context, p domain.Payment) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, member_id, amount_cents, currency, type, status,
			stripe_session, note, paid_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.MemberID, p.AmountCents, p.Currency, p.Type, p.Status,
		p.StripeSession, p.Note, mapOptionalTime(p.PaidAt), now, now,
	)
	return mapConstraint(err)
}

func (r *paymentsRepo) GetPaymentByID(ctx context.Context, id string) (domain.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if err != nil {
		return domain.Payment{}, mapNotFound(err)
	}
	return p, nil
}

func (r *paymentsRepo) GetPaymentByStripeSession(ctx context.Context, sessionID string) (domain.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE stripe_session = ?`, sessionID)
	p, err := scanPayment(row)
	if err != nil {
		return domain.Payment{}, mapNotFound(err)
	}
	return p, nil
}

func (r *paymentsRepo) ListPaymentsByMember(ctx context.Context, memberID string) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentCols+` FROM payments
		WHERE member_id = ? ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentsRepo) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, paidAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = ?, paid_at = ?, updated_at = ? WHERE id = ?`,
		status, mapOptionalTime(paidAt), time.Now().UTC(), paymentID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
