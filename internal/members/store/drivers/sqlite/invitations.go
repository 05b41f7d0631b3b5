package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
)

const invitationCols = `id, code, email, first_name, last_name, member_number,
	used, used_by, used_at, created_by, expires_at, notes, created_at, updated_at`

type invitationsRepo struct {
	db dbtx
}

func scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var (
		inv       domain.Invitation
		usedBy    sql.NullString
		usedAt    sql.NullTime
		expiresAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.Code, &inv.Email, &inv.FirstName, &inv.LastName, &inv.MemberNumber,
		&inv.Used, &usedBy, &usedAt, &inv.CreatedBy, &expiresAt, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.UsedBy = mapNullString(usedBy)
	inv.UsedAt = mapNullTimePtr(usedAt)
	inv.ExpiresAt = mapNullTimePtr(expiresAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (id, code, email, first_name, last_name, member_number,
			created_by, expires_at, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Code, inv.Email, inv.FirstName, inv.LastName, inv.MemberNumber,
		inv.CreatedBy, mapOptionalTime(inv.ExpiresAt), inv.Notes, now, now,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByCode(ctx context.Context, code string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE code = ?`, code)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE id = ?`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, includeUsed bool) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationCols + ` FROM invitations ORDER BY created_at DESC`
	if !includeUsed {
		query = `SELECT ` + invitationCols + ` FROM invitations WHERE used = 0 ORDER BY created_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) MarkInvitationUsed(ctx context.Context, invitationID string, usedByUserID string) (bool, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET used = 1, used_by = ?, used_at = ?, updated_at = ?
		WHERE id = ? AND used = 0`,
		usedByUserID, now, now, invitationID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, invitationID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, invitationID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM invitations
		WHERE used = 0 AND expires_at IS NOT NULL AND expires_at < ?`,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
