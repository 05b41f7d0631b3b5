package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
)

const memberCols = `id, user_id, member_number, status, dues_current, phone,
	line_name, line_number, marked_for_removal_at, removal_reason, created_at, updated_at`

type membersRepo struct {
	db dbtx
}

func scanMember(row interface{ Scan(...any) error }) (domain.Member, error) {
	var (
		m            domain.Member
		userID       sql.NullString
		memberNumber sql.NullString
		markedAt     sql.NullTime
	)
	err := row.Scan(
		&m.ID, &userID, &memberNumber, &m.Status, &m.DuesCurrent, &m.Phone,
		&m.LineName, &m.LineNumber, &markedAt, &m.RemovalReason,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	m.UserID = mapNullString(userID)
	m.MemberNumber = mapNullString(memberNumber)
	m.MarkedForRemovalAt = mapNullTimePtr(markedAt)
	return m, nil
}

func (r *membersRepo) CreateMember(ctx context.Context, m domain.Member) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, user_id, member_number, status, dues_current, phone,
			line_name, line_number, marked_for_removal_at, removal_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, mapStringNull(m.UserID), mapStringNull(m.MemberNumber), m.Status, m.DuesCurrent,
		m.Phone, m.LineName, m.LineNumber, mapOptionalTime(m.MarkedForRemovalAt), m.RemovalReason,
		now, now,
	)
	return mapConstraint(err)
}

func (r *membersRepo) GetMemberByID(ctx context.Context, id string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) GetMemberByUserID(ctx context.Context, userID string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM members WHERE user_id = ?`, userID)
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) GetMemberByNumber(ctx context.Context, memberNumber string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM members WHERE member_number = ?`, memberNumber)
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) ListMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberCols+` FROM members ORDER BY member_number, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

func (r *membersRepo) ListMarkedForRemoval(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberCols+` FROM members
		WHERE marked_for_removal_at IS NOT NULL
		ORDER BY marked_for_removal_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

func collectMembers(rows *sql.Rows) ([]domain.Member, error) {
	var out []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membersRepo) UpdateStanding(ctx context.Context, memberID string, status domain.Status, duesCurrent bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members SET status = ?, dues_current = ?, updated_at = ? WHERE id = ?`,
		status, duesCurrent, time.Now().UTC(), memberID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *membersRepo) SetRemovalMark(ctx context.Context, memberID string, at time.Time, reason string) (bool, error) {
	// Conditional on the mark being unset so re-marking never resets the clock.
	res, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET marked_for_removal_at = ?, removal_reason = ?, updated_at = ?
		WHERE id = ? AND marked_for_removal_at IS NULL`,
		at.UTC(), reason, time.Now().UTC(), memberID,
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

func (r *membersRepo) ClearRemovalMark(ctx context.Context, memberID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET marked_for_removal_at = NULL, removal_reason = '', updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), memberID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *membersRepo) LinkUser(ctx context.Context, memberID string, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members SET user_id = ?, updated_at = ? WHERE id = ?`,
		mapStringNull(userID), time.Now().UTC(), memberID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *membersRepo) SetMemberNumber(ctx context.Context, memberID string, memberNumber string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members SET member_number = ?, updated_at = ? WHERE id = ?`,
		memberNumber, time.Now().UTC(), memberID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *membersRepo) UpdateContact(ctx context.Context, memberID string, phone, lineName, lineNumber string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members SET phone = ?, line_name = ?, line_number = ?, updated_at = ?
		WHERE id = ?`,
		phone, lineName, lineNumber, time.Now().UTC(), memberID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *membersRepo) DeleteMember(ctx context.Context, memberID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, memberID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
