package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

type quotaRepositoryImpl struct {
	db *database.DB
}

func NewQuotaRepository(db *database.DB) quota.QuotaRepository {
	return &quotaRepositoryImpl{db: db}
}

const quotaColumns = `id, user_id, year, leave_total, leave_used,
	changeoff_earned, changeoff_used, created_at, updated_at`

func scanQuota(row pgx.Row) (quota.Quota, error) {
	var q quota.Quota
	err := row.Scan(
		&q.ID,
		&q.UserID,
		&q.Year,
		&q.LeaveTotal,
		&q.LeaveUsed,
		&q.ChangeOffEarned,
		&q.ChangeOffUsed,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	return q, err
}

func (r *quotaRepositoryImpl) GetOrCreate(ctx context.Context, userID string, year int) (quota.Quota, error) {
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT DO NOTHING keeps concurrent first accesses from racing;
	// the follow-up select reads whichever insert won.
	insertQuery := `
		INSERT INTO quotas (id, user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, 0, 0, 0, NOW(), NOW())
		ON CONFLICT (user_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insertQuery, userID, year, quota.DefaultLeaveTotal); err != nil {
		return quota.Quota{}, err
	}

	return r.Get(ctx, userID, year)
}

func (r *quotaRepositoryImpl) Get(ctx context.Context, userID string, year int) (quota.Quota, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + quotaColumns + ` FROM quotas WHERE user_id = $1 AND year = $2`

	row, err := scanQuota(q.QueryRow(ctx, query, userID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return quota.Quota{}, quota.ErrQuotaNotFound
		}
		return quota.Quota{}, err
	}
	return row, nil
}

func (r *quotaRepositoryImpl) ApplyDelta(ctx context.Context, userID string, year int, delta quota.Delta) (quota.Quota, error) {
	q := GetQuerier(ctx, r.db)

	// One guarded update: the WHERE clause re-checks the balances so a
	// delta that would drive any counter negative or past its cap matches
	// nothing instead of corrupting the ledger.
	query := `
		UPDATE quotas
		SET leave_used = leave_used + $1,
			changeoff_earned = changeoff_earned + $2,
			changeoff_used = changeoff_used + $3,
			updated_at = NOW()
		WHERE user_id = $4 AND year = $5
			AND leave_used + $1 >= 0
			AND leave_used + $1 <= leave_total
			AND changeoff_earned + $2 >= 0
			AND changeoff_used + $3 >= 0
			AND changeoff_used + $3 <= changeoff_earned + $2
		RETURNING ` + quotaColumns

	row, err := scanQuota(q.QueryRow(ctx, query,
		delta.LeaveUsed,
		delta.ChangeOffEarned,
		delta.ChangeOffUsed,
		userID,
		year,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return quota.Quota{}, quota.ErrInvalidDelta
		}
		return quota.Quota{}, err
	}
	return row, nil
}

func (r *quotaRepositoryImpl) IncrementAll(ctx context.Context, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// Create missing rows first so new hires get the month's day too.
	seedQuery := `
		INSERT INTO quotas (id, user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used, created_at, updated_at)
		SELECT uuidv7(), u.id, $1, $2, 0, 0, 0, NOW(), NOW()
		FROM users u
		WHERE u.is_active = TRUE
		ON CONFLICT (user_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, seedQuery, year, quota.DefaultLeaveTotal); err != nil {
		return 0, err
	}

	commandTag, err := q.Exec(ctx, `
		UPDATE quotas
		SET leave_total = leave_total + 1, updated_at = NOW()
		WHERE year = $1
	`, year)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

func (r *quotaRepositoryImpl) ResetAll(ctx context.Context, year, leaveTotal, changeOffEarned int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE quotas
		SET leave_total = $1, leave_used = 0,
			changeoff_earned = $2, changeoff_used = 0,
			updated_at = NOW()
		WHERE year = $3
	`, leaveTotal, changeOffEarned, year)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

func (r *quotaRepositoryImpl) Summary(ctx context.Context, year int) ([]quota.SummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email, u.division, u.nik, u.sick_balance,
			   COALESCE(q.leave_total, $2), COALESCE(q.leave_used, 0),
			   COALESCE(q.changeoff_earned, 0), COALESCE(q.changeoff_used, 0)
		FROM users u
		LEFT JOIN quotas q ON q.user_id = u.id AND q.year = $1
		WHERE u.is_active = TRUE
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, year, quota.DefaultLeaveTotal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []quota.SummaryRow
	for rows.Next() {
		var row quota.SummaryRow
		err := rows.Scan(
			&row.UserID,
			&row.UserName,
			&row.UserEmail,
			&row.Division,
			&row.NIK,
			&row.SickBalance,
			&row.LeaveTotal,
			&row.LeaveUsed,
			&row.ChangeOffEarned,
			&row.ChangeOffUsed,
		)
		if err != nil {
			return nil, err
		}
		row.Year = year
		row.LeaveBalance = row.LeaveTotal - row.LeaveUsed
		row.ChangeOffBalance = row.ChangeOffEarned - row.ChangeOffUsed
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

func (r *quotaRepositoryImpl) MarkJobRun(ctx context.Context, name string, now time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Upsert guarded on the calendar month of the previous run: the update
	// arm matches only when the stored marker is from an earlier month, so
	// exactly one caller per month observes RowsAffected() == 1.
	query := `
		INSERT INTO job_runs (name, last_run_at)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET last_run_at = EXCLUDED.last_run_at
		WHERE date_trunc('month', job_runs.last_run_at) < date_trunc('month', EXCLUDED.last_run_at)
	`

	commandTag, err := q.Exec(ctx, query, name, now.UTC())
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}
