package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/request"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestSelect = `
	SELECT r.id, r.user_id, r.type, r.start_date, r.end_date, r.reason, r.note,
		   r.hours, r.changeoff_days, r.activities, r.location, r.pic,
		   r.status, r.attachment_path,
		   r.manager_id, r.manager_decided_at, r.hr_id, r.hr_decided_at,
		   r.created_at, r.updated_at,
		   u.name, u.email, u.division, u.manager_id
	FROM requests r
	INNER JOIN users u ON r.user_id = u.id
`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Note,
		&req.Hours,
		&req.ChangeOffDays,
		&req.Activities,
		&req.Location,
		&req.PIC,
		&req.Status,
		&req.AttachmentPath,
		&req.ManagerID,
		&req.ManagerDecidedAt,
		&req.HRID,
		&req.HRDecidedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.OwnerName,
		&req.OwnerEmail,
		&req.OwnerDivision,
		&req.OwnerManagerID,
	)
	return req, err
}

func (r *requestRepositoryImpl) queryRequests(ctx context.Context, query string, args ...any) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, user_id, type, start_date, end_date, reason, note,
			hours, changeoff_days, activities, location, pic,
			status, attachment_path,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13,
			NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Note,
		req.Hours,
		req.ChangeOffDays,
		req.Activities,
		req.Location,
		req.PIC,
		req.Status,
		req.AttachmentPath,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanRequest(q.QueryRow(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]request.Request, error) {
	return r.queryRequests(ctx, requestSelect+`
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`, userID)
}

func (r *requestRepositoryImpl) ListPendingForManager(ctx context.Context, managerID string) ([]request.Request, error) {
	return r.queryRequests(ctx, requestSelect+`
		WHERE r.status = $1 AND u.manager_id = $2
		ORDER BY r.created_at ASC
	`, request.StatusPendingManager, managerID)
}

func (r *requestRepositoryImpl) ListPendingForHR(ctx context.Context) ([]request.Request, error) {
	return r.queryRequests(ctx, requestSelect+`
		WHERE r.status = $1
		ORDER BY r.created_at ASC
	`, request.StatusPendingHR)
}

func (r *requestRepositoryImpl) SetManagerDecision(ctx context.Context, id string, to request.Status, managerID string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Status-guarded: a concurrent decision already moved the row off
	// PENDING_MANAGER and this update matches nothing.
	commandTag, err := q.Exec(ctx, `
		UPDATE requests
		SET status = $1, manager_id = $2, manager_decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`, to, managerID, at, id, request.StatusPendingManager)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

func (r *requestRepositoryImpl) SetHRDecision(ctx context.Context, id string, to request.Status, hrID string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE requests
		SET status = $1, hr_id = $2, hr_decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`, to, hrID, at, id, request.StatusPendingHR)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

func (r *requestRepositoryImpl) SumApprovedDays(ctx context.Context, userID string, year int, t request.Type, reason request.Reason) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(end_date - start_date + 1), 0)
		FROM requests
		WHERE user_id = $1
			AND type = $2
			AND reason = $3
			AND status = $4
			AND EXTRACT(YEAR FROM start_date) = $5
	`

	var total int
	err := q.QueryRow(ctx, query, userID, t, reason, request.StatusApproved, year).Scan(&total)
	return total, err
}
