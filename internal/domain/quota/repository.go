package quota

import (
	"context"
	"time"
)

// QuotaRepository - interface for the quotas table
type QuotaRepository interface {
	// GetOrCreate returns the (user, year) row, creating it with policy
	// defaults on first access. The unique constraint on (user_id, year)
	// backstops concurrent creation.
	GetOrCreate(ctx context.Context, userID string, year int) (Quota, error)
	Get(ctx context.Context, userID string, year int) (Quota, error)

	// ApplyDelta applies the delta in a single guarded update and fails
	// with ErrInvalidDelta when the guard matches no row.
	ApplyDelta(ctx context.Context, userID string, year int, delta Delta) (Quota, error)

	// IncrementAll adds one leave day to every user's row for the year,
	// creating missing rows, and reports how many users were touched.
	IncrementAll(ctx context.Context, year int) (int64, error)
	// ResetAll overwrites leave_total and changeoff_earned for every row of
	// the year and zeroes the used counters.
	ResetAll(ctx context.Context, year, leaveTotal, changeOffEarned int) (int64, error)

	Summary(ctx context.Context, year int) ([]SummaryRow, error)

	// MarkJobRun advances the named job's last-run marker and reports
	// whether this call won the month: false means the job already ran in
	// now's calendar month.
	MarkJobRun(ctx context.Context, name string, now time.Time) (bool, error)
}
