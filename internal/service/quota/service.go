package quota

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

const monthlyIncrementJob = "monthly_leave_increment"

type Service interface {
	Balance(ctx context.Context, userID string, year int) (quota.Balance, error)
	ApplyDelta(ctx context.Context, userID string, year int, delta quota.Delta) (quota.Quota, error)
	BulkAdjust(ctx context.Context, req quota.BulkAdjustRequest) (quota.BulkAdjustResponse, error)
	Summary(ctx context.Context, year int) ([]quota.SummaryRow, error)
	RunMonthlyIncrement(ctx context.Context) error
}

type ServiceImpl struct {
	tx        database.TxRunner
	quotaRepo quota.QuotaRepository
	userRepo  user.UserRepository

	// Single-flight for the monthly job inside one process; the job_runs
	// marker guards across processes.
	incrementMu sync.Mutex
}

func NewService(tx database.TxRunner, quotaRepo quota.QuotaRepository, userRepo user.UserRepository) Service {
	return &ServiceImpl{
		tx:        tx,
		quotaRepo: quotaRepo,
		userRepo:  userRepo,
	}
}

// Balance returns the derived view for one (user, year), creating the
// ledger row on first access. Sick balance comes off the user row.
func (s *ServiceImpl) Balance(ctx context.Context, userID string, year int) (quota.Balance, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return quota.Balance{}, fmt.Errorf("get user: %w", err)
	}

	q, err := s.quotaRepo.GetOrCreate(ctx, userID, year)
	if err != nil {
		return quota.Balance{}, fmt.Errorf("get quota: %w", err)
	}

	return quota.Balance{
		Year:             year,
		LeaveTotal:       q.LeaveTotal,
		LeaveUsed:        q.LeaveUsed,
		LeaveBalance:     q.LeaveBalance(),
		ChangeOffEarned:  q.ChangeOffEarned,
		ChangeOffUsed:    q.ChangeOffUsed,
		ChangeOffBalance: q.ChangeOffBalance(),
		SickBalance:      u.SickBalance,
	}, nil
}

// ApplyDelta is the manual-correction path for HR. It shares the guarded
// repository update with the approval flow, so a correction can no more
// drive a balance negative than an approval can.
func (s *ServiceImpl) ApplyDelta(ctx context.Context, userID string, year int, delta quota.Delta) (quota.Quota, error) {
	if delta.IsZero() {
		return s.quotaRepo.GetOrCreate(ctx, userID, year)
	}

	if _, err := s.quotaRepo.GetOrCreate(ctx, userID, year); err != nil {
		return quota.Quota{}, fmt.Errorf("get quota: %w", err)
	}

	q, err := s.quotaRepo.ApplyDelta(ctx, userID, year, delta)
	if err != nil {
		if err == quota.ErrInvalidDelta {
			slog.Warn("manual quota delta rejected",
				"user_id", userID,
				"year", year,
				"leave_used", delta.LeaveUsed,
				"changeoff_earned", delta.ChangeOffEarned,
				"changeoff_used", delta.ChangeOffUsed)
		}
		return quota.Quota{}, err
	}
	return q, nil
}

// BulkAdjust applies one of the year-wide maintenance modes.
func (s *ServiceImpl) BulkAdjust(ctx context.Context, req quota.BulkAdjustRequest) (quota.BulkAdjustResponse, error) {
	if err := req.Validate(); err != nil {
		return quota.BulkAdjustResponse{}, err
	}

	var count int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		switch quota.AdjustMode(req.Mode) {
		case quota.AdjustIncrementAll:
			count, err = s.quotaRepo.IncrementAll(ctx, req.Year)
		case quota.AdjustResetZero:
			count, err = s.quotaRepo.ResetAll(ctx, req.Year, 0, 0)
		case quota.AdjustResetDefault:
			leaveTotal := quota.DefaultLeaveTotal
			if req.LeaveTotal != nil {
				leaveTotal = *req.LeaveTotal
			}
			changeOffEarned := 0
			if req.ChangeOffEarned != nil {
				changeOffEarned = *req.ChangeOffEarned
			}
			count, err = s.quotaRepo.ResetAll(ctx, req.Year, leaveTotal, changeOffEarned)
		}
		return err
	})
	if err != nil {
		return quota.BulkAdjustResponse{}, err
	}

	slog.Info("bulk quota adjustment applied",
		"mode", req.Mode,
		"year", req.Year,
		"updated", count)
	return quota.BulkAdjustResponse{UpdatedCount: count}, nil
}

func (s *ServiceImpl) Summary(ctx context.Context, year int) ([]quota.SummaryRow, error) {
	return s.quotaRepo.Summary(ctx, year)
}

// RunMonthlyIncrement adds one leave day to every active user's current-year
// quota, at most once per calendar month. The job_runs marker decides which
// invocation wins; everyone else is a no-op.
func (s *ServiceImpl) RunMonthlyIncrement(ctx context.Context) error {
	s.incrementMu.Lock()
	defer s.incrementMu.Unlock()

	now := time.Now().UTC()
	year := now.Year()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		won, err := s.quotaRepo.MarkJobRun(ctx, monthlyIncrementJob, now)
		if err != nil {
			return fmt.Errorf("mark job run: %w", err)
		}
		if !won {
			slog.Debug("monthly increment already ran this month")
			return nil
		}

		count, err := s.quotaRepo.IncrementAll(ctx, year)
		if err != nil {
			return fmt.Errorf("increment quotas: %w", err)
		}

		slog.Info("monthly leave increment applied",
			"year", year,
			"month", int(now.Month()),
			"updated", count)
		return nil
	})
}
