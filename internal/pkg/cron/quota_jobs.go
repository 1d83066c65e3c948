package cron

import (
	"context"
	"time"
)

// MonthlyIncrementer runs the monthly leave top-up. The implementation
// guards against double runs within the same calendar month.
type MonthlyIncrementer interface {
	RunMonthlyIncrement(ctx context.Context) error
}

// QuotaJobs contains quota-related cron jobs
type QuotaJobs struct {
	quotaService MonthlyIncrementer
}

// NewQuotaJobs creates quota cron jobs
func NewQuotaJobs(quotaService MonthlyIncrementer) *QuotaJobs {
	return &QuotaJobs{
		quotaService: quotaService,
	}
}

// RegisterJobs registers all quota-related cron jobs
func (j *QuotaJobs) RegisterJobs(scheduler *Scheduler) {
	// The job itself is idempotent per calendar month, so an hourly
	// interval only decides how quickly a restart catches up.
	scheduler.AddJob(
		"monthly_leave_increment",
		1*time.Hour,
		j.RunMonthlyLeaveIncrement,
	)
}

// RunMonthlyLeaveIncrement adds one leave day to every employee's quota
// for the current year, at most once per calendar month.
func (j *QuotaJobs) RunMonthlyLeaveIncrement(ctx context.Context) error {
	return j.quotaService.RunMonthlyIncrement(ctx)
}
