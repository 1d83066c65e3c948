package request

import (
	"context"
	"time"
)

// RequestRepository - interface for the requests table
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)

	// GetByID joins the owning user so callers get display fields and the
	// owner's manager reference for authorization.
	GetByID(ctx context.Context, id string) (Request, error)

	ListByUser(ctx context.Context, userID string) ([]Request, error)
	ListPendingForManager(ctx context.Context, managerID string) ([]Request, error)
	ListPendingForHR(ctx context.Context) ([]Request, error)

	// SetManagerDecision moves PENDING_MANAGER → to with a status-guarded
	// update; false means the guard matched no row (already decided or a
	// lost race) and must surface as ErrInvalidState.
	SetManagerDecision(ctx context.Context, id string, to Status, managerID string, at time.Time) (bool, error)
	// SetHRDecision is the PENDING_HR analogue.
	SetHRDecision(ctx context.Context, id string, to Status, hrID string, at time.Time) (bool, error)

	// SumApprovedDays totals inclusive days across approved requests of the
	// given type+reason for a (user, year), for reconciling the ledger's
	// used counters against the request history.
	SumApprovedDays(ctx context.Context, userID string, year int, t Type, reason Reason) (int, error)
}
