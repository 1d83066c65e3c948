package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/domain/request"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

type Service interface {
	Submit(ctx context.Context, userID string, req request.SubmitRequest) (request.Request, error)
	GetByID(ctx context.Context, requesterID string, requesterRole user.Role, id string) (request.Request, error)
	ListMine(ctx context.Context, userID string) ([]request.Request, error)
	ListPendingForManager(ctx context.Context, managerID string) ([]request.Request, error)
	ListPendingForHR(ctx context.Context) ([]request.Request, error)
	ManagerDecide(ctx context.Context, managerID, requestID string, approve bool) (request.Request, error)
	HRDecide(ctx context.Context, hrID, requestID string, approve bool) (request.Request, error)
}

type ServiceImpl struct {
	tx          database.TxRunner
	requestRepo request.RequestRepository
	quotaRepo   quota.QuotaRepository
	userRepo    user.UserRepository
}

func NewService(
	tx database.TxRunner,
	requestRepo request.RequestRepository,
	quotaRepo quota.QuotaRepository,
	userRepo user.UserRepository,
) Service {
	return &ServiceImpl{
		tx:          tx,
		requestRepo: requestRepo,
		quotaRepo:   quotaRepo,
		userRepo:    userRepo,
	}
}

// Submit validates the payload, runs the submission-time balance checks
// and creates the row in PENDING_MANAGER. The quota ledger is not touched
// here except for the sick-balance deduction, which happens at submission
// by policy. A failed check creates no row.
func (s *ServiceImpl) Submit(ctx context.Context, userID string, req request.SubmitRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return request.Request{}, fmt.Errorf("get requester: %w", err)
	}
	if !owner.IsActive {
		return request.Request{}, user.ErrUserInactive
	}
	if owner.ManagerID == nil {
		return request.Request{}, user.ErrNoManagerAssigned
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if endDate.Before(startDate) {
		return request.Request{}, request.ErrInvalidDates
	}

	row := request.Request{
		UserID:         userID,
		Type:           request.Type(req.Type),
		StartDate:      startDate,
		EndDate:        endDate,
		Note:           req.Note,
		Status:         request.StatusPendingManager,
		AttachmentPath: req.AttachmentPath,
	}

	days := row.Days()
	year := startDate.Year()

	var deductSick int

	switch row.Type {
	case request.TypeLeave:
		row.Reason = request.Reason(req.Reason)

		switch row.Reason {
		case request.ReasonPersonal:
			q, err := s.quotaRepo.GetOrCreate(ctx, userID, year)
			if err != nil {
				return request.Request{}, fmt.Errorf("get quota: %w", err)
			}
			if q.LeaveBalance() < days {
				return request.Request{}, request.ErrInsufficientBalance
			}
		case request.ReasonChangeOff:
			q, err := s.quotaRepo.GetOrCreate(ctx, userID, year)
			if err != nil {
				return request.Request{}, fmt.Errorf("get quota: %w", err)
			}
			if q.ChangeOffBalance() < days {
				return request.Request{}, request.ErrInsufficientBalance
			}
		case request.ReasonSick:
			if req.HasDoctorNote {
				if req.AttachmentPath == nil {
					return request.Request{}, request.ErrMissingAttachment
				}
			} else {
				// Deducted inside the same transaction as the insert so a
				// guard failure leaves no row behind.
				if owner.SickBalance < days {
					return request.Request{}, user.ErrInsufficientSickBalance
				}
				deductSick = days
			}
		case request.ReasonUnpaidLeave:
			// No balance to check; unpaid leave never reaches the ledger.
		}

	case request.TypeChangeOff:
		if req.AttachmentPath == nil {
			return request.Request{}, request.ErrMissingAttachment
		}
		row.Reason = request.ReasonChangeOff
		row.Activities = req.Activities
		row.Location = req.Location
		row.PIC = req.PIC

		acc, err := CalculateAccrual(req.Activities)
		if err != nil {
			return request.Request{}, err
		}
		row.Hours = acc.TotalHours
		row.ChangeOffDays = acc.Days
	}

	var created request.Request
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if deductSick > 0 {
			if err := s.userRepo.DeductSickBalance(ctx, userID, deductSick); err != nil {
				return err
			}
		}
		var err error
		created, err = s.requestRepo.Create(ctx, row)
		return err
	})
	if err != nil {
		return request.Request{}, err
	}

	slog.Info("request submitted",
		"request_id", created.ID,
		"user_id", userID,
		"type", created.Type,
		"reason", created.Reason,
		"days", days)
	return created, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, requesterID string, requesterRole user.Role, id string) (request.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return request.Request{}, err
	}

	switch requesterRole {
	case user.RoleHRAdmin:
		// HR sees everything.
	case user.RoleManager:
		if req.UserID != requesterID &&
			(req.OwnerManagerID == nil || *req.OwnerManagerID != requesterID) {
			return request.Request{}, request.ErrNotAuthorized
		}
	default:
		if req.UserID != requesterID {
			return request.Request{}, request.ErrNotAuthorized
		}
	}
	return req, nil
}

func (s *ServiceImpl) ListMine(ctx context.Context, userID string) ([]request.Request, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

func (s *ServiceImpl) ListPendingForManager(ctx context.Context, managerID string) ([]request.Request, error) {
	return s.requestRepo.ListPendingForManager(ctx, managerID)
}

func (s *ServiceImpl) ListPendingForHR(ctx context.Context) ([]request.Request, error) {
	return s.requestRepo.ListPendingForHR(ctx)
}

// ManagerDecide moves PENDING_MANAGER to PENDING_HR on approval or
// REJECTED on rejection. Only the owner's assigned manager may decide,
// and a manager never decides their own request.
func (s *ServiceImpl) ManagerDecide(ctx context.Context, managerID, requestID string, approve bool) (request.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}

	if req.UserID == managerID {
		return request.Request{}, request.ErrNotAuthorized
	}
	if req.OwnerManagerID == nil || *req.OwnerManagerID != managerID {
		return request.Request{}, request.ErrNotAuthorized
	}
	if req.Status != request.StatusPendingManager {
		return request.Request{}, request.ErrInvalidState
	}

	to := request.StatusPendingHR
	if !approve {
		to = request.StatusRejected
	}

	ok, err := s.requestRepo.SetManagerDecision(ctx, requestID, to, managerID, time.Now().UTC())
	if err != nil {
		return request.Request{}, fmt.Errorf("set manager decision: %w", err)
	}
	if !ok {
		// Lost the race to another decision.
		return request.Request{}, request.ErrInvalidState
	}

	slog.Info("manager decision recorded",
		"request_id", requestID,
		"manager_id", managerID,
		"status", to)
	return s.requestRepo.GetByID(ctx, requestID)
}

// HRDecide finalizes a PENDING_HR request. Approval and the ledger
// mutation commit in one transaction; the guarded status update makes the
// mutation happen exactly once even under concurrent deciders.
func (s *ServiceImpl) HRDecide(ctx context.Context, hrID, requestID string, approve bool) (request.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if req.Status != request.StatusPendingHR {
		return request.Request{}, request.ErrInvalidState
	}

	to := request.StatusApproved
	if !approve {
		to = request.StatusRejected
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.requestRepo.SetHRDecision(ctx, requestID, to, hrID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("set hr decision: %w", err)
		}
		if !ok {
			return request.ErrInvalidState
		}

		if !approve {
			return nil
		}

		delta := approvalDelta(req)
		if delta.IsZero() {
			return nil
		}

		year := req.StartDate.Year()
		if _, err := s.quotaRepo.GetOrCreate(ctx, req.UserID, year); err != nil {
			return fmt.Errorf("get quota: %w", err)
		}
		if _, err := s.quotaRepo.ApplyDelta(ctx, req.UserID, year, delta); err != nil {
			if err == quota.ErrInvalidDelta {
				// Submission-time checks should have caught this; the
				// rollback keeps the request pending for manual review.
				slog.Error("ledger rejected approval delta",
					"request_id", requestID,
					"user_id", req.UserID,
					"year", year)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return request.Request{}, err
	}

	slog.Info("hr decision recorded",
		"request_id", requestID,
		"hr_id", hrID,
		"status", to)
	return s.requestRepo.GetByID(ctx, requestID)
}

// approvalDelta maps an approved request onto its single ledger mutation.
func approvalDelta(req request.Request) quota.Delta {
	switch req.Type {
	case request.TypeChangeOff:
		return quota.Delta{ChangeOffEarned: req.ChangeOffDays}
	case request.TypeLeave:
		switch req.Reason {
		case request.ReasonPersonal:
			return quota.Delta{LeaveUsed: req.Days()}
		case request.ReasonChangeOff:
			return quota.Delta{ChangeOffUsed: req.Days()}
		}
	}
	// SICK and UNPAID_LEAVE approvals never touch the ledger.
	return quota.Delta{}
}
