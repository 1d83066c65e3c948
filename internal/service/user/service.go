package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/database"
)

type Service interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context, activeOnly bool) ([]user.User, error)
	ListManagers(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, reassignTo *string) error
	ReassignReports(ctx context.Context, fromID string, toID *string) (int64, error)
}

type ServiceImpl struct {
	tx       database.TxRunner
	userRepo user.UserRepository
}

func NewService(tx database.TxRunner, userRepo user.UserRepository) Service {
	return &ServiceImpl{tx: tx, userRepo: userRepo}
}

// Create provisions a user. The manager reference, when given, must point
// at an active MANAGER or HR_ADMIN.
func (s *ServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, *req.ManagerID); err != nil {
			return user.User{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	sickBalance := user.DefaultSickBalance
	if req.SickBalance != nil {
		sickBalance = *req.SickBalance
	}

	u := user.User{
		Email:         req.Email,
		Name:          req.Name,
		Role:          user.Role(req.Role),
		PasswordHash:  string(hash),
		ManagerID:     req.ManagerID,
		Division:      req.Division,
		JoinDate:      parseDatePtr(req.JoinDate),
		ProbationDate: parseDatePtr(req.ProbationDate),
		PermanentDate: parseDatePtr(req.PermanentDate),
		SickBalance:   sickBalance,
		NIK:           req.NIK,
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		return user.User{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	return s.userRepo.List(ctx, activeOnly)
}

func (s *ServiceImpl) ListManagers(ctx context.Context) ([]user.User, error) {
	return s.userRepo.ListManagers(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if req.ClearManager {
		u.ManagerID = nil
	} else if req.ManagerID != nil {
		if *req.ManagerID == u.ID {
			return user.User{}, user.ErrManagerRoleMismatch
		}
		if err := s.checkManager(ctx, *req.ManagerID); err != nil {
			return user.User{}, err
		}
		u.ManagerID = req.ManagerID
	}
	if req.Division != nil {
		u.Division = req.Division
	}
	if req.JoinDate != nil {
		u.JoinDate = parseDatePtr(req.JoinDate)
	}
	if req.ProbationDate != nil {
		u.ProbationDate = parseDatePtr(req.ProbationDate)
	}
	if req.PermanentDate != nil {
		u.PermanentDate = parseDatePtr(req.PermanentDate)
	}
	if req.SickBalance != nil {
		u.SickBalance = *req.SickBalance
	}
	if req.NIK != nil {
		u.NIK = req.NIK
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return s.userRepo.GetByID(ctx, req.ID)
}

// Deactivate soft-deletes a user. Their reports are detached and must be
// reassigned before they can submit again.
func (s *ServiceImpl) Deactivate(ctx context.Context, id string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.userRepo.Deactivate(ctx, id)
	})
	if err != nil {
		return err
	}
	slog.Info("user deactivated", "user_id", id)
	return nil
}

// Delete hard-deletes a user without history. Users who own requests or
// quotas can only be deactivated; reports are handed to reassignTo (or
// detached) in the same transaction.
func (s *ServiceImpl) Delete(ctx context.Context, id string, reassignTo *string) error {
	if reassignTo != nil {
		if err := s.checkManager(ctx, *reassignTo); err != nil {
			return err
		}
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		owned, err := s.userRepo.HasOwnedRecords(ctx, id)
		if err != nil {
			return fmt.Errorf("check owned records: %w", err)
		}
		if owned {
			return user.ErrUserHasRecords
		}

		moved, err := s.userRepo.ReassignReports(ctx, id, reassignTo)
		if err != nil {
			return fmt.Errorf("reassign reports: %w", err)
		}
		if moved > 0 {
			slog.Info("reports reassigned", "from", id, "count", moved)
		}

		return s.userRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

// ReassignReports hands every report of fromID to toID, or detaches them
// when toID is nil. Used on its own when a manager changes teams, and by
// Delete before the row goes away.
func (s *ServiceImpl) ReassignReports(ctx context.Context, fromID string, toID *string) (int64, error) {
	if toID != nil {
		if err := s.checkManager(ctx, *toID); err != nil {
			return 0, err
		}
	}

	moved, err := s.userRepo.ReassignReports(ctx, fromID, toID)
	if err != nil {
		return 0, fmt.Errorf("reassign reports: %w", err)
	}

	slog.Info("reports reassigned", "from", fromID, "count", moved)
	return moved, nil
}

func (s *ServiceImpl) checkManager(ctx context.Context, managerID string) error {
	m, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if !m.IsActive {
		return user.ErrUserInactive
	}
	if m.Role != user.RoleManager && m.Role != user.RoleHRAdmin {
		return user.ErrManagerRoleMismatch
	}
	return nil
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
