package user

import "context"

// UserRepository - interface for the users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, activeOnly bool) ([]User, error)
	ListManagers(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error

	// Deactivate soft-deletes: clears is_active and detaches the user's reports.
	Deactivate(ctx context.Context, id string) error
	// Delete hard-deletes the row; callers are responsible for the
	// referential checks and for detaching reports and decider references.
	Delete(ctx context.Context, id string) error
	HasOwnedRecords(ctx context.Context, id string) (bool, error)
	ReassignReports(ctx context.Context, oldManagerID string, newManagerID *string) (int64, error)

	// DeductSickBalance decrements sick_balance by days, failing with
	// ErrInsufficientSickBalance when the guard leaves it negative.
	DeductSickBalance(ctx context.Context, id string, days int) error
}
