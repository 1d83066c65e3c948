package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHRAdmin  Role = "HR_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHRAdmin:
		return true
	}
	return false
}

// DefaultSickBalance is the yearly allowance of sick days taken without a
// doctor note. It lives on the user row, not the quota ledger.
const DefaultSickBalance = 6

// User entity
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string

	// Weak reference to the approving manager; HR may leave it unset.
	ManagerID *string
	Division  *string

	JoinDate      *time.Time
	ProbationDate *time.Time
	PermanentDate *time.Time

	SickBalance int
	NIK         *string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for display
	ManagerName *string
}
