package quota

import "time"

// DefaultLeaveTotal is the annual leave entitlement a quota row starts with
// when created lazily on first access.
const DefaultLeaveTotal = 12

// Quota is one ledger row per (user, year). The invariants
// leave_used <= leave_total and changeoff_used <= changeoff_earned hold
// after every mutation; ApplyDelta is the only mutation path approvals use.
type Quota struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Year   int    `json:"year"`

	LeaveTotal      int `json:"leave_total"`
	LeaveUsed       int `json:"leave_used"`
	ChangeOffEarned int `json:"changeoff_earned"`
	ChangeOffUsed   int `json:"changeoff_used"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q Quota) LeaveBalance() int {
	return q.LeaveTotal - q.LeaveUsed
}

func (q Quota) ChangeOffBalance() int {
	return q.ChangeOffEarned - q.ChangeOffUsed
}

// Delta is applied atomically by the ledger; a delta that would drive a
// balance negative is rejected wholesale.
type Delta struct {
	LeaveUsed       int `json:"leave_used"`
	ChangeOffEarned int `json:"changeoff_earned"`
	ChangeOffUsed   int `json:"changeoff_used"`
}

func (d Delta) IsZero() bool {
	return d.LeaveUsed == 0 && d.ChangeOffEarned == 0 && d.ChangeOffUsed == 0
}

type AdjustMode string

const (
	AdjustIncrementAll AdjustMode = "INCREMENT_ALL"
	AdjustResetZero    AdjustMode = "RESET_ZERO"
	AdjustResetDefault AdjustMode = "RESET_DEFAULT"
)

func (m AdjustMode) Valid() bool {
	switch m {
	case AdjustIncrementAll, AdjustResetZero, AdjustResetDefault:
		return true
	}
	return false
}

// Balance is the derived view handed to the UI layer. SickBalance lives on
// the user row, not the ledger.
type Balance struct {
	Year             int `json:"year"`
	LeaveTotal       int `json:"leave_total"`
	LeaveUsed        int `json:"leave_used"`
	LeaveBalance     int `json:"leave_balance"`
	ChangeOffEarned  int `json:"changeoff_earned"`
	ChangeOffUsed    int `json:"changeoff_used"`
	ChangeOffBalance int `json:"changeoff_balance"`
	SickBalance      int `json:"sick_balance"`
}

// SummaryRow is one user's balances for the HR report view.
type SummaryRow struct {
	UserID           string  `json:"user_id"`
	UserName         string  `json:"user_name"`
	UserEmail        string  `json:"user_email"`
	Division         *string `json:"division,omitempty"`
	NIK              *string `json:"nik,omitempty"`
	Year             int     `json:"year"`
	LeaveTotal       int     `json:"leave_total"`
	LeaveUsed        int     `json:"leave_used"`
	LeaveBalance     int     `json:"leave_balance"`
	ChangeOffEarned  int     `json:"changeoff_earned"`
	ChangeOffUsed    int     `json:"changeoff_used"`
	ChangeOffBalance int     `json:"changeoff_balance"`
	SickBalance      int     `json:"sick_balance"`
}
