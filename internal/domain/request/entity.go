package request

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Type string

const (
	TypeLeave     Type = "LEAVE"
	TypeChangeOff Type = "CHANGEOFF"
)

func (t Type) Valid() bool {
	return t == TypeLeave || t == TypeChangeOff
}

// Reason categorizes LEAVE-type requests. CHANGEOFF-type requests always
// carry ReasonChangeOff.
type Reason string

const (
	ReasonPersonal    Reason = "PERSONAL"
	ReasonSick        Reason = "SICK"
	ReasonChangeOff   Reason = "CHANGEOFF"
	ReasonUnpaidLeave Reason = "UNPAID_LEAVE"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonPersonal, ReasonSick, ReasonChangeOff, ReasonUnpaidLeave:
		return true
	}
	return false
}

type Status string

const (
	StatusPendingManager Status = "PENDING_MANAGER"
	StatusPendingHR      Status = "PENDING_HR"
	StatusApproved       Status = "APPROVED"
	StatusRejected       Status = "REJECTED"
)

// Terminal reports whether the status admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ActivityEntry is one day of a change-off activity log. Times are "HH:MM";
// an end before the start means the activity crossed midnight.
type ActivityEntry struct {
	Day         int    `json:"day"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

// ActivityLog is stored as JSONB on the request row.
type ActivityLog []ActivityEntry

// Value implements driver.Valuer for database storage
func (a ActivityLog) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *ActivityLog) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ActivityLog: invalid type")
	}

	return json.Unmarshal(bytes, a)
}

// Request entity. Immutable after submission except for the status and
// decision fields; the ledger is never touched before final HR approval.
type Request struct {
	ID     string
	UserID string
	Type   Type

	StartDate time.Time
	EndDate   time.Time

	Reason Reason
	Note   *string

	// CHANGEOFF payload. ChangeOffDays is fixed at submission by the
	// accrual calculator; HR approval credits this stored value and never
	// recomputes it from the activity log.
	Hours         float64
	ChangeOffDays int
	Activities    ActivityLog
	Location      *string
	PIC           *string

	Status         Status
	AttachmentPath *string

	ManagerID        *string
	ManagerDecidedAt *time.Time
	HRID             *string
	HRDecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for display and authorization
	OwnerName      *string
	OwnerEmail     *string
	OwnerDivision  *string
	OwnerManagerID *string
}

// Days is the inclusive span length the ledger is charged for.
func (r Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// LegacyDays is the superseded hours-divided-by-eight figure, shown so
// long-tenured staff can reconcile old payslips. It never reaches the
// ledger; approvals credit ChangeOffDays.
func (r Request) LegacyDays() int {
	return int(r.Hours / 8)
}
