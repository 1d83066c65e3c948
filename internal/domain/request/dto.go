package request

import (
	"time"

	"github.com/kita-hr/leave-backend-go/internal/pkg/validator"
)

// SubmitRequest is the employee-facing submission payload. Exactly one
// shape applies per type: LEAVE uses Reason (+ HasDoctorNote for SICK),
// CHANGEOFF uses the activity log, location and PIC.
type SubmitRequest struct {
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    string  `json:"reason,omitempty"`
	Note      *string `json:"note,omitempty"`

	HasDoctorNote bool `json:"has_doctor_note,omitempty"`

	Location   *string         `json:"location,omitempty"`
	PIC        *string         `json:"pic,omitempty"`
	Activities []ActivityEntry `json:"activities,omitempty"`

	// Set by the handler after the multipart upload lands in storage.
	AttachmentPath *string `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be LEAVE or CHANGEOFF"})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	switch Type(r.Type) {
	case TypeLeave:
		if !Reason(r.Reason).Valid() {
			errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be PERSONAL, SICK, CHANGEOFF or UNPAID_LEAVE"})
		}
	case TypeChangeOff:
		if validator.IsEmpty(strOrEmpty(r.Location)) {
			errs = append(errs, validator.ValidationError{Field: "location", Message: "location is required for change-off requests"})
		}
		if validator.IsEmpty(strOrEmpty(r.PIC)) {
			errs = append(errs, validator.ValidationError{Field: "pic", Message: "pic is required for change-off requests"})
		}
		for _, e := range r.Activities {
			if !validator.IsValidTimeOfDay(e.StartTime) || !validator.IsValidTimeOfDay(e.EndTime) {
				errs = append(errs, validator.ValidationError{Field: "activities", Message: "activity times must be in HH:MM format"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type DecisionRequest struct {
	Approve bool `json:"approve"`
}

// Response is the API shape of a request.
type Response struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	OwnerName      *string     `json:"owner_name,omitempty"`
	OwnerEmail     *string     `json:"owner_email,omitempty"`
	OwnerDivision  *string     `json:"owner_division,omitempty"`
	Type           Type        `json:"type"`
	StartDate      string      `json:"start_date"`
	EndDate        string      `json:"end_date"`
	Days           int         `json:"days"`
	Reason         Reason      `json:"reason"`
	Note           *string     `json:"note,omitempty"`
	Hours          float64     `json:"hours,omitempty"`
	ChangeOffDays  int         `json:"change_off_days,omitempty"`
	LegacyDays     int         `json:"legacy_days,omitempty"`
	Activities     ActivityLog `json:"activities,omitempty"`
	Location       *string     `json:"location,omitempty"`
	PIC            *string     `json:"pic,omitempty"`
	Status         Status      `json:"status"`
	HasAttachment  bool        `json:"has_attachment"`
	ManagerDecided *time.Time  `json:"manager_decided_at,omitempty"`
	HRDecided      *time.Time  `json:"hr_decided_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

func ToResponse(r Request) Response {
	return Response{
		ID:             r.ID,
		UserID:         r.UserID,
		OwnerName:      r.OwnerName,
		OwnerEmail:     r.OwnerEmail,
		OwnerDivision:  r.OwnerDivision,
		Type:           r.Type,
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		Days:           r.Days(),
		Reason:         r.Reason,
		Note:           r.Note,
		Hours:          r.Hours,
		ChangeOffDays:  r.ChangeOffDays,
		LegacyDays:     r.LegacyDays(),
		Activities:     r.Activities,
		Location:       r.Location,
		PIC:            r.PIC,
		Status:         r.Status,
		HasAttachment:  r.AttachmentPath != nil,
		ManagerDecided: r.ManagerDecidedAt,
		HRDecided:      r.HRDecidedAt,
		CreatedAt:      r.CreatedAt,
	}
}

func ToResponses(rs []Request) []Response {
	out := make([]Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToResponse(r))
	}
	return out
}
