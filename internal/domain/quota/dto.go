package quota

import "github.com/kita-hr/leave-backend-go/internal/pkg/validator"

type BulkAdjustRequest struct {
	Year int    `json:"year"`
	Mode string `json:"mode"`

	// RESET_DEFAULT overwrite values; ignored by the other modes.
	LeaveTotal      *int `json:"leave_total,omitempty"`
	ChangeOffEarned *int `json:"changeoff_earned,omitempty"`
}

func (r *BulkAdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}

	if !AdjustMode(r.Mode).Valid() {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "mode must be INCREMENT_ALL, RESET_ZERO or RESET_DEFAULT"})
	}

	if AdjustMode(r.Mode) == AdjustResetDefault {
		if r.LeaveTotal != nil && *r.LeaveTotal < 0 {
			errs = append(errs, validator.ValidationError{Field: "leave_total", Message: "leave_total must not be negative"})
		}
		if r.ChangeOffEarned != nil && *r.ChangeOffEarned < 0 {
			errs = append(errs, validator.ValidationError{Field: "changeoff_earned", Message: "changeoff_earned must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAdjustResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}
