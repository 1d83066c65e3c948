package user

import (
	"github.com/kita-hr/leave-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Password      string  `json:"password"`
	ManagerID     *string `json:"manager_id,omitempty"`
	Division      *string `json:"division,omitempty"`
	JoinDate      *string `json:"join_date,omitempty"`
	ProbationDate *string `json:"probation_date,omitempty"`
	PermanentDate *string `json:"permanent_date,omitempty"`
	SickBalance   *int    `json:"sick_balance,omitempty"`
	NIK           *string `json:"nik,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not valid"})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be EMPLOYEE, MANAGER or HR_ADMIN"})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	for _, d := range []struct {
		field string
		value *string
	}{
		{"join_date", r.JoinDate},
		{"probation_date", r.ProbationDate},
		{"permanent_date", r.PermanentDate},
	} {
		if d.value != nil {
			if _, ok := validator.IsValidDate(*d.value); !ok {
				errs = append(errs, validator.ValidationError{Field: d.field, Message: d.field + " must be in YYYY-MM-DD format"})
			}
		}
	}

	if r.SickBalance != nil && (*r.SickBalance < 0 || *r.SickBalance > DefaultSickBalance) {
		errs = append(errs, validator.ValidationError{Field: "sick_balance", Message: "sick_balance must be between 0 and 6"})
	}

	if r.NIK != nil && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{Field: "nik", Message: "nik must be 16 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID            string  `json:"-"`
	Email         *string `json:"email,omitempty"`
	Name          *string `json:"name,omitempty"`
	Role          *string `json:"role,omitempty"`
	Password      *string `json:"password,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
	ClearManager  bool    `json:"clear_manager,omitempty"`
	Division      *string `json:"division,omitempty"`
	JoinDate      *string `json:"join_date,omitempty"`
	ProbationDate *string `json:"probation_date,omitempty"`
	PermanentDate *string `json:"permanent_date,omitempty"`
	SickBalance   *int    `json:"sick_balance,omitempty"`
	NIK           *string `json:"nik,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "user id is required"})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not valid"})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}

	if r.Role != nil && !Role(*r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be EMPLOYEE, MANAGER or HR_ADMIN"})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if r.SickBalance != nil && (*r.SickBalance < 0 || *r.SickBalance > DefaultSickBalance) {
		errs = append(errs, validator.ValidationError{Field: "sick_balance", Message: "sick_balance must be between 0 and 6"})
	}

	if r.NIK != nil && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{Field: "nik", Message: "nik must be 16 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReassignReportsRequest struct {
	NewManagerID *string `json:"new_manager_id,omitempty"`
}

// UserResponse is the API shape of a user; the password hash never leaves
// the service layer.
type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        Role    `json:"role"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName *string `json:"manager_name,omitempty"`
	Division    *string `json:"division,omitempty"`
	SickBalance int     `json:"sick_balance"`
	NIK         *string `json:"nik,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		ManagerID:   u.ManagerID,
		ManagerName: u.ManagerName,
		Division:    u.Division,
		SickBalance: u.SickBalance,
		NIK:         u.NIK,
		IsActive:    u.IsActive,
	}
}
