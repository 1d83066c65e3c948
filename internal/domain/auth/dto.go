package auth

import (
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email format is invalid"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{Field: "refresh_token", Message: "refresh_token is required"}}
	}
	return nil
}

type LoginResponse struct {
	AccessToken           string            `json:"access_token"`
	RefreshToken          string            `json:"refresh_token"`
	ExpiresIn             int64             `json:"expires_in"`
	RefreshTokenExpiresIn int64             `json:"refresh_token_expires_in"`
	User                  user.UserResponse `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
