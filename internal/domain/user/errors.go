package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrNIKExists               = errors.New("NIK already registered")
	ErrUserHasRecords          = errors.New("user still owns requests or quotas")
	ErrNoManagerAssigned       = errors.New("no manager assigned to user")
	ErrManagerRoleMismatch     = errors.New("assigned manager does not have the MANAGER role")
	ErrInsufficientSickBalance = errors.New("insufficient sick balance")
	ErrUserInactive            = errors.New("user is inactive")

	ErrHRAccessRequired      = errors.New("HR admin access required")
	ErrManagerAccessRequired = errors.New("manager access required")
)
