package request

import "errors"

var (
	ErrRequestNotFound     = errors.New("request not found")
	ErrInvalidDates        = errors.New("end date is before start date")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrMissingAttachment   = errors.New("attachment is required")
	ErrEmptyActivityLog    = errors.New("activity log is empty")
	ErrInvalidActivityTime = errors.New("activity time is not in HH:MM format")

	// ErrInvalidState covers both a decision on a request outside the
	// expected pending state and a lost race between two deciders.
	ErrInvalidState  = errors.New("request is not in the expected pending state")
	ErrNotAuthorized = errors.New("not authorized to decide this request")
)
