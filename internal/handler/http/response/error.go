package response

import (
	"errors"
	"net/http"

	"github.com/kita-hr/leave-backend-go/internal/domain/auth"
	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/domain/request"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrNIKExists):
		Conflict(w, "NIK already registered")
	case errors.Is(err, user.ErrUserHasRecords):
		Conflict(w, "User still owns requests or quotas; deactivate instead")
	case errors.Is(err, user.ErrNoManagerAssigned):
		BadRequest(w, "No manager assigned; contact HR", nil)
	case errors.Is(err, user.ErrManagerRoleMismatch):
		BadRequest(w, "Assigned manager must have the MANAGER role", nil)
	case errors.Is(err, user.ErrInsufficientSickBalance):
		BadRequest(w, "Insufficient sick balance", nil)
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Insufficient role")

	// Quota domain errors
	case errors.Is(err, quota.ErrQuotaNotFound):
		NotFound(w, "Quota not found")
	case errors.Is(err, quota.ErrInvalidDelta):
		Conflict(w, "Adjustment would drive a balance negative")

	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrInvalidDates):
		BadRequest(w, "End date is before start date", nil)
	case errors.Is(err, request.ErrInsufficientBalance):
		BadRequest(w, "Insufficient balance", nil)
	case errors.Is(err, request.ErrMissingAttachment):
		BadRequest(w, "A supporting attachment is required for this request", nil)
	case errors.Is(err, request.ErrEmptyActivityLog):
		BadRequest(w, "Activity log is empty", nil)
	case errors.Is(err, request.ErrInvalidActivityTime):
		BadRequest(w, "Activity times must be in HH:MM format", nil)
	case errors.Is(err, request.ErrInvalidState):
		Conflict(w, "Request already decided")
	case errors.Is(err, request.ErrNotAuthorized):
		Forbidden(w, "Not authorized to act on this request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
