package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/response"
	userService "github.com/kita-hr/leave-backend-go/internal/service/user"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListManagers(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ReassignReports(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService userService.Service
}

func NewUserHandler(svc userService.Service) UserHandler {
	return &UserHandlerImpl{userService: svc}
}

// Me implements UserHandler.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.GetByID(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", user.ToResponse(created))
}

// GetByID implements UserHandler.
func (h *UserHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	users, err := h.userService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	response.Success(w, out)
}

// ListManagers implements UserHandler.
func (h *UserHandlerImpl) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.userService.ListManagers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(managers))
	for _, u := range managers {
		out = append(out, user.ToResponse(u))
	}
	response.Success(w, out)
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := h.userService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", user.ToResponse(updated))
}

// Delete implements UserHandler. mode=soft (the default) deactivates the
// user and detaches their reports; mode=hard removes the row subject to
// referential checks, reassigning reports when the body names a manager.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "soft":
		if err := h.userService.Deactivate(r.Context(), id); err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "User deactivated", nil)
	case "hard":
		var body user.ReassignReportsRequest
		// Body is optional; reports are detached when no new manager is given.
		_ = json.NewDecoder(r.Body).Decode(&body)

		if err := h.userService.Delete(r.Context(), id, body.NewManagerID); err != nil {
			slog.Error("DeleteUser service error", "error", err)
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "User deleted", nil)
	default:
		response.BadRequest(w, "mode must be soft or hard", nil)
	}
}

// ReassignReports implements UserHandler.
func (h *UserHandlerImpl) ReassignReports(w http.ResponseWriter, r *http.Request) {
	var body user.ReassignReportsRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	moved, err := h.userService.ReassignReports(r.Context(), chi.URLParam(r, "id"), body.NewManagerID)
	if err != nil {
		slog.Error("ReassignReports service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reports reassigned", map[string]int64{"reassigned_count": moved})
}
