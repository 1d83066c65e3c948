package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/request"
	"github.com/kita-hr/leave-backend-go/internal/domain/user"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/response"
	fileService "github.com/kita-hr/leave-backend-go/internal/service/file"
	requestService "github.com/kita-hr/leave-backend-go/internal/service/request"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPendingManager(w http.ResponseWriter, r *http.Request)
	ListPendingHR(w http.ResponseWriter, r *http.Request)
	ManagerDecide(w http.ResponseWriter, r *http.Request)
	HRDecide(w http.ResponseWriter, r *http.Request)
	DownloadAttachment(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService requestService.Service
	fileService    fileService.FileService
}

func NewRequestHandler(reqSvc requestService.Service, fileSvc fileService.FileService) RequestHandler {
	return &RequestHandlerImpl{
		requestService: reqSvc,
		fileService:    fileSvc,
	}
}

// Submit accepts multipart form data: a "data" field carrying the JSON
// payload and an optional "attachment" file.
func (h *RequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req request.SubmitRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("attachment")
		if err != nil && err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if file != nil {
			defer file.Close()
			path, err := h.fileService.UploadRequestAttachment(r.Context(), userID, file, fileHeader.Filename)
			if err != nil {
				slog.Error("Attachment upload failed", "error", err)
				response.BadRequest(w, err.Error(), nil)
				return
			}
			req.AttachmentPath = &path
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Submit decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	created, err := h.requestService.Submit(r.Context(), userID, req)
	if err != nil {
		// The upload landed before validation; don't leave it orphaned.
		if req.AttachmentPath != nil {
			if delErr := h.fileService.DeleteFile(r.Context(), *req.AttachmentPath); delErr != nil {
				slog.Error("Orphaned attachment cleanup failed", "path", *req.AttachmentPath, "error", delErr)
			}
		}
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted", request.ToResponse(created))
}

// GetByID implements RequestHandler.
func (h *RequestHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestService.GetByID(
		r.Context(),
		middleware.UserID(r),
		user.Role(middleware.UserRole(r)),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponse(req))
}

// ListMine implements RequestHandler.
func (h *RequestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListMine(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponses(requests))
}

// ListPendingManager lists requests awaiting the caller's manager decision.
func (h *RequestHandlerImpl) ListPendingManager(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListPendingForManager(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponses(requests))
}

// ListPendingHR lists requests awaiting final HR decision.
func (h *RequestHandlerImpl) ListPendingHR(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListPendingForHR(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponses(requests))
}

// ManagerDecide implements RequestHandler.
func (h *RequestHandlerImpl) ManagerDecide(w http.ResponseWriter, r *http.Request) {
	var decision request.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req, err := h.requestService.ManagerDecide(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), decision.Approve)
	if err != nil {
		slog.Error("ManagerDecide service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", request.ToResponse(req))
}

// HRDecide implements RequestHandler.
func (h *RequestHandlerImpl) HRDecide(w http.ResponseWriter, r *http.Request) {
	var decision request.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req, err := h.requestService.HRDecide(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), decision.Approve)
	if err != nil {
		slog.Error("HRDecide service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", request.ToResponse(req))
}

// DownloadAttachment streams a request's attachment to an authorized caller.
func (h *RequestHandlerImpl) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestService.GetByID(
		r.Context(),
		middleware.UserID(r),
		user.Role(middleware.UserRole(r)),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if req.AttachmentPath == nil {
		response.NotFound(w, "Request has no attachment")
		return
	}

	file, err := h.fileService.DownloadFile(r.Context(), *req.AttachmentPath)
	if err != nil {
		response.NotFound(w, "Attachment not found")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Attachment stream error", "error", err)
	}
}
