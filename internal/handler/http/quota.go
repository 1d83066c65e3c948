package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kita-hr/leave-backend-go/internal/domain/quota"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/kita-hr/leave-backend-go/internal/handler/http/response"
	quotaService "github.com/kita-hr/leave-backend-go/internal/service/quota"
)

type QuotaHandler interface {
	MyBalance(w http.ResponseWriter, r *http.Request)
	UserBalance(w http.ResponseWriter, r *http.Request)
	AdjustUser(w http.ResponseWriter, r *http.Request)
	BulkAdjust(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type QuotaHandlerImpl struct {
	quotaService quotaService.Service
}

func NewQuotaHandler(svc quotaService.Service) QuotaHandler {
	return &QuotaHandlerImpl{quotaService: svc}
}

func yearParam(r *http.Request) int {
	if s := r.URL.Query().Get("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			return y
		}
	}
	return time.Now().Year()
}

// MyBalance implements QuotaHandler.
func (h *QuotaHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.quotaService.Balance(r.Context(), middleware.UserID(r), yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}

// UserBalance implements QuotaHandler.
func (h *QuotaHandlerImpl) UserBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.quotaService.Balance(r.Context(), chi.URLParam(r, "id"), yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}

// AdjustUser applies a manual correction delta to one user's quota.
func (h *QuotaHandlerImpl) AdjustUser(w http.ResponseWriter, r *http.Request) {
	var delta quota.Delta

	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		slog.Error("AdjustQuota decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	adjusted, err := h.quotaService.ApplyDelta(r.Context(), chi.URLParam(r, "id"), yearParam(r), delta)
	if err != nil {
		slog.Error("AdjustQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quota adjusted", adjusted)
}

// BulkAdjust implements QuotaHandler.
func (h *QuotaHandlerImpl) BulkAdjust(w http.ResponseWriter, r *http.Request) {
	var bulkReq quota.BulkAdjustRequest

	if err := json.NewDecoder(r.Body).Decode(&bulkReq); err != nil {
		slog.Error("BulkAdjust decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.quotaService.BulkAdjust(r.Context(), bulkReq)
	if err != nil {
		slog.Error("BulkAdjust service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk adjustment applied", resp)
}

// Summary implements QuotaHandler.
func (h *QuotaHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.quotaService.Summary(r.Context(), yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
