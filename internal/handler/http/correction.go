package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/correction"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
)

type CorrectionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	MonthlyUsage(w http.ResponseWriter, r *http.Request)
}

type CorrectionHandlerImpl struct {
	correctionService correction.CorrectionService
}

func NewCorrectionHandler(correctionService correction.CorrectionService) CorrectionHandler {
	return &CorrectionHandlerImpl{correctionService: correctionService}
}

// Create implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq correction.CreateCorrectionRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create correction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	correctionResponse, err := h.correctionService.Create(r.Context(), identity.UserID, createReq)
	if err != nil {
		slog.Error("Create correction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Correction request submitted successfully", correctionResponse)
}

// List implements CorrectionHandler.
func (h *CorrectionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter correction.CorrectionFilter
	q := r.URL.Query()
	if v := q.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	if v := q.Get("type"); v != "" {
		filter.Type = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	corrections, err := h.correctionService.List(r.Context(), identity.UserID, identity.Role, filter)
	if err != nil {
		slog.Error("List corrections service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, corrections)
}

// GetByID implements CorrectionHandler.
func (h *CorrectionHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	correctionResponse, err := h.correctionService.Get(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, correctionResponse)
}

// Review implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var reviewReq correction.ReviewCorrectionRequest

	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review correction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = chi.URLParam(r, "id")

	correctionResponse, err := h.correctionService.Review(r.Context(), identity.UserID, identity.Role, reviewReq)
	if err != nil {
		slog.Error("Review correction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request reviewed successfully", correctionResponse)
}

// ListPending implements CorrectionHandler.
func (h *CorrectionHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	corrections, err := h.correctionService.ListPendingByDepartment(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "departmentID"))
	if err != nil {
		slog.Error("List pending corrections service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, corrections)
}

// MonthlyUsage implements CorrectionHandler.
func (h *CorrectionHandlerImpl) MonthlyUsage(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	usage, err := h.correctionService.GetMonthlyUsage(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, usage)
}
