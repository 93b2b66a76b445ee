package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq leave.CreateLeaveRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create leave request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	leaveResponse, err := h.leaveService.Create(r.Context(), identity.UserID, createReq)
	if err != nil {
		slog.Error("Create leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Leave request submitted successfully", leaveResponse)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter leave.LeaveRequestFilter
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

	requests, err := h.leaveService.List(r.Context(), identity.UserID, identity.Role, filter)
	if err != nil {
		slog.Error("List leave requests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetByID implements LeaveHandler.
func (h *LeaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaveResponse, err := h.leaveService.Get(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveResponse)
}

// Update implements LeaveHandler.
func (h *LeaveHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq leave.UpdateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update leave request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	leaveResponse, err := h.leaveService.Update(r.Context(), identity.UserID, updateReq)
	if err != nil {
		slog.Error("Update leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", leaveResponse)
}

// Delete implements LeaveHandler.
func (h *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// Review implements LeaveHandler.
func (h *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var reviewReq leave.ReviewLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review leave request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = chi.URLParam(r, "id")

	leaveResponse, err := h.leaveService.Review(r.Context(), identity.UserID, identity.Role, reviewReq)
	if err != nil {
		slog.Error("Review leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed successfully", leaveResponse)
}

// ListPending implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.leaveService.ListPendingByDepartment(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "departmentID"))
	if err != nil {
		slog.Error("List pending leave requests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
