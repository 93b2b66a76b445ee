package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
)

type DepartmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	SetHead(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type DepartmentHandlerImpl struct {
	departmentService department.DepartmentService
}

func NewDepartmentHandler(departmentService department.DepartmentService) DepartmentHandler {
	return &DepartmentHandlerImpl{departmentService: departmentService}
}

// Create implements DepartmentHandler.
func (h *DepartmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq department.CreateDepartmentRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create department decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	departmentResponse, err := h.departmentService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", departmentResponse)
}

// List implements DepartmentHandler.
func (h *DepartmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	departments, err := h.departmentService.List(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// GetByID implements DepartmentHandler.
func (h *DepartmentHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	departmentResponse, err := h.departmentService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departmentResponse)
}

// Update implements DepartmentHandler.
func (h *DepartmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq department.UpdateDepartmentRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update department decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	departmentResponse, err := h.departmentService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", departmentResponse)
}

// Delete implements DepartmentHandler.
func (h *DepartmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.departmentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deactivated successfully", nil)
}

// AddMember implements DepartmentHandler.
func (h *DepartmentHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	var memberReq department.MemberRequest

	if err := json.NewDecoder(r.Body).Decode(&memberReq); err != nil {
		slog.Error("Add member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.departmentService.AddMember(r.Context(), chi.URLParam(r, "id"), memberReq); err != nil {
		slog.Error("Add member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member added successfully", nil)
}

// RemoveMember implements DepartmentHandler.
func (h *DepartmentHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	departmentID := chi.URLParam(r, "id")
	userID := chi.URLParam(r, "userID")

	if err := h.departmentService.RemoveMember(r.Context(), departmentID, userID); err != nil {
		slog.Error("Remove member service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", nil)
}

type setHeadRequest struct {
	UserID string `json:"user_id"`
}

// SetHead implements DepartmentHandler.
func (h *DepartmentHandlerImpl) SetHead(w http.ResponseWriter, r *http.Request) {
	var headReq setHeadRequest

	if err := json.NewDecoder(r.Body).Decode(&headReq); err != nil || headReq.UserID == "" {
		response.BadRequest(w, "user_id is required", nil)
		return
	}

	if err := h.departmentService.SetHead(r.Context(), chi.URLParam(r, "id"), headReq.UserID); err != nil {
		slog.Error("Set head service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department head assigned successfully", nil)
}

// ListMine implements DepartmentHandler.
func (h *DepartmentHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	departments, err := h.departmentService.ListByMember(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}
