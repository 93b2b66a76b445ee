package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var checkInReq attendance.CheckInRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	attendanceResponse, err := h.attendanceService.CheckIn(r.Context(), identity.UserID, checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Checked in successfully", attendanceResponse)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var checkOutReq attendance.CheckOutRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	attendanceResponse, err := h.attendanceService.CheckOut(r.Context(), identity.UserID, checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.SuccessWithMessage(w, "Checked out successfully", attendanceResponse)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResponse, err := h.attendanceService.FindToday(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendanceResponse)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendanceFilterFromQuery(r)
	records, err := h.attendanceService.List(r.Context(), identity.UserID, identity.Role, filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetByID implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	attendanceResponse, err := h.attendanceService.Get(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendanceResponse)
}

// Verify implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var verifyReq attendance.VerifyRequest

	if err := json.NewDecoder(r.Body).Decode(&verifyReq); err != nil {
		slog.Error("Verify decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	verifyReq.ID = chi.URLParam(r, "id")

	attendanceResponse, err := h.attendanceService.Verify(r.Context(), identity.UserID, identity.Role, verifyReq)
	if err != nil {
		slog.Error("Verify service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance verified successfully", attendanceResponse)
}

// Summary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = identity.UserID
	}

	start, end, err := rangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.attendanceService.GetSummary(r.Context(), identity.UserID, identity.Role, userID, start, end)
	if err != nil {
		slog.Error("Summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Sync implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var syncReq attendance.SyncRequest

	if err := json.NewDecoder(r.Body).Decode(&syncReq); err != nil {
		slog.Error("Sync decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := syncReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, _ := validator.IsValidDate(syncReq.StartDate)
	end, _ := validator.IsValidDate(syncReq.EndDate)

	synced, err := h.attendanceService.SynchronizeWithLeaveRequests(r.Context(), syncReq.UserID, start, end)
	if err != nil {
		slog.Error("Sync service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance synchronized successfully", attendance.SyncResponse{SyncedRecords: synced})
}

func attendanceFilterFromQuery(r *http.Request) attendance.AttendanceFilter {
	var filter attendance.AttendanceFilter

	q := r.URL.Query()
	if v := q.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("department_id"); v != "" {
		filter.DepartmentID = &v
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

	return filter
}

// rangeFromQuery parses start_date/end_date, defaulting to the current
// calendar month.
func rangeFromQuery(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)

	var errs validator.ValidationErrors
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, ok := validator.IsValidDate(v)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			start = t
		}
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, ok := validator.IsValidDate(v)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			end = t
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}
