package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/report"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
)

type StatisticsHandler interface {
	GetStatistics(w http.ResponseWriter, r *http.Request)
	GenerateReport(w http.ResponseWriter, r *http.Request)
	ListReports(w http.ResponseWriter, r *http.Request)
	DownloadReport(w http.ResponseWriter, r *http.Request)
	DeleteReport(w http.ResponseWriter, r *http.Request)
}

type StatisticsHandlerImpl struct {
	statisticsService report.StatisticsService
}

func NewStatisticsHandler(statisticsService report.StatisticsService) StatisticsHandler {
	return &StatisticsHandlerImpl{statisticsService: statisticsService}
}

// GetStatistics implements StatisticsHandler.
func (h *StatisticsHandlerImpl) GetStatistics(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendanceFilterFromQuery(r)
	stats, err := h.statisticsService.GetStatistics(r.Context(), identity.UserID, identity.Role, filter)
	if err != nil {
		slog.Error("GetStatistics service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GenerateReport implements StatisticsHandler.
func (h *StatisticsHandlerImpl) GenerateReport(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var generateReq report.GenerateReportRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		slog.Error("GenerateReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	reportResponse, err := h.statisticsService.GenerateReport(r.Context(), identity.UserID, identity.Role, generateReq)
	if err != nil {
		slog.Error("GenerateReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Report generated successfully", reportResponse)
}

// ListReports implements StatisticsHandler.
func (h *StatisticsHandlerImpl) ListReports(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reports, err := h.statisticsService.ListReports(r.Context(), identity.UserID, identity.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// DownloadReport implements StatisticsHandler.
func (h *StatisticsHandlerImpl) DownloadReport(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rep, rc, err := h.statisticsService.DownloadReport(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("DownloadReport service error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.FileName))
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("DownloadReport stream error", "report_id", rep.ID, "error", err)
	}
}

// DeleteReport implements StatisticsHandler.
func (h *StatisticsHandlerImpl) DeleteReport(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.statisticsService.DeleteReport(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted successfully", nil)
}
