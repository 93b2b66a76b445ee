package statistics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/report"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/storage"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StatisticsServiceImpl struct {
	attendance.AttendanceRepository
	report.ReportRepository
	departmentRepository department.DepartmentRepository
	storage              storage.FileStorage
	reportDir            string
	now                  func() time.Time
}

func NewStatisticsService(
	attendanceRepository attendance.AttendanceRepository,
	reportRepository report.ReportRepository,
	departmentRepository department.DepartmentRepository,
	fileStorage storage.FileStorage,
	reportDir string,
) *StatisticsServiceImpl {
	return &StatisticsServiceImpl{
		AttendanceRepository: attendanceRepository,
		ReportRepository:     reportRepository,
		departmentRepository: departmentRepository,
		storage:              fileStorage,
		reportDir:            reportDir,
		now:                  time.Now,
	}
}

// GetStatistics aggregates attendance over a range. Dosen are pinned to
// their own records, kajur to departments they head or themselves.
func (s *StatisticsServiceImpl) GetStatistics(ctx context.Context, callerID string, role user.Role, filter attendance.AttendanceFilter) (attendance.StatisticsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.StatisticsResponse{}, err
	}

	scoped, err := s.scopeFilter(ctx, callerID, role, filter)
	if err != nil {
		return attendance.StatisticsResponse{}, err
	}

	start, end := rangeOf(scoped, s.now())

	records, err := s.AttendanceRepository.List(ctx, scoped)
	if err != nil {
		return attendance.StatisticsResponse{}, err
	}

	stats := attendance.Aggregate(start, end, records)
	stats.DepartmentID = scoped.DepartmentID
	stats.UserID = scoped.UserID
	return stats, nil
}

// GenerateReport renders the range into a spreadsheet, stores it under the
// reports directory and records the metadata row.
func (s *StatisticsServiceImpl) GenerateReport(ctx context.Context, callerID string, role user.Role, req report.GenerateReportRequest) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	filter := attendance.AttendanceFilter{
		UserID:       req.UserID,
		DepartmentID: req.DepartmentID,
		StartDate:    &req.StartDate,
		EndDate:      &req.EndDate,
	}
	scoped, err := s.scopeFilter(ctx, callerID, role, filter)
	if err != nil {
		return report.ReportResponse{}, err
	}

	start, end := rangeOf(scoped, s.now())

	records, err := s.AttendanceRepository.List(ctx, scoped)
	if err != nil {
		return report.ReportResponse{}, err
	}

	id := uuid.NewString()
	fileName := fmt.Sprintf("attendance_%s_%s_%s.xlsx", req.StartDate, req.EndDate, id[:8])

	buf, err := buildWorkbook(start, end, records)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to build spreadsheet: %w", err)
	}

	storedPath, err := s.storage.Upload(ctx, buf, fmt.Sprintf("%s/%s", s.reportDir, fileName), excelContentType)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to store report: %w", err)
	}

	r := report.Report{
		ID:           id,
		GeneratedBy:  callerID,
		DepartmentID: scoped.DepartmentID,
		UserID:       scoped.UserID,
		StartDate:    start,
		EndDate:      end,
		Format:       report.FormatExcel,
		FileName:     fileName,
		StoredPath:   storedPath,
		Size:         int64(buf.Len()),
	}

	created, err := s.ReportRepository.Create(ctx, r)
	if err != nil {
		if delErr := s.storage.Delete(ctx, storedPath); delErr != nil {
			slog.Warn("Failed to remove report file after metadata failure", "path", storedPath, "error", delErr)
		}
		return report.ReportResponse{}, err
	}

	slog.Info("Report generated", "report_id", created.ID, "records", len(records))
	return report.ToResponse(created), nil
}

// ListReports returns generated reports. Non-admin callers only see their
// own.
func (s *StatisticsServiceImpl) ListReports(ctx context.Context, callerID string, role user.Role) ([]report.ReportResponse, error) {
	var generatedBy *string
	if role != user.RoleAdmin {
		generatedBy = &callerID
	}

	reports, err := s.ReportRepository.List(ctx, generatedBy)
	if err != nil {
		return nil, err
	}

	responses := make([]report.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, report.ToResponse(r))
	}

	return responses, nil
}

// DownloadReport opens the stored spreadsheet for streaming to the client.
func (s *StatisticsServiceImpl) DownloadReport(ctx context.Context, callerID string, role user.Role, id string) (report.Report, io.ReadCloser, error) {
	r, err := s.ReportRepository.GetByID(ctx, id)
	if err != nil {
		return report.Report{}, nil, err
	}
	if role != user.RoleAdmin && r.GeneratedBy != callerID {
		return report.Report{}, nil, report.ErrReportNotFound
	}

	rc, err := s.storage.Download(ctx, r.StoredPath)
	if err != nil {
		return report.Report{}, nil, fmt.Errorf("failed to open report file: %w", err)
	}

	return r, rc, nil
}

// DeleteReport removes the metadata row and the stored spreadsheet.
func (s *StatisticsServiceImpl) DeleteReport(ctx context.Context, callerID string, role user.Role, id string) error {
	r, err := s.ReportRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin && r.GeneratedBy != callerID {
		return report.ErrReportNotFound
	}

	if err := s.ReportRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, r.StoredPath); err != nil {
		slog.Warn("Failed to delete report file", "report_id", id, "path", r.StoredPath, "error", err)
	}

	return nil
}

// scopeFilter narrows the filter to what the caller may see.
func (s *StatisticsServiceImpl) scopeFilter(ctx context.Context, callerID string, role user.Role, filter attendance.AttendanceFilter) (attendance.AttendanceFilter, error) {
	switch role {
	case user.RoleAdmin:
		return filter, nil
	case user.RoleKajur:
		if filter.DepartmentID != nil {
			heads, err := s.headsDepartment(ctx, callerID, *filter.DepartmentID)
			if err != nil {
				return attendance.AttendanceFilter{}, err
			}
			if !heads {
				return attendance.AttendanceFilter{}, department.ErrNotDepartmentHead
			}
			return filter, nil
		}
		if filter.UserID == nil || *filter.UserID != callerID {
			filter.UserID = &callerID
		}
		return filter, nil
	default:
		filter.UserID = &callerID
		filter.DepartmentID = nil
		return filter, nil
	}
}

func (s *StatisticsServiceImpl) headsDepartment(ctx context.Context, callerID, departmentID string) (bool, error) {
	dept, err := s.departmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return false, nil
		}
		return false, err
	}
	return dept.IsHeadedBy(callerID), nil
}

// rangeOf resolves the filter's date strings, defaulting to the current
// calendar month.
func rangeOf(filter attendance.AttendanceFilter, now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)

	if filter.StartDate != nil && *filter.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", *filter.StartDate, now.Location()); err == nil {
			start = t
		}
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", *filter.EndDate, now.Location()); err == nil {
			end = t
		}
	}

	return start, end
}
