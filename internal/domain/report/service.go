package report

import (
	"context"
	"io"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, callerID string, role user.Role, filter attendance.AttendanceFilter) (attendance.StatisticsResponse, error)
	GenerateReport(ctx context.Context, callerID string, role user.Role, req GenerateReportRequest) (ReportResponse, error)
	ListReports(ctx context.Context, callerID string, role user.Role) ([]ReportResponse, error)
	DownloadReport(ctx context.Context, callerID string, role user.Role, id string) (Report, io.ReadCloser, error)
	DeleteReport(ctx context.Context, callerID string, role user.Role, id string) error
}
