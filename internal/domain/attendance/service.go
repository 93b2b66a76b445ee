package attendance

import (
	"context"
	"time"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (AttendanceResponse, error)
	// FindToday returns nil when the user has no record yet today.
	FindToday(ctx context.Context, userID string) (*AttendanceResponse, error)
	Get(ctx context.Context, callerID string, role user.Role, id string) (AttendanceResponse, error)
	List(ctx context.Context, callerID string, role user.Role, filter AttendanceFilter) ([]AttendanceResponse, error)
	Verify(ctx context.Context, reviewerID string, role user.Role, req VerifyRequest) (AttendanceResponse, error)
	GetSummary(ctx context.Context, callerID string, role user.Role, userID string, start, end time.Time) (SummaryResponse, error)
	CreateManual(ctx context.Context, userID string, date time.Time, checkIn, checkOut *time.Time, status Status, correctionID *string, reviewerID string) (Attendance, error)
	ApplyCorrection(ctx context.Context, record Attendance) error
	MarkAbsencesForToday(ctx context.Context) error
	// SynchronizeWithLeaveRequests re-projects approved leave onto records
	// in [start, end], optionally narrowed to one user. Returns the number
	// of records rewritten.
	SynchronizeWithLeaveRequests(ctx context.Context, userID *string, start, end time.Time) (int, error)
}
