package leave

import (
	"context"
	"time"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type LeaveService interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	Get(ctx context.Context, callerID string, role user.Role, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, callerID string, role user.Role, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	ListPendingByDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) ([]LeaveRequestResponse, error)
	Update(ctx context.Context, callerID string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, callerID string, id string) error
	Review(ctx context.Context, reviewerID string, role user.Role, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
	CheckUserLeaveStatus(ctx context.Context, userID string, date time.Time) (LeaveStatus, error)
}
