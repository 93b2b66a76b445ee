package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// List retrieves leave requests matching the filter, newest first.
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// ListPendingByDepartment retrieves pending requests for a department,
	// oldest first (review queue order).
	ListPendingByDepartment(ctx context.Context, departmentID string) ([]LeaveRequest, error)

	Update(ctx context.Context, req LeaveRequest) error

	Delete(ctx context.Context, id string) error

	// FindApprovedCovering returns the approved request whose inclusive
	// [start,end] window covers the given date for the user, or nil.
	FindApprovedCovering(ctx context.Context, userID string, date time.Time) (*LeaveRequest, error)

	// ListApprovedEndingOnOrAfter returns all approved requests whose end
	// date is on or after the given date. Used by the nightly synchronizer.
	ListApprovedEndingOnOrAfter(ctx context.Context, date time.Time) ([]LeaveRequest, error)
}
