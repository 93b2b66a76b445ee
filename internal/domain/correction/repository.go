package correction

import (
	"context"
	"time"
)

// CorrectionRepository defines data access methods for correction requests.
type CorrectionRepository interface {
	Create(ctx context.Context, c Correction) (Correction, error)

	GetByID(ctx context.Context, id string) (Correction, error)

	// List retrieves corrections matching the filter, newest first.
	List(ctx context.Context, filter CorrectionFilter) ([]Correction, error)

	// ListPendingByDepartment retrieves pending corrections for a
	// department, oldest first.
	ListPendingByDepartment(ctx context.Context, departmentID string) ([]Correction, error)

	Update(ctx context.Context, c Correction) error

	// CountByUserInRange counts corrections the user submitted with
	// created_at in [start, end). Drives the monthly quota.
	CountByUserInRange(ctx context.Context, userID string, start, end time.Time) (int, error)
}
