package report

import "context"

// ReportRepository defines data access methods for report metadata.
type ReportRepository interface {
	Create(ctx context.Context, r Report) (Report, error)

	GetByID(ctx context.Context, id string) (Report, error)

	// List retrieves reports, newest first. Non-admin callers only see
	// their own.
	List(ctx context.Context, generatedBy *string) ([]Report, error)

	Delete(ctx context.Context, id string) error
}
