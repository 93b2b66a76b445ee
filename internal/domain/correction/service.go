package correction

import (
	"context"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type CorrectionService interface {
	Create(ctx context.Context, userID string, req CreateCorrectionRequest) (CorrectionResponse, error)
	GetMonthlyUsage(ctx context.Context, userID string) (MonthlyUsage, error)
	Get(ctx context.Context, callerID string, role user.Role, id string) (CorrectionResponse, error)
	List(ctx context.Context, callerID string, role user.Role, filter CorrectionFilter) ([]CorrectionResponse, error)
	ListPendingByDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) ([]CorrectionResponse, error)
	Review(ctx context.Context, reviewerID string, role user.Role, req ReviewCorrectionRequest) (CorrectionResponse, error)
}
