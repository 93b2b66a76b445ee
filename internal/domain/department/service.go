package department

import "context"

type DepartmentService interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context, includeInactive bool) ([]DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, departmentID string, req MemberRequest) error
	RemoveMember(ctx context.Context, departmentID, userID string) error
	SetHead(ctx context.Context, departmentID, userID string) error
	ListByMember(ctx context.Context, userID string) ([]DepartmentResponse, error)
	GetPrimary(ctx context.Context, userID string) (DepartmentResponse, error)
}
