package department

import "context"

// DepartmentRepository defines data access methods for departments and
// their memberships.
type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)

	GetByID(ctx context.Context, id string) (Department, error)

	List(ctx context.Context, includeInactive bool) ([]Department, error)

	Update(ctx context.Context, d Department) error

	// SoftDelete marks the department inactive.
	SoftDelete(ctx context.Context, id string) error

	// AddMember adds a user to the department. When primary is true the
	// membership becomes the user's primary department (clearing any
	// previous primary flag).
	AddMember(ctx context.Context, departmentID, userID string, primary bool) error

	RemoveMember(ctx context.Context, departmentID, userID string) error

	SetHead(ctx context.Context, departmentID, userID string) error

	// GetByMember returns all active departments the user belongs to.
	GetByMember(ctx context.Context, userID string) ([]Department, error)

	// GetPrimaryByMember resolves the user's primary department: the
	// membership flagged primary, falling back to the earliest joined.
	// Returns nil when the user has no department.
	GetPrimaryByMember(ctx context.Context, userID string) (*Department, error)
}
