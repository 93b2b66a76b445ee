package department

import "errors"

// Department domain errors
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrNameExists         = errors.New("department name already exists")
	ErrCodeExists         = errors.New("department code already exists")
	ErrNotAMember         = errors.New("user is not a member of the department")
	ErrAlreadyAMember     = errors.New("user is already a member of the department")
	ErrNoDepartment       = errors.New("user is not associated with any department")
	ErrNotDepartmentHead  = errors.New("user is not the head of this department")
	ErrHeadRemoval        = errors.New("department head cannot be removed while assigned as head")
	ErrHeadRoleRequired   = errors.New("department head must have the kajur or admin role")
)
