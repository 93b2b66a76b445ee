package user

import "errors"

// User domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrNIPExists           = errors.New("NIP already registered")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrAdminAccessRequired = errors.New("admin access required")
	ErrKajurAccessRequired = errors.New("department head access required")
)
