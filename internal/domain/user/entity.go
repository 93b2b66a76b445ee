package user

import (
	"time"
)

type Role string

const (
	// RoleAdmin has full administrative access.
	RoleAdmin Role = "admin"
	// RoleKajur is a department head with approval authority for the
	// departments they lead.
	RoleKajur Role = "kajur"
	// RoleDosen is a regular lecturer/employee.
	RoleDosen Role = "dosen"
)

type User struct {
	ID             string
	FullName       string
	Email          string
	Password       string // bcrypt hash
	NIP            string
	PhoneNumber    *string
	ProfileImageID *string
	Role           Role
	Position       *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
