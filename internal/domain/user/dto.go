package user

import (
	"strings"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type CreateUserRequest struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	NIP         string  `json:"nip"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Role        string  `json:"role"`
	Position    *string `json:"position,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !validator.IsValidNIP(r.NIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip must be an 18-digit number",
		})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number is not a valid Indonesian phone number",
		})
	}

	if r.Role == "" {
		r.Role = string(RoleDosen)
	}
	validRoles := []string{string(RoleAdmin), string(RoleKajur), string(RoleDosen)}
	if !validator.IsInSlice(strings.ToLower(r.Role), validRoles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, kajur, dosen",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	ID          string  `json:"-"`
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Position    *string `json:"position,omitempty"`
	Role        *string `json:"role,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number is not a valid Indonesian phone number",
		})
	}

	if r.Role != nil {
		validRoles := []string{string(RoleAdmin), string(RoleKajur), string(RoleDosen)}
		if !validator.IsInSlice(strings.ToLower(*r.Role), validRoles) {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: "role must be one of: admin, kajur, dosen",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	NIP            string  `json:"nip"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	ProfileImageID *string `json:"profile_image_id,omitempty"`
	Role           string  `json:"role"`
	Position       *string `json:"position,omitempty"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		NIP:            u.NIP,
		PhoneNumber:    u.PhoneNumber,
		ProfileImageID: u.ProfileImageID,
		Role:           string(u.Role),
		Position:       u.Position,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
