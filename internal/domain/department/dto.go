package department

import (
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	HeadID *string `json:"head_id,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDepartmentRequest struct {
	ID     string  `json:"-"`
	Name   *string `json:"name,omitempty"`
	Code   *string `json:"code,omitempty"`
	HeadID *string `json:"head_id,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Code != nil && validator.IsEmpty(*r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MemberRequest struct {
	UserID  string `json:"user_id"`
	Primary bool   `json:"primary"`
}

func (r *MemberRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DepartmentResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	HeadID    *string  `json:"head_id,omitempty"`
	MemberIDs []string `json:"member_ids"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		Code:      d.Code,
		HeadID:    d.HeadID,
		MemberIDs: d.MemberIDs,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
