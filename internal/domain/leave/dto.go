package leave

import (
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	DepartmentID string  `json:"department_id"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD
	Reason       string  `json:"reason"`
	AttachmentID *string `json:"attachment_id,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}

	validTypes := []string{string(TypeLeave), string(TypeWFH), string(TypeWFA), string(TypeDL)}
	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: LEAVE, WFH, WFA, DL",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && startDate.After(endDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be before or equal to end_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveRequestRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != nil {
		validTypes := []string{string(TypeLeave), string(TypeWFH), string(TypeWFA), string(TypeDL)}
		if !validator.IsInSlice(*r.Type, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of: LEAVE, WFH, WFA, DL",
			})
		}
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequestRequest struct {
	ID       string  `json:"-"`
	Status   string  `json:"status"` // APPROVED | REJECTED
	Comments *string `json:"comments,omitempty"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	UserID       *string `json:"user_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Type         *string `json:"type,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil {
		validTypes := []string{string(TypeLeave), string(TypeWFH), string(TypeWFA), string(TypeDL)}
		if !validator.IsInSlice(*f.Type, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of: LEAVE, WFH, WFA, DL",
			})
		}
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PENDING, APPROVED, REJECTED",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	DepartmentID string  `json:"department_id"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	AttachmentID *string `json:"attachment_id,omitempty"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	Comments     *string `json:"comments,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(l LeaveRequest) LeaveRequestResponse {
	var reviewedAt *string
	if l.ReviewedAt != nil {
		s := l.ReviewedAt.Format("2006-01-02 15:04:05")
		reviewedAt = &s
	}

	return LeaveRequestResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		DepartmentID: l.DepartmentID,
		Type:         string(l.Type),
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Reason:       l.Reason,
		AttachmentID: l.AttachmentID,
		Status:       string(l.Status),
		ReviewedBy:   l.ReviewedBy,
		ReviewedAt:   reviewedAt,
		Comments:     l.Comments,
		CreatedAt:    l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
