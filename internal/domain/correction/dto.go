package correction

import (
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type CreateCorrectionRequest struct {
	AttendanceID *string `json:"attendance_id,omitempty"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Type         string  `json:"type"`
	Reason       string  `json:"reason"`
	AttachmentID *string `json:"attachment_id,omitempty"`

	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`  // YYYY-MM-DD HH:MM:SS
	RequestedCheckOut *string `json:"requested_check_out,omitempty"` // YYYY-MM-DD HH:MM:SS
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.Type, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: BREAK_TIME_AS_WORK, EARLY_DEPARTURE, LATE_ARRIVAL, MISSED_CHECK_IN, MISSED_CHECK_OUT",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	switch Type(r.Type) {
	case TypeMissedCheckIn:
		if r.RequestedCheckIn == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_in",
				Message: "requested_check_in is required for MISSED_CHECK_IN",
			})
		}
	case TypeMissedCheckOut:
		if r.RequestedCheckOut == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_out",
				Message: "requested_check_out is required for MISSED_CHECK_OUT",
			})
		}
	}

	// A MISSED_CHECK_IN correction may create the record from scratch,
	// every other type amends an existing one.
	if Type(r.Type) != TypeMissedCheckIn && r.AttendanceID == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required for this correction type",
		})
	}

	if r.RequestedCheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.RequestedCheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_in",
				Message: "requested_check_in must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if r.RequestedCheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.RequestedCheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_out",
				Message: "requested_check_out must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewCorrectionRequest struct {
	ID       string  `json:"-"`
	Status   string  `json:"status"` // APPROVED | REJECTED
	Comments *string `json:"comments,omitempty"`
}

func (r *ReviewCorrectionRequest) Validate() error {
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

type CorrectionFilter struct {
	UserID       *string `json:"user_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Type         *string `json:"type,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *CorrectionFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil && !validator.IsInSlice(*f.Type, ValidTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be a valid correction type",
		})
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

type CorrectionResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	DepartmentID string  `json:"department_id"`
	AttendanceID *string `json:"attendance_id,omitempty"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Reason       string  `json:"reason"`
	AttachmentID *string `json:"attachment_id,omitempty"`

	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut *string `json:"requested_check_out,omitempty"`

	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	ReviewedAt *string `json:"reviewed_at,omitempty"`
	Comments   *string `json:"comments,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func ToResponse(c Correction) CorrectionResponse {
	resp := CorrectionResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		UserName:     c.UserName,
		DepartmentID: c.DepartmentID,
		AttendanceID: c.AttendanceID,
		Date:         c.Date.Format("2006-01-02"),
		Type:         string(c.Type),
		Reason:       c.Reason,
		AttachmentID: c.AttachmentID,
		Status:       string(c.Status),
		ReviewedBy:   c.ReviewedBy,
		Comments:     c.Comments,
		CreatedAt:    c.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if c.RequestedCheckIn != nil {
		s := c.RequestedCheckIn.Format("2006-01-02 15:04:05")
		resp.RequestedCheckIn = &s
	}
	if c.RequestedCheckOut != nil {
		s := c.RequestedCheckOut.Format("2006-01-02 15:04:05")
		resp.RequestedCheckOut = &s
	}
	if c.ReviewedAt != nil {
		s := c.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &s
	}

	return resp
}
