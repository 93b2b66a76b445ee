package report

import (
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type GenerateReportRequest struct {
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD
	DepartmentID *string `json:"department_id,omitempty"`
	UserID       *string `json:"user_id,omitempty"`
}

func (r *GenerateReportRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReportResponse struct {
	ID           string  `json:"id"`
	GeneratedBy  string  `json:"generated_by"`
	DepartmentID *string `json:"department_id,omitempty"`
	UserID       *string `json:"user_id,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Format       string  `json:"format"`
	FileName     string  `json:"file_name"`
	Size         int64   `json:"size"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(r Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		GeneratedBy:  r.GeneratedBy,
		DepartmentID: r.DepartmentID,
		UserID:       r.UserID,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Format:       string(r.Format),
		FileName:     r.FileName,
		Size:         r.Size,
		CreatedAt:    r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
