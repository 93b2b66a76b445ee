package attendance

import (
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Provider  *string  `json:"provider,omitempty"`
	PhotoID   *string  `json:"photo_id,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Provider  *string  `json:"provider,omitempty"`
	PhotoID   *string  `json:"photo_id,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyRequest struct {
	ID     string  `json:"-"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *VerifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be a valid working status",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	UserID       *string `json:"user_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Status       *string `json:"status,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be a valid working status",
		})
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

// SyncRequest asks for a re-projection of approved leave over the records
// in an inclusive date range, optionally for a single user.
type SyncRequest struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
}

func (r *SyncRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SyncResponse reports how many records a resync rewrote.
type SyncResponse struct {
	SyncedRecords int `json:"synced_records"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	DepartmentID string  `json:"department_id"`
	Date         string  `json:"date"`

	CheckInTime     *string `json:"check_in_time,omitempty"`
	CheckInLocation *string `json:"check_in_location,omitempty"`
	CheckInPhotoID  *string `json:"check_in_photo_id,omitempty"`
	CheckInNotes    *string `json:"check_in_notes,omitempty"`

	CheckOutTime     *string `json:"check_out_time,omitempty"`
	CheckOutLocation *string `json:"check_out_location,omitempty"`
	CheckOutPhotoID  *string `json:"check_out_photo_id,omitempty"`
	CheckOutNotes    *string `json:"check_out_notes,omitempty"`

	WorkHours *float64 `json:"work_hours,omitempty"`
	Status    string   `json:"status"`

	IsManualCheckIn  bool `json:"is_manual_check_in"`
	IsManualCheckOut bool `json:"is_manual_check_out"`

	Verified   bool    `json:"verified"`
	VerifiedBy *string `json:"verified_by,omitempty"`
	VerifiedAt *string `json:"verified_at,omitempty"`

	CorrectionID *string `json:"correction_id,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		UserName:         a.UserName,
		DepartmentID:     a.DepartmentID,
		Date:             a.Date.Format("2006-01-02"),
		CheckInPhotoID:   a.CheckInPhotoID,
		CheckInNotes:     a.CheckInNotes,
		CheckOutPhotoID:  a.CheckOutPhotoID,
		CheckOutNotes:    a.CheckOutNotes,
		WorkHours:        a.WorkHours,
		Status:           string(a.Status),
		IsManualCheckIn:  a.IsManualCheckIn,
		IsManualCheckOut: a.IsManualCheckOut,
		Verified:         a.Verified,
		VerifiedBy:       a.VerifiedBy,
		CorrectionID:     a.CorrectionID,
	}

	if a.CheckInTime != nil {
		s := a.CheckInTime.Format("2006-01-02 15:04:05")
		resp.CheckInTime = &s
	}
	if a.CheckInLatitude != nil && a.CheckInLongitude != nil {
		loc := formatLocation(*a.CheckInLatitude, *a.CheckInLongitude)
		resp.CheckInLocation = &loc
	}
	if a.CheckOutTime != nil {
		s := a.CheckOutTime.Format("2006-01-02 15:04:05")
		resp.CheckOutTime = &s
	}
	if a.CheckOutLatitude != nil && a.CheckOutLongitude != nil {
		loc := formatLocation(*a.CheckOutLatitude, *a.CheckOutLongitude)
		resp.CheckOutLocation = &loc
	}
	if a.VerifiedAt != nil {
		s := a.VerifiedAt.Format("2006-01-02 15:04:05")
		resp.VerifiedAt = &s
	}

	return resp
}

// SummaryResponse aggregates attendance counts over a date range.
type SummaryResponse struct {
	UserID           string  `json:"user_id"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalDays        int     `json:"total_days"`
	Present          int     `json:"present"`
	Absent           int     `json:"absent"`
	Late             int     `json:"late"`
	EarlyDeparture   int     `json:"early_departure"`
	OnLeave          int     `json:"on_leave"`
	OfficialTravel   int     `json:"official_travel"`
	RemoteWorking    int     `json:"remote_working"`
	TotalAttendances int     `json:"total_attendances"`
	TotalWorkHours   float64 `json:"total_work_hours"`
	AverageWorkHours float64 `json:"average_work_hours"`
}
