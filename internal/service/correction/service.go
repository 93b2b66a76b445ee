package correction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/correction"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

// breakTimeCredit is the work-hours credit for an approved
// BREAK_TIME_AS_WORK correction.
const breakTimeCredit = 1.0

// attendanceLedger is the slice of the attendance service the correction
// workflow writes through, so record creation and rewrites share one path.
type attendanceLedger interface {
	CreateManual(ctx context.Context, userID string, date time.Time, checkIn, checkOut *time.Time, status attendance.Status, correctionID *string, reviewerID string) (attendance.Attendance, error)
	ApplyCorrection(ctx context.Context, record attendance.Attendance) error
}

type CorrectionServiceImpl struct {
	correction.CorrectionRepository
	attendance.AttendanceRepository
	department.DepartmentRepository
	file.FileRepository

	ledger attendanceLedger

	now func() time.Time
}

func NewCorrectionService(
	correctionRepository correction.CorrectionRepository,
	attendanceRepository attendance.AttendanceRepository,
	departmentRepository department.DepartmentRepository,
	fileRepository file.FileRepository,
	ledger attendanceLedger,
) *CorrectionServiceImpl {
	return &CorrectionServiceImpl{
		CorrectionRepository: correctionRepository,
		AttendanceRepository: attendanceRepository,
		DepartmentRepository: departmentRepository,
		FileRepository:       fileRepository,
		ledger:               ledger,
		now:                  time.Now,
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay compares two timestamps by calendar date, ignoring their zones.
// Dates loaded from the database carry UTC while request dates are parsed
// in the server's zone.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// monthBoundsOf returns the [start, next) window of t's calendar month.
func monthBoundsOf(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// Create submits a correction request for the calling user.
func (s *CorrectionServiceImpl) Create(ctx context.Context, userID string, req correction.CreateCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	now := s.now()
	today := dayOf(now)
	date, err := time.ParseInLocation("2006-01-02", req.Date, now.Location())
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("invalid correction date: %w", err)
	}

	if date.After(today) {
		return correction.CorrectionResponse{}, correction.ErrDateInFuture
	}
	if date.Before(today.AddDate(0, 0, -correction.RequestWindowDays)) {
		return correction.CorrectionResponse{}, correction.ErrDateTooOld
	}

	dept, err := s.DepartmentRepository.GetPrimaryByMember(ctx, userID)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to resolve department: %w", err)
	}
	if dept == nil {
		return correction.CorrectionResponse{}, department.ErrNoDepartment
	}

	monthStart, monthEnd := monthBoundsOf(now)
	used, err := s.CorrectionRepository.CountByUserInRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to count corrections: %w", err)
	}
	if used >= correction.MonthlyLimit {
		return correction.CorrectionResponse{}, correction.ErrMonthlyLimitUsed
	}

	// The referenced record must belong to the requester and sit on the
	// correction date.
	if req.AttendanceID != nil {
		record, err := s.AttendanceRepository.GetByID(ctx, *req.AttendanceID)
		if err != nil {
			return correction.CorrectionResponse{}, err
		}
		if record.UserID != userID {
			return correction.CorrectionResponse{}, attendance.ErrNotRecordOwner
		}
		if !sameDay(record.Date, date) {
			return correction.CorrectionResponse{}, fmt.Errorf("attendance record date does not match correction date")
		}
	}

	c := correction.Correction{
		ID:           uuid.NewString(),
		UserID:       userID,
		DepartmentID: dept.ID,
		AttendanceID: req.AttendanceID,
		Date:         date,
		Type:         correction.Type(req.Type),
		Reason:       req.Reason,
		AttachmentID: req.AttachmentID,
		Status:       correction.StatusPending,
	}
	if req.RequestedCheckIn != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04:05", *req.RequestedCheckIn, now.Location())
		if err != nil {
			return correction.CorrectionResponse{}, fmt.Errorf("invalid requested check-in time: %w", err)
		}
		c.RequestedCheckIn = &t
	}
	if req.RequestedCheckOut != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04:05", *req.RequestedCheckOut, now.Location())
		if err != nil {
			return correction.CorrectionResponse{}, fmt.Errorf("invalid requested check-out time: %w", err)
		}
		c.RequestedCheckOut = &t
	}

	created, err := s.CorrectionRepository.Create(ctx, c)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	if req.AttachmentID != nil {
		if err := s.FileRepository.Link(ctx, *req.AttachmentID, file.RelatedCorrection, created.ID); err != nil {
			slog.Warn("Failed to link attachment", "correction_id", created.ID, "file_id", *req.AttachmentID, "error", err)
		}
	}

	slog.Info("Correction submitted", "correction_id", created.ID, "user_id", userID, "type", created.Type)
	return correction.ToResponse(created), nil
}

// GetMonthlyUsage reports the caller's quota for the current month.
func (s *CorrectionServiceImpl) GetMonthlyUsage(ctx context.Context, userID string) (correction.MonthlyUsage, error) {
	monthStart, monthEnd := monthBoundsOf(s.now())
	used, err := s.CorrectionRepository.CountByUserInRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return correction.MonthlyUsage{}, err
	}

	return correction.MonthlyUsage{Used: used, Limit: correction.MonthlyLimit}, nil
}

// Get returns one correction. Owners always may; others need review
// authority over its department.
func (s *CorrectionServiceImpl) Get(ctx context.Context, callerID string, role user.Role, id string) (correction.CorrectionResponse, error) {
	c, err := s.CorrectionRepository.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	if c.UserID != callerID && role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, callerID, role, c.DepartmentID)
		if err != nil {
			return correction.CorrectionResponse{}, err
		}
		if !allowed {
			return correction.CorrectionResponse{}, correction.ErrNotRequestOwner
		}
	}

	return correction.ToResponse(c), nil
}

// List returns corrections matching the filter, scoped like attendance.
func (s *CorrectionServiceImpl) List(ctx context.Context, callerID string, role user.Role, filter correction.CorrectionFilter) ([]correction.CorrectionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if role != user.RoleAdmin {
		scoped := false
		if role == user.RoleKajur && filter.DepartmentID != nil {
			allowed, err := s.headsDepartment(ctx, callerID, role, *filter.DepartmentID)
			if err != nil {
				return nil, err
			}
			scoped = allowed
		}
		if !scoped {
			filter.UserID = &callerID
		}
	}

	corrections, err := s.CorrectionRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, correction.ToResponse(c))
	}

	return responses, nil
}

// ListPendingByDepartment returns the review queue for a department.
func (s *CorrectionServiceImpl) ListPendingByDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) ([]correction.CorrectionResponse, error) {
	if role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, callerID, role, departmentID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, department.ErrNotDepartmentHead
		}
	}

	corrections, err := s.CorrectionRepository.ListPendingByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, correction.ToResponse(c))
	}

	return responses, nil
}

// Review approves or rejects a pending correction. A rejection requires
// comments; an approval applies the correction to the attendance ledger.
func (s *CorrectionServiceImpl) Review(ctx context.Context, reviewerID string, role user.Role, req correction.ReviewCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	c, err := s.CorrectionRepository.GetByID(ctx, req.ID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if !c.IsPending() {
		return correction.CorrectionResponse{}, correction.ErrAlreadyReviewed
	}

	if role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, reviewerID, role, c.DepartmentID)
		if err != nil {
			return correction.CorrectionResponse{}, err
		}
		if !allowed {
			return correction.CorrectionResponse{}, department.ErrNotDepartmentHead
		}
	}

	if correction.Status(req.Status) == correction.StatusRejected && (req.Comments == nil || *req.Comments == "") {
		return correction.CorrectionResponse{}, correction.ErrRejectionReason
	}

	now := s.now()
	c.Status = correction.Status(req.Status)
	c.ReviewedBy = &reviewerID
	c.ReviewedAt = &now
	c.Comments = req.Comments

	if c.Status == correction.StatusApproved {
		if err := s.apply(ctx, &c, reviewerID); err != nil {
			return correction.CorrectionResponse{}, fmt.Errorf("failed to apply correction: %w", err)
		}
	}

	if err := s.CorrectionRepository.Update(ctx, c); err != nil {
		return correction.CorrectionResponse{}, err
	}

	slog.Info("Correction reviewed", "correction_id", c.ID, "status", c.Status, "reviewer_id", reviewerID)
	return correction.ToResponse(c), nil
}

// apply mutates the attendance ledger according to the correction type.
func (s *CorrectionServiceImpl) apply(ctx context.Context, c *correction.Correction, reviewerID string) error {
	record, err := s.targetRecord(ctx, c)
	if err != nil {
		if c.Type == correction.TypeMissedCheckIn && errors.Is(err, attendance.ErrAttendanceNotFound) {
			return s.createFromMissedCheckIn(ctx, c, reviewerID)
		}
		return err
	}
	if record.UserID != c.UserID {
		return attendance.ErrNotRecordOwner
	}

	switch c.Type {
	case correction.TypeBreakTimeAsWork:
		hours := breakTimeCredit
		if record.WorkHours != nil {
			hours = *record.WorkHours + breakTimeCredit
		}
		record.WorkHours = &hours

	case correction.TypeEarlyDeparture:
		if record.Status == attendance.StatusEarlyDeparture {
			record.Status = attendance.StatusPresent
		}

	case correction.TypeLateArrival:
		if record.Status == attendance.StatusLate {
			record.Status = attendance.StatusPresent
		}

	case correction.TypeMissedCheckIn:
		record.CheckInTime = c.RequestedCheckIn
		record.IsManualCheckIn = true
		if record.CheckInTime != nil && record.CheckOutTime != nil {
			hours := attendance.WorkHoursBetween(*record.CheckInTime, *record.CheckOutTime)
			record.WorkHours = &hours
		}

	case correction.TypeMissedCheckOut:
		if record.CheckInTime == nil {
			return attendance.ErrNotCheckedIn
		}
		record.CheckOutTime = c.RequestedCheckOut
		record.IsManualCheckOut = true
		if record.CheckOutTime != nil {
			hours := attendance.WorkHoursBetween(*record.CheckInTime, *record.CheckOutTime)
			record.WorkHours = &hours
		}
	}

	now := s.now()
	record.Verified = true
	record.VerifiedBy = &reviewerID
	record.VerifiedAt = &now
	record.CorrectionID = &c.ID
	c.AttendanceID = &record.ID

	return s.ledger.ApplyCorrection(ctx, record)
}

func (s *CorrectionServiceImpl) targetRecord(ctx context.Context, c *correction.Correction) (attendance.Attendance, error) {
	if c.AttendanceID != nil {
		return s.AttendanceRepository.GetByID(ctx, *c.AttendanceID)
	}
	return s.AttendanceRepository.GetByUserAndDate(ctx, c.UserID, dayOf(c.Date))
}

// createFromMissedCheckIn builds a fresh record when the day has none. The
// attendance service re-derives the status when the day falls under an
// approved leave request.
func (s *CorrectionServiceImpl) createFromMissedCheckIn(ctx context.Context, c *correction.Correction, reviewerID string) error {
	created, err := s.ledger.CreateManual(ctx, c.UserID, c.Date, c.RequestedCheckIn, nil, attendance.StatusPresent, &c.ID, reviewerID)
	if err != nil {
		return err
	}
	c.AttendanceID = &created.ID

	return nil
}

func (s *CorrectionServiceImpl) headsDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) (bool, error) {
	if role != user.RoleKajur {
		return false, nil
	}
	dept, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return false, err
	}
	return dept.IsHeadedBy(callerID), nil
}
