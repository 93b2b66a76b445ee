package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/config"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
	user.UserRepository
	department.DepartmentRepository
	file.FileRepository

	rules    config.AttendanceConfig
	geofence geo.Geofence

	now func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
	departmentRepository department.DepartmentRepository,
	fileRepository file.FileRepository,
	rules config.AttendanceConfig,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		DepartmentRepository:   departmentRepository,
		FileRepository:         fileRepository,
		rules:                  rules,
		geofence:               geo.NewGeofence(rules.GeofenceLatitude, rules.GeofenceLongitude, rules.GeofenceRadiusMeters),
		now:                    time.Now,
	}
}

// dateOf truncates a timestamp to its calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CheckIn opens today's attendance record for the user.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dateOf(now)

	// An approved leave request for today blocks check-in entirely.
	covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if covering != nil && covering.Type == leave.TypeLeave {
		return attendance.AttendanceResponse{}, attendance.ErrOnLeaveToday
	}

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if err == nil && existing.CheckInTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	dept, err := s.DepartmentRepository.GetPrimaryByMember(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve department: %w", err)
	}
	if dept == nil {
		return attendance.AttendanceResponse{}, department.ErrNoDepartment
	}

	lateCutoff := s.rules.WorkStart.On(now).Add(time.Duration(s.rules.LateToleranceMinutes) * time.Minute)
	status := attendance.DeriveCheckInStatus(attendance.CheckInContext{
		WithinGeofence: s.geofence.Contains(geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}),
		Late:           now.After(lateCutoff),
	})

	checkInTime := now
	record := existing
	if record.ID == "" {
		record = attendance.Attendance{
			ID:           uuid.NewString(),
			UserID:       userID,
			DepartmentID: dept.ID,
			Date:         today,
		}
	}
	record.CheckInTime = &checkInTime
	record.CheckInLatitude = &req.Latitude
	record.CheckInLongitude = &req.Longitude
	record.CheckInAccuracy = req.Accuracy
	record.CheckInProvider = req.Provider
	record.CheckInPhotoID = req.PhotoID
	record.CheckInNotes = req.Notes
	record.Status = status

	// A record without a check-in can already exist for today, left behind
	// by the absence sweep. Check-in fields then overwrite it in place.
	created, err := s.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.PhotoID != nil {
		if err := s.FileRepository.Link(ctx, *req.PhotoID, file.RelatedAttendance, created.ID); err != nil {
			slog.Warn("Failed to link check-in photo", "attendance_id", created.ID, "file_id", *req.PhotoID, "error", err)
		}
	}

	slog.Info("Check-in recorded", "user_id", userID, "status", created.Status)
	return attendance.ToResponse(created), nil
}

// CheckOut closes today's record and re-derives the status.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dateOf(now)

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if record.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	earlyCutoff := s.rules.WorkEnd.On(now).Add(-time.Duration(s.rules.EarlyLeaveToleranceMinutes) * time.Minute)
	early := now.Before(earlyCutoff)

	approvedRemote := false
	if early {
		covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, userID, today)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to check leave status: %w", err)
		}
		if covering != nil && (covering.Type == leave.TypeWFH || covering.Type == leave.TypeWFA) {
			approvedRemote = true
		}
	}

	checkOutTime := now
	workHours := attendance.WorkHoursBetween(*record.CheckInTime, checkOutTime)

	record.CheckOutTime = &checkOutTime
	record.CheckOutLatitude = &req.Latitude
	record.CheckOutLongitude = &req.Longitude
	record.CheckOutAccuracy = req.Accuracy
	record.CheckOutProvider = req.Provider
	record.CheckOutPhotoID = req.PhotoID
	record.CheckOutNotes = req.Notes
	record.WorkHours = &workHours
	record.Status = attendance.DeriveCheckOutStatus(attendance.CheckOutContext{
		Current:        record.Status,
		EarlyDeparture: early,
		ApprovedRemote: approvedRemote,
	})

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.PhotoID != nil {
		if err := s.FileRepository.Link(ctx, *req.PhotoID, file.RelatedAttendance, record.ID); err != nil {
			slog.Warn("Failed to link check-out photo", "attendance_id", record.ID, "file_id", *req.PhotoID, "error", err)
		}
	}

	slog.Info("Check-out recorded", "user_id", userID, "status", record.Status, "work_hours", workHours)
	return attendance.ToResponse(record), nil
}

// FindToday returns the user's record for the current day, if any.
func (s *AttendanceServiceImpl) FindToday(ctx context.Context, userID string) (*attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, dateOf(s.now()))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := attendance.ToResponse(record)
	return &resp, nil
}

// Get returns one record. Non-admin callers may only read their own.
func (s *AttendanceServiceImpl) Get(ctx context.Context, callerID string, role user.Role, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if role != user.RoleAdmin && record.UserID != callerID {
		if allowed, err := s.headsDepartment(ctx, callerID, role, record.DepartmentID); err != nil {
			return attendance.AttendanceResponse{}, err
		} else if !allowed {
			return attendance.AttendanceResponse{}, attendance.ErrNotRecordOwner
		}
	}

	return attendance.ToResponse(record), nil
}

// List returns records matching the filter. Non-admin callers are pinned to
// their own records unless they head the filtered department.
func (s *AttendanceServiceImpl) List(ctx context.Context, callerID string, role user.Role, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
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

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}

	return responses, nil
}

// Verify marks a record reviewed, optionally overriding status and notes.
func (s *AttendanceServiceImpl) Verify(ctx context.Context, reviewerID string, role user.Role, req attendance.VerifyRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if role != user.RoleAdmin {
		allowed, err := s.headsDepartment(ctx, reviewerID, role, record.DepartmentID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if !allowed {
			return attendance.AttendanceResponse{}, department.ErrNotDepartmentHead
		}
	}

	now := s.now()
	record.Verified = true
	record.VerifiedBy = &reviewerID
	record.VerifiedAt = &now
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.Notes != nil {
		record.CheckInNotes = req.Notes
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance verified", "attendance_id", record.ID, "reviewer_id", reviewerID)
	return attendance.ToResponse(record), nil
}

// GetSummary aggregates a user's records over an inclusive date range.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, callerID string, role user.Role, userID string, start, end time.Time) (attendance.SummaryResponse, error) {
	if role != user.RoleAdmin && role != user.RoleKajur && userID != callerID {
		return attendance.SummaryResponse{}, attendance.ErrNotRecordOwner
	}

	records, err := s.AttendanceRepository.ListByUserAndRange(ctx, userID, dateOf(start), dateOf(end))
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return attendance.Summarize(userID, start, end, records), nil
}

// CreateManual creates an attendance record on behalf of a user, typically
// from an approved MISSED_CHECK_IN correction. An approved leave request
// covering the day overrides the requested status.
func (s *AttendanceServiceImpl) CreateManual(ctx context.Context, userID string, date time.Time, checkIn, checkOut *time.Time, status attendance.Status, correctionID *string, reviewerID string) (attendance.Attendance, error) {
	dept, err := s.DepartmentRepository.GetPrimaryByMember(ctx, userID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to resolve department: %w", err)
	}
	if dept == nil {
		return attendance.Attendance{}, department.ErrNoDepartment
	}

	covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, userID, dateOf(date))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if covering != nil {
		status = attendance.StatusForLeaveType(covering.Type)
	}

	now := s.now()
	record := attendance.Attendance{
		ID:              uuid.NewString(),
		UserID:          userID,
		DepartmentID:    dept.ID,
		Date:            dateOf(date),
		CheckInTime:     checkIn,
		CheckOutTime:    checkOut,
		Status:          status,
		IsManualCheckIn: true,
		Verified:        true,
		VerifiedBy:      &reviewerID,
		VerifiedAt:      &now,
		CorrectionID:    correctionID,
	}
	if checkOut != nil {
		record.IsManualCheckOut = true
	}
	if checkIn != nil && checkOut != nil {
		hours := attendance.WorkHoursBetween(*checkIn, *checkOut)
		record.WorkHours = &hours
	}

	return s.AttendanceRepository.Create(ctx, record)
}

// ApplyCorrection rewrites an existing record from an approved correction.
// The mutation depends on the correction type and is performed by the
// correction service, which passes the fully updated record here.
func (s *AttendanceServiceImpl) ApplyCorrection(ctx context.Context, record attendance.Attendance) error {
	return s.AttendanceRepository.Update(ctx, record)
}

// syncedLeaveHours is credited for every day projected from approved leave.
const syncedLeaveHours = 8.0

// leaveProjection builds the synthetic, auto-verified record an approved
// leave request projects onto a covered day.
func (s *AttendanceServiceImpl) leaveProjection(userID, departmentID string, day time.Time, request *leave.LeaveRequest) attendance.Attendance {
	checkIn := s.rules.WorkStart.On(day)
	checkOut := s.rules.WorkEnd.On(day)
	hours := syncedLeaveHours
	notes := attendance.LeaveSyncTag(request.Type)
	verifiedAt := s.now()

	return attendance.Attendance{
		ID:               uuid.NewString(),
		UserID:           userID,
		DepartmentID:     departmentID,
		Date:             day,
		CheckInTime:      &checkIn,
		CheckOutTime:     &checkOut,
		CheckInNotes:     &notes,
		WorkHours:        &hours,
		Status:           attendance.StatusForLeaveType(request.Type),
		IsManualCheckIn:  true,
		IsManualCheckOut: true,
		Verified:         true,
		VerifiedBy:       request.ReviewedBy,
		VerifiedAt:       &verifiedAt,
	}
}

// MarkAbsencesForToday inserts a record for every active user with no record
// today: ABSENT by default, or the leave-mapped status with synthetic work
// hours when an approved leave request covers the day. A failure for one
// user does not stop the sweep.
func (s *AttendanceServiceImpl) MarkAbsencesForToday(ctx context.Context) error {
	today := dateOf(s.now())

	users, err := s.UserRepository.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	recorded, err := s.AttendanceRepository.ListUserIDsWithRecordOn(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list today's records: %w", err)
	}
	hasRecord := make(map[string]bool, len(recorded))
	for _, id := range recorded {
		hasRecord[id] = true
	}

	marked := 0
	for _, u := range users {
		if hasRecord[u.ID] {
			continue
		}

		dept, err := s.DepartmentRepository.GetPrimaryByMember(ctx, u.ID)
		if err != nil {
			slog.Warn("Failed to resolve department for absence marking", "user_id", u.ID, "error", err)
			continue
		}
		if dept == nil {
			continue
		}

		covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, u.ID, today)
		if err != nil {
			slog.Warn("Failed to check leave status for absence marking", "user_id", u.ID, "error", err)
			continue
		}

		record := attendance.Attendance{
			ID:           uuid.NewString(),
			UserID:       u.ID,
			DepartmentID: dept.ID,
			Date:         today,
			Status:       attendance.StatusAbsent,
		}
		if covering != nil {
			record = s.leaveProjection(u.ID, dept.ID, today, covering)
		}
		if _, err := s.AttendanceRepository.Create(ctx, record); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				continue
			}
			slog.Warn("Failed to mark absence", "user_id", u.ID, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Absence marking completed", "date", today.Format("2006-01-02"), "marked", marked)
	return nil
}

// SynchronizeWithLeaveRequests re-projects approved leave onto attendance
// records in the inclusive [start, end] range, optionally narrowed to one
// user. It repairs days the approval-time projection missed, e.g. a leave
// approved retroactively after the absence sweep already wrote ABSENT.
// Returns the number of records rewritten.
func (s *AttendanceServiceImpl) SynchronizeWithLeaveRequests(ctx context.Context, userID *string, start, end time.Time) (int, error) {
	startStr := dateOf(start).Format("2006-01-02")
	endStr := dateOf(end).Format("2006-01-02")
	records, err := s.AttendanceRepository.List(ctx, attendance.AttendanceFilter{
		UserID:    userID,
		StartDate: &startStr,
		EndDate:   &endStr,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance records: %w", err)
	}

	synced := 0
	for _, record := range records {
		covering, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, record.UserID, record.Date)
		if err != nil {
			slog.Warn("Failed to check leave status during resync", "attendance_id", record.ID, "error", err)
			continue
		}
		if covering == nil {
			continue
		}

		tag := attendance.LeaveSyncTag(covering.Type)
		if record.CheckInNotes != nil && strings.Contains(*record.CheckInNotes, tag) {
			continue
		}

		projected := s.leaveProjection(record.UserID, record.DepartmentID, record.Date, covering)
		projected.ID = record.ID
		if err := s.AttendanceRepository.Update(ctx, projected); err != nil {
			slog.Warn("Failed to re-project leave onto attendance", "attendance_id", record.ID, "error", err)
			continue
		}
		synced++
	}

	if synced > 0 {
		slog.Info("Attendance resynchronized with leave requests", "records", synced)
	}
	return synced, nil
}

func (s *AttendanceServiceImpl) headsDepartment(ctx context.Context, callerID string, role user.Role, departmentID string) (bool, error) {
	if role != user.RoleKajur {
		return false, nil
	}
	dept, err := s.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return false, nil
		}
		return false, err
	}
	return dept.IsHeadedBy(callerID), nil
}
