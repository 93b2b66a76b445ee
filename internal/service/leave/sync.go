package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/config"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
)

// syncedWorkHours is recorded for every synthesized day.
const syncedWorkHours = 8.0

// Synchronizer projects approved leave requests onto the attendance ledger:
// every covered day gets a synthetic, auto-verified record carrying the
// status the leave type maps to. Each record is tagged in its notes so
// reruns skip days that are already projected.
type Synchronizer struct {
	attendanceRepository attendance.AttendanceRepository
	leaveRepository      leave.LeaveRequestRepository

	rules config.AttendanceConfig

	now func() time.Time
}

func NewSynchronizer(
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRequestRepository,
	rules config.AttendanceConfig,
) *Synchronizer {
	return &Synchronizer{
		attendanceRepository: attendanceRepository,
		leaveRepository:      leaveRepository,
		rules:                rules,
		now:                  time.Now,
	}
}

// SyncRequest projects one approved request. Days after today are left
// alone; the nightly sweep picks them up as they arrive.
func (s *Synchronizer) SyncRequest(ctx context.Context, request leave.LeaveRequest) error {
	if request.Status != leave.StatusApproved {
		return nil
	}

	// Request dates come back from storage in UTC; re-anchor them in the
	// clock's zone so "today" and the covered days agree on midnight.
	loc := s.now().Location()
	today := dayIn(s.now(), loc)
	status := attendance.StatusForLeaveType(request.Type)
	tag := attendance.LeaveSyncTag(request.Type)

	synced := 0
	last := dayIn(request.EndDate, loc)
	for day := dayIn(request.StartDate, loc); !day.After(last); day = day.AddDate(0, 0, 1) {
		if day.After(today) {
			continue
		}

		existing, err := s.attendanceRepository.GetByUserAndDate(ctx, request.UserID, day)
		if err == nil && existing.CheckInNotes != nil && strings.Contains(*existing.CheckInNotes, tag) {
			continue
		}

		checkIn := s.rules.WorkStart.On(day)
		checkOut := s.rules.WorkEnd.On(day)
		hours := syncedWorkHours
		notes := tag
		verifiedAt := s.now()

		record := attendance.Attendance{
			ID:               uuid.NewString(),
			UserID:           request.UserID,
			DepartmentID:     request.DepartmentID,
			Date:             day,
			CheckInTime:      &checkIn,
			CheckOutTime:     &checkOut,
			CheckInNotes:     &notes,
			WorkHours:        &hours,
			Status:           status,
			IsManualCheckIn:  true,
			IsManualCheckOut: true,
			Verified:         true,
			VerifiedBy:       request.ReviewedBy,
			VerifiedAt:       &verifiedAt,
		}

		if _, err := s.attendanceRepository.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to upsert attendance for %s: %w", day.Format("2006-01-02"), err)
		}
		synced++
	}

	if synced > 0 {
		slog.Info("Leave synchronized to attendance", "leave_request_id", request.ID, "user_id", request.UserID, "days", synced)
	}
	return nil
}

// SyncAll sweeps every approved request that is still running or ended
// recently. A failure on one request does not stop the sweep.
func (s *Synchronizer) SyncAll(ctx context.Context) error {
	today := dayOf(s.now())

	requests, err := s.leaveRepository.ListApprovedEndingOnOrAfter(ctx, today.AddDate(0, 0, -1))
	if err != nil {
		return fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	for _, request := range requests {
		if err := s.SyncRequest(ctx, request); err != nil {
			slog.Warn("Failed to synchronize leave request", "leave_request_id", request.ID, "error", err)
		}
	}

	return nil
}

func dayOf(t time.Time) time.Time {
	return dayIn(t, t.Location())
}

// dayIn re-anchors t's calendar date at midnight in loc.
func dayIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
