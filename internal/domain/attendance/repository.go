package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates are compared on the calendar day, times are stored as given.
type AttendanceRepository interface {
	// Create inserts a new record. The (user_id, date) pair is unique; a
	// second insert for the same day fails.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate returns the record for the user on the given
	// calendar day, or ErrAttendanceNotFound.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Attendance, error)

	Update(ctx context.Context, a Attendance) error

	// Upsert inserts the record or, when one already exists for the
	// (user_id, date) pair, overwrites its mutable fields. Used by the
	// leave synchronizer so reruns stay idempotent.
	Upsert(ctx context.Context, a Attendance) (Attendance, error)

	// List retrieves records matching the filter, newest date first.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// ListByUserAndRange retrieves a user's records with date in the
	// inclusive [start, end] range, oldest first.
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// ListUserIDsWithRecordOn returns the IDs of users that already have a
	// record on the given day. Used by the absence-marking job.
	ListUserIDsWithRecordOn(ctx context.Context, date time.Time) ([]string, error)
}

// Summarize folds a slice of records into a summary for the given range.
func Summarize(userID string, start, end time.Time, records []Attendance) SummaryResponse {
	s := SummaryResponse{
		UserID:    userID,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		TotalDays: len(records),
	}

	daysWithHours := 0
	for _, a := range records {
		switch a.Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		case StatusEarlyDeparture:
			s.EarlyDeparture++
		case StatusOnLeave:
			s.OnLeave++
		case StatusOfficialTravel:
			s.OfficialTravel++
		case StatusRemoteWorking:
			s.RemoteWorking++
		}
		if a.WorkHours != nil {
			s.TotalWorkHours += *a.WorkHours
			daysWithHours++
		}
	}

	// Days the user actually worked, on site or remotely.
	s.TotalAttendances = s.Present + s.Late + s.EarlyDeparture + s.RemoteWorking + s.OfficialTravel

	if daysWithHours > 0 {
		s.AverageWorkHours = roundHours(s.TotalWorkHours / float64(daysWithHours))
		s.TotalWorkHours = roundHours(s.TotalWorkHours)
	}

	return s
}
