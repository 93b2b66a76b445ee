package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrOnLeaveToday      = errors.New("you are on leave today and cannot check in")
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotRecordOwner     = errors.New("attendance record does not belong to this user")
)
