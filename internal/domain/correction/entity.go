package correction

import "time"

// Type identifies what kind of attendance mistake a correction fixes.
type Type string

const (
	TypeBreakTimeAsWork Type = "BREAK_TIME_AS_WORK"
	TypeEarlyDeparture  Type = "EARLY_DEPARTURE"
	TypeLateArrival     Type = "LATE_ARRIVAL"
	TypeMissedCheckIn   Type = "MISSED_CHECK_IN"
	TypeMissedCheckOut  Type = "MISSED_CHECK_OUT"
)

// ValidTypes lists every correction type value.
var ValidTypes = []string{
	string(TypeBreakTimeAsWork),
	string(TypeEarlyDeparture),
	string(TypeLateArrival),
	string(TypeMissedCheckIn),
	string(TypeMissedCheckOut),
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// MonthlyLimit is the number of corrections a user may file per calendar
// month, counted by submission time.
const MonthlyLimit = 2

// RequestWindowDays is how far back a correction may reach.
const RequestWindowDays = 30

// Correction is a request to amend one attendance record.
type Correction struct {
	ID           string
	UserID       string
	DepartmentID string
	AttendanceID *string
	Date         time.Time
	Type         Type
	Reason       string
	AttachmentID *string

	// RequestedCheckIn / RequestedCheckOut carry the times the user claims
	// for MISSED_CHECK_IN and MISSED_CHECK_OUT corrections.
	RequestedCheckIn  *time.Time
	RequestedCheckOut *time.Time

	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	Comments   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	UserName *string
}

// IsPending reports whether the correction still awaits review.
func (c Correction) IsPending() bool {
	return c.Status == StatusPending
}

// MonthlyUsage reports a user's correction quota for one calendar month.
type MonthlyUsage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// Remaining returns how many corrections the user may still file.
func (u MonthlyUsage) Remaining() int {
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}
