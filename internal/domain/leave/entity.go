package leave

import "time"

type Type string

const (
	// TypeLeave is ordinary leave (cuti).
	TypeLeave Type = "LEAVE"
	// TypeWFH is work-from-home.
	TypeWFH Type = "WFH"
	// TypeWFA is work-from-anywhere.
	TypeWFA Type = "WFA"
	// TypeDL is official travel (dinas luar).
	TypeDL Type = "DL"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// LeaveRequest is an employee-submitted request for leave, remote work or
// official travel over an inclusive day-granularity date range.
type LeaveRequest struct {
	ID           string
	UserID       string
	DepartmentID string
	Type         Type
	StartDate    time.Time // day granularity, inclusive
	EndDate      time.Time // day granularity, inclusive
	Reason       string
	AttachmentID *string
	Status       Status
	ReviewedBy   *string
	ReviewedAt   *time.Time
	Comments     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Covers reports whether the request's inclusive window contains the given
// date (both day-truncated).
func (l LeaveRequest) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, date.Location())
	return !d.Before(start) && !d.After(end)
}

// LeaveStatus is the result of the authoritative "is this user on approved
// leave on this date" check consumed by the attendance ledger.
type LeaveStatus struct {
	IsOnLeave bool
	LeaveType Type
}
