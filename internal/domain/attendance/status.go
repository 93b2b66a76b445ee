package attendance

import (
	"strings"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
)

// Status is the working status of an attendance record. Exactly one value
// per record at any time; later derivations overwrite earlier ones.
type Status string

const (
	StatusPresent        Status = "present"
	StatusAbsent         Status = "absent"
	StatusLate           Status = "late"
	StatusEarlyDeparture Status = "early_departure"
	StatusOnLeave        Status = "on_leave"
	StatusOfficialTravel Status = "official_travel"
	StatusRemoteWorking  Status = "remote_working"
)

// ValidStatuses lists every working status value.
var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusEarlyDeparture),
	string(StatusOnLeave),
	string(StatusOfficialTravel),
	string(StatusRemoteWorking),
}

// CheckInContext carries the facts needed to derive the status at check-in.
type CheckInContext struct {
	WithinGeofence bool
	Late           bool
}

// DeriveCheckInStatus is the single status derivation used by every
// check-in path. The geofence check takes priority over lateness.
func DeriveCheckInStatus(c CheckInContext) Status {
	if !c.WithinGeofence {
		return StatusRemoteWorking
	}
	if c.Late {
		return StatusLate
	}
	return StatusPresent
}

// CheckOutContext carries the facts needed to re-derive the status at
// check-out.
type CheckOutContext struct {
	Current        Status
	EarlyDeparture bool
	// ApprovedRemote is true when the user holds an approved WFH/WFA
	// leave for the day.
	ApprovedRemote bool
}

// DeriveCheckOutStatus only downgrades PRESENT: an early departure never
// overrides LATE or REMOTE_WORKING, and an approved WFH/WFA reclassifies
// the early departure as remote work.
func DeriveCheckOutStatus(c CheckOutContext) Status {
	if !c.EarlyDeparture || c.Current != StatusPresent {
		return c.Current
	}
	if c.ApprovedRemote {
		return StatusRemoteWorking
	}
	return StatusEarlyDeparture
}

// LeaveSyncTag is the note annotation marking a record as projected from an
// approved leave request. Sweeps skip days whose notes already carry it.
func LeaveSyncTag(t leave.Type) string {
	return "[synced:" + strings.ToLower(string(t)) + "]"
}

// StatusForLeaveType maps an approved leave type to the working status the
// attendance record carries for the covered days.
func StatusForLeaveType(t leave.Type) Status {
	switch t {
	case leave.TypeLeave:
		return StatusOnLeave
	case leave.TypeWFH, leave.TypeWFA:
		return StatusRemoteWorking
	case leave.TypeDL:
		return StatusOfficialTravel
	default:
		return StatusPresent
	}
}
