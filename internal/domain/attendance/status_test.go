package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
)

func TestDeriveCheckInStatus(t *testing.T) {
	tests := []struct {
		name string
		ctx  CheckInContext
		want Status
	}{
		{
			name: "on time within geofence",
			ctx:  CheckInContext{WithinGeofence: true, Late: false},
			want: StatusPresent,
		},
		{
			name: "late within geofence",
			ctx:  CheckInContext{WithinGeofence: true, Late: true},
			want: StatusLate,
		},
		{
			name: "outside geofence on time",
			ctx:  CheckInContext{WithinGeofence: false, Late: false},
			want: StatusRemoteWorking,
		},
		{
			name: "outside geofence beats lateness",
			ctx:  CheckInContext{WithinGeofence: false, Late: true},
			want: StatusRemoteWorking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCheckInStatus(tt.ctx))
		})
	}
}

func TestDeriveCheckOutStatus(t *testing.T) {
	tests := []struct {
		name string
		ctx  CheckOutContext
		want Status
	}{
		{
			name: "present leaving early becomes early departure",
			ctx:  CheckOutContext{Current: StatusPresent, EarlyDeparture: true},
			want: StatusEarlyDeparture,
		},
		{
			name: "present leaving on time stays present",
			ctx:  CheckOutContext{Current: StatusPresent, EarlyDeparture: false},
			want: StatusPresent,
		},
		{
			name: "late is never downgraded",
			ctx:  CheckOutContext{Current: StatusLate, EarlyDeparture: true},
			want: StatusLate,
		},
		{
			name: "remote working is never downgraded",
			ctx:  CheckOutContext{Current: StatusRemoteWorking, EarlyDeparture: true},
			want: StatusRemoteWorking,
		},
		{
			name: "approved wfh reclassifies early departure",
			ctx:  CheckOutContext{Current: StatusPresent, EarlyDeparture: true, ApprovedRemote: true},
			want: StatusRemoteWorking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCheckOutStatus(tt.ctx))
		})
	}
}

func TestStatusForLeaveType(t *testing.T) {
	assert.Equal(t, StatusOnLeave, StatusForLeaveType(leave.TypeLeave))
	assert.Equal(t, StatusRemoteWorking, StatusForLeaveType(leave.TypeWFH))
	assert.Equal(t, StatusRemoteWorking, StatusForLeaveType(leave.TypeWFA))
	assert.Equal(t, StatusOfficialTravel, StatusForLeaveType(leave.TypeDL))
}

func TestWorkHoursBetween(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	assert.InDelta(t, 8.67, WorkHoursBetween(checkIn, checkOut), 0.001)
}

func TestSummarize(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	h1, h2 := 8.0, 7.5
	records := []Attendance{
		{Status: StatusPresent, WorkHours: &h1},
		{Status: StatusLate, WorkHours: &h2},
		{Status: StatusAbsent},
		{Status: StatusOnLeave},
	}

	s := Summarize("user-1", start, end, records)

	assert.Equal(t, 4, s.TotalDays)
	assert.Equal(t, 1, s.Present)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, 1, s.Absent)
	assert.Equal(t, 1, s.OnLeave)
	// ON_LEAVE and ABSENT days are not attendances.
	assert.Equal(t, 2, s.TotalAttendances)
	assert.InDelta(t, 15.5, s.TotalWorkHours, 0.001)
	// Average over days that actually have recorded hours.
	assert.InDelta(t, 7.75, s.AverageWorkHours, 0.001)
}
