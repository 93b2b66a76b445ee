package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	day1 := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	hours := func(h float64) *float64 { return &h }
	records := []Attendance{
		{UserID: "user-1", Date: day1, Status: StatusPresent, WorkHours: hours(8.0)},
		{UserID: "user-2", Date: day1, Status: StatusLate, WorkHours: hours(7.5)},
		{UserID: "user-1", Date: day2, Status: StatusRemoteWorking, WorkHours: hours(8.5)},
		{UserID: "user-2", Date: day2, Status: StatusAbsent},
	}

	stats := Aggregate(day1, day2, records)

	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.RemoteWorking)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 24.0, stats.TotalWorkHours)
	assert.Equal(t, 8.0, stats.AverageWorkHours)

	require.Len(t, stats.Daily, 2)
	assert.Equal(t, "2025-03-03", stats.Daily[0].Date)
	assert.Equal(t, 15.5, stats.Daily[0].TotalWorkHours)
	assert.Equal(t, "2025-03-04", stats.Daily[1].Date)
	assert.Equal(t, 1, stats.Daily[1].Absent)
}

func TestAggregateEmpty(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	stats := Aggregate(day, day, nil)

	assert.Equal(t, 0, stats.TotalRecords)
	assert.Equal(t, 0.0, stats.TotalWorkHours)
	assert.Equal(t, 0.0, stats.AverageWorkHours)
	assert.Empty(t, stats.Daily)
}
