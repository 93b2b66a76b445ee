package attendance

import (
	"sort"
	"time"
)

// DailyCountResponse is one calendar day's roll-up inside a statistics
// breakdown.
type DailyCountResponse struct {
	Date           string  `json:"date"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	EarlyDeparture int     `json:"early_departure"`
	OnLeave        int     `json:"on_leave"`
	OfficialTravel int     `json:"official_travel"`
	RemoteWorking  int     `json:"remote_working"`
	TotalWorkHours float64 `json:"total_work_hours"`
}

// StatisticsResponse aggregates attendance records over a range, with a
// per-day breakdown.
type StatisticsResponse struct {
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	DepartmentID     *string              `json:"department_id,omitempty"`
	UserID           *string              `json:"user_id,omitempty"`
	TotalRecords     int                  `json:"total_records"`
	Present          int                  `json:"present"`
	Absent           int                  `json:"absent"`
	Late             int                  `json:"late"`
	EarlyDeparture   int                  `json:"early_departure"`
	OnLeave          int                  `json:"on_leave"`
	OfficialTravel   int                  `json:"official_travel"`
	RemoteWorking    int                  `json:"remote_working"`
	TotalWorkHours   float64              `json:"total_work_hours"`
	AverageWorkHours float64              `json:"average_work_hours"`
	Daily            []DailyCountResponse `json:"daily"`
}

// Aggregate folds records into range totals plus a per-day breakdown,
// oldest day first.
func Aggregate(start, end time.Time, records []Attendance) StatisticsResponse {
	s := StatisticsResponse{
		StartDate:    start.Format("2006-01-02"),
		EndDate:      end.Format("2006-01-02"),
		TotalRecords: len(records),
		Daily:        []DailyCountResponse{},
	}

	byDay := make(map[string]*DailyCountResponse)
	recordsWithHours := 0

	for _, a := range records {
		key := a.Date.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			day = &DailyCountResponse{Date: key}
			byDay[key] = day
		}

		switch a.Status {
		case StatusPresent:
			s.Present++
			day.Present++
		case StatusAbsent:
			s.Absent++
			day.Absent++
		case StatusLate:
			s.Late++
			day.Late++
		case StatusEarlyDeparture:
			s.EarlyDeparture++
			day.EarlyDeparture++
		case StatusOnLeave:
			s.OnLeave++
			day.OnLeave++
		case StatusOfficialTravel:
			s.OfficialTravel++
			day.OfficialTravel++
		case StatusRemoteWorking:
			s.RemoteWorking++
			day.RemoteWorking++
		}

		if a.WorkHours != nil {
			s.TotalWorkHours += *a.WorkHours
			day.TotalWorkHours = roundHours(day.TotalWorkHours + *a.WorkHours)
			recordsWithHours++
		}
	}

	if recordsWithHours > 0 {
		s.AverageWorkHours = roundHours(s.TotalWorkHours / float64(recordsWithHours))
		s.TotalWorkHours = roundHours(s.TotalWorkHours)
	}

	for _, day := range byDay {
		s.Daily = append(s.Daily, *day)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })

	return s
}
