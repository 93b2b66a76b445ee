package statistics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
)

const (
	sheetRecords = "Attendance"
	sheetSummary = "Summary"
)

var recordHeaders = []string{
	"Date", "Name", "Status", "Check In", "Check Out", "Work Hours", "Verified",
}

// buildWorkbook renders the records into a two-sheet spreadsheet: the raw
// rows and a per-status summary.
func buildWorkbook(start, end time.Time, records []attendance.Attendance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRecords); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range recordHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetRecords, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetRecords, "A1", "G1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetRecords, "A", "G", 18); err != nil {
		return nil, err
	}

	for i, a := range records {
		row := i + 2
		values := []interface{}{
			a.Date.Format("2006-01-02"),
			stringOrEmpty(a.UserName),
			string(a.Status),
			formatClock(a.CheckInTime),
			formatClock(a.CheckOutTime),
			floatOrEmpty(a.WorkHours),
			a.Verified,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetRecords, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := writeSummarySheet(f, headerStyle, start, end, records); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeSummarySheet(f *excelize.File, headerStyle int, start, end time.Time, records []attendance.Attendance) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	stats := attendance.Aggregate(start, end, records)
	rows := [][]interface{}{
		{"Period", fmt.Sprintf("%s to %s", stats.StartDate, stats.EndDate)},
		{"Total records", stats.TotalRecords},
		{"Present", stats.Present},
		{"Late", stats.Late},
		{"Early departure", stats.EarlyDeparture},
		{"Absent", stats.Absent},
		{"On leave", stats.OnLeave},
		{"Official travel", stats.OfficialTravel},
		{"Remote working", stats.RemoteWorking},
		{"Total work hours", stats.TotalWorkHours},
		{"Average work hours", stats.AverageWorkHours},
	}

	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetSummary, cell, v); err != nil {
				return err
			}
		}
	}

	lastLabel, err := excelize.CoordinatesToCellName(1, len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", lastLabel, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "A", "B", 22)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
