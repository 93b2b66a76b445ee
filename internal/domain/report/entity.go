package report

import "time"

// Format of a generated report file.
type Format string

const (
	FormatExcel Format = "xlsx"
)

// Report records one generated attendance report: who asked for it, the
// range it covers and where the spreadsheet landed.
type Report struct {
	ID           string
	GeneratedBy  string
	DepartmentID *string
	UserID       *string
	StartDate    time.Time
	EndDate      time.Time
	Format       Format
	FileName     string
	StoredPath   string
	Size         int64
	CreatedAt    time.Time
}
