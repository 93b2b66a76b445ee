package attendance

import (
	"fmt"
	"math"
	"time"
)

// Attendance is the single record for one (user, calendar day). It is
// created on first check-in, by the absence-marking job, or by a
// correction / leave synchronization, and is never hard-deleted.
type Attendance struct {
	ID           string
	UserID       string
	DepartmentID string // denormalized at creation time
	Date         time.Time

	CheckInTime      *time.Time
	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInAccuracy  *float64
	CheckInProvider  *string
	CheckInPhotoID   *string
	CheckInNotes     *string

	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutAccuracy  *float64
	CheckOutProvider  *string
	CheckOutPhotoID   *string
	CheckOutNotes     *string

	WorkHours *float64
	Status    Status

	IsManualCheckIn  bool
	IsManualCheckOut bool

	Verified   bool
	VerifiedBy *string
	VerifiedAt *time.Time

	CorrectionID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	UserName *string
}

// WorkHoursBetween computes work hours as (checkOut - checkIn), rounded to
// 2 decimal places.
func WorkHoursBetween(checkIn, checkOut time.Time) float64 {
	return roundHours(checkOut.Sub(checkIn).Hours())
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func formatLocation(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}
