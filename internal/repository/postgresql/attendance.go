package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.user_id, a.department_id, a.date,
	   a.check_in_time, a.check_in_latitude, a.check_in_longitude, a.check_in_accuracy,
	   a.check_in_provider, a.check_in_photo_id, a.check_in_notes,
	   a.check_out_time, a.check_out_latitude, a.check_out_longitude, a.check_out_accuracy,
	   a.check_out_provider, a.check_out_photo_id, a.check_out_notes,
	   a.work_hours, a.status, a.is_manual_check_in, a.is_manual_check_out,
	   a.verified, a.verified_by, a.verified_at, a.correction_id,
	   a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.DepartmentID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckInLatitude,
		&a.CheckInLongitude,
		&a.CheckInAccuracy,
		&a.CheckInProvider,
		&a.CheckInPhotoID,
		&a.CheckInNotes,
		&a.CheckOutTime,
		&a.CheckOutLatitude,
		&a.CheckOutLongitude,
		&a.CheckOutAccuracy,
		&a.CheckOutProvider,
		&a.CheckOutPhotoID,
		&a.CheckOutNotes,
		&a.WorkHours,
		&a.Status,
		&a.IsManualCheckIn,
		&a.IsManualCheckOut,
		&a.Verified,
		&a.VerifiedBy,
		&a.VerifiedAt,
		&a.CorrectionID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records AS a (
			id, user_id, department_id, date,
			check_in_time, check_in_latitude, check_in_longitude, check_in_accuracy,
			check_in_provider, check_in_photo_id, check_in_notes,
			check_out_time, check_out_latitude, check_out_longitude, check_out_accuracy,
			check_out_provider, check_out_photo_id, check_out_notes,
			work_hours, status, is_manual_check_in, is_manual_check_out,
			verified, verified_by, verified_at, correction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query, attendanceArgs(a)...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

// Upsert implements attendance.AttendanceRepository. The (user_id, date)
// constraint resolves conflicts, existing rows are overwritten in place.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records AS a (
			id, user_id, department_id, date,
			check_in_time, check_in_latitude, check_in_longitude, check_in_accuracy,
			check_in_provider, check_in_photo_id, check_in_notes,
			check_out_time, check_out_latitude, check_out_longitude, check_out_accuracy,
			check_out_provider, check_out_photo_id, check_out_notes,
			work_hours, status, is_manual_check_in, is_manual_check_out,
			verified, verified_by, verified_at, correction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		ON CONFLICT (user_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			check_in_latitude = EXCLUDED.check_in_latitude,
			check_in_longitude = EXCLUDED.check_in_longitude,
			check_in_accuracy = EXCLUDED.check_in_accuracy,
			check_in_provider = EXCLUDED.check_in_provider,
			check_in_photo_id = EXCLUDED.check_in_photo_id,
			check_in_notes = EXCLUDED.check_in_notes,
			check_out_time = EXCLUDED.check_out_time,
			check_out_latitude = EXCLUDED.check_out_latitude,
			check_out_longitude = EXCLUDED.check_out_longitude,
			check_out_accuracy = EXCLUDED.check_out_accuracy,
			check_out_provider = EXCLUDED.check_out_provider,
			check_out_photo_id = EXCLUDED.check_out_photo_id,
			check_out_notes = EXCLUDED.check_out_notes,
			work_hours = EXCLUDED.work_hours,
			status = EXCLUDED.status,
			is_manual_check_in = EXCLUDED.is_manual_check_in,
			is_manual_check_out = EXCLUDED.is_manual_check_out,
			verified = EXCLUDED.verified,
			verified_by = EXCLUDED.verified_by,
			verified_at = EXCLUDED.verified_at,
			correction_id = EXCLUDED.correction_id,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	upserted, err := scanAttendance(q.QueryRow(ctx, query, attendanceArgs(a)...))
	if err != nil {
		return attendance.Attendance{}, err
	}

	return upserted, nil
}

func attendanceArgs(a attendance.Attendance) []interface{} {
	return []interface{}{
		a.ID, a.UserID, a.DepartmentID, a.Date,
		a.CheckInTime, a.CheckInLatitude, a.CheckInLongitude, a.CheckInAccuracy,
		a.CheckInProvider, a.CheckInPhotoID, a.CheckInNotes,
		a.CheckOutTime, a.CheckOutLatitude, a.CheckOutLongitude, a.CheckOutAccuracy,
		a.CheckOutProvider, a.CheckOutPhotoID, a.CheckOutNotes,
		a.WorkHours, a.Status, a.IsManualCheckIn, a.IsManualCheckOut,
		a.Verified, a.VerifiedBy, a.VerifiedAt, a.CorrectionID,
	}
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}

	return found, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date = $2
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}

	return found, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in_time = $1, check_in_latitude = $2, check_in_longitude = $3,
			check_in_accuracy = $4, check_in_provider = $5, check_in_photo_id = $6,
			check_in_notes = $7,
			check_out_time = $8, check_out_latitude = $9, check_out_longitude = $10,
			check_out_accuracy = $11, check_out_provider = $12, check_out_photo_id = $13,
			check_out_notes = $14,
			work_hours = $15, status = $16,
			is_manual_check_in = $17, is_manual_check_out = $18,
			verified = $19, verified_by = $20, verified_at = $21, correction_id = $22,
			updated_at = NOW()
		WHERE id = $23
	`

	commandTag, err := q.Exec(ctx, query,
		a.CheckInTime, a.CheckInLatitude, a.CheckInLongitude,
		a.CheckInAccuracy, a.CheckInProvider, a.CheckInPhotoID,
		a.CheckInNotes,
		a.CheckOutTime, a.CheckOutLatitude, a.CheckOutLongitude,
		a.CheckOutAccuracy, a.CheckOutProvider, a.CheckOutPhotoID,
		a.CheckOutNotes,
		a.WorkHours, a.Status,
		a.IsManualCheckIn, a.IsManualCheckOut,
		a.Verified, a.VerifiedBy, a.VerifiedAt, a.CorrectionID,
		a.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.UserID != nil {
		addCondition("a.user_id = $%d", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		addCondition("a.department_id = $%d", *filter.DepartmentID)
	}
	if filter.Status != nil {
		addCondition("a.status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("a.date <= $%d", *filter.EndDate)
	}

	query := `
		SELECT ` + attendanceColumns + `, u.full_name
		FROM attendance_records a
		INNER JOIN users u ON u.id = a.user_id
	`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY a.date DESC, u.full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.DepartmentID,
			&a.Date,
			&a.CheckInTime,
			&a.CheckInLatitude,
			&a.CheckInLongitude,
			&a.CheckInAccuracy,
			&a.CheckInProvider,
			&a.CheckInPhotoID,
			&a.CheckInNotes,
			&a.CheckOutTime,
			&a.CheckOutLatitude,
			&a.CheckOutLongitude,
			&a.CheckOutAccuracy,
			&a.CheckOutProvider,
			&a.CheckOutPhotoID,
			&a.CheckOutNotes,
			&a.WorkHours,
			&a.Status,
			&a.IsManualCheckIn,
			&a.IsManualCheckOut,
			&a.Verified,
			&a.VerifiedBy,
			&a.VerifiedAt,
			&a.CorrectionID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.UserName,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// ListUserIDsWithRecordOn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListUserIDsWithRecordOn(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id
		FROM attendance_records
		WHERE date = $1
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}
