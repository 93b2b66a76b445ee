package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/correction"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
)

type correctionRepositoryImpl struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepositoryImpl{db: db}
}

const correctionColumns = `c.id, c.user_id, c.department_id, c.attendance_id, c.date, c.type,
	   c.reason, c.attachment_id, c.requested_check_in, c.requested_check_out,
	   c.status, c.reviewed_by, c.reviewed_at, c.comments, c.created_at, c.updated_at`

func scanCorrection(row pgx.Row) (correction.Correction, error) {
	var c correction.Correction
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.DepartmentID,
		&c.AttendanceID,
		&c.Date,
		&c.Type,
		&c.Reason,
		&c.AttachmentID,
		&c.RequestedCheckIn,
		&c.RequestedCheckOut,
		&c.Status,
		&c.ReviewedBy,
		&c.ReviewedAt,
		&c.Comments,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create implements correction.CorrectionRepository.
func (r *correctionRepositoryImpl) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO corrections AS c (
			id, user_id, department_id, attendance_id, date, type,
			reason, attachment_id, requested_check_in, requested_check_out, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + correctionColumns

	created, err := scanCorrection(q.QueryRow(ctx, query,
		c.ID,
		c.UserID,
		c.DepartmentID,
		c.AttendanceID,
		c.Date,
		c.Type,
		c.Reason,
		c.AttachmentID,
		c.RequestedCheckIn,
		c.RequestedCheckOut,
		c.Status,
	))
	if err != nil {
		return correction.Correction{}, err
	}

	return created, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepositoryImpl) GetByID(ctx context.Context, id string) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `
		FROM corrections c
		WHERE c.id = $1
	`

	found, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, err
	}

	return found, nil
}

// List implements correction.CorrectionRepository.
func (r *correctionRepositoryImpl) List(ctx context.Context, filter correction.CorrectionFilter) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.UserID != nil {
		addCondition("c.user_id = $%d", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		addCondition("c.department_id = $%d", *filter.DepartmentID)
	}
	if filter.Type != nil {
		addCondition("c.type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		addCondition("c.status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("c.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("c.date <= $%d", *filter.EndDate)
	}

	query := `
		SELECT ` + correctionColumns + `, u.full_name
		FROM corrections c
		INNER JOIN users u ON u.id = c.user_id
	`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		var c correction.Correction
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.DepartmentID,
			&c.AttendanceID,
			&c.Date,
			&c.Type,
			&c.Reason,
			&c.AttachmentID,
			&c.RequestedCheckIn,
			&c.RequestedCheckOut,
			&c.Status,
			&c.ReviewedBy,
			&c.ReviewedAt,
			&c.Comments,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.UserName,
		)
		if err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}

	return corrections, rows.Err()
}

// ListPendingByDepartment implements correction.CorrectionRepository.
func (r *correctionRepositoryImpl) ListPendingByDepartment(ctx context.Context, departmentID string) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `
		FROM corrections c
		WHERE c.department_id = $1 AND c.status = $2
		ORDER BY c.created_at ASC
	`

	rows, err := q.Query(ctx, query, departmentID, correction.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}

	return corrections, rows.Err()
}

// Update implements correction.CorrectionRepository.
func (r *correctionRepositoryImpl) Update(ctx context.Context, c correction.Correction) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE corrections
		SET attendance_id = $1, status = $2, reviewed_by = $3, reviewed_at = $4,
			comments = $5, updated_at = NOW()
		WHERE id = $6
	`

	commandTag, err := q.Exec(ctx, query,
		c.AttendanceID,
		c.Status,
		c.ReviewedBy,
		c.ReviewedAt,
		c.Comments,
		c.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return correction.ErrCorrectionNotFound
	}

	return nil
}

// CountByUserInRange implements correction.CorrectionRepository.
func (r *correctionRepositoryImpl) CountByUserInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM corrections
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var count int
	err := q.QueryRow(ctx, query, userID, start, end).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
