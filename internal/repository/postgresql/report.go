package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/report"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

const reportColumns = `id, generated_by, department_id, user_id, start_date, end_date,
	   format, file_name, stored_path, size, created_at`

func scanReport(row pgx.Row) (report.Report, error) {
	var rep report.Report
	err := row.Scan(
		&rep.ID,
		&rep.GeneratedBy,
		&rep.DepartmentID,
		&rep.UserID,
		&rep.StartDate,
		&rep.EndDate,
		&rep.Format,
		&rep.FileName,
		&rep.StoredPath,
		&rep.Size,
		&rep.CreatedAt,
	)
	return rep, err
}

// Create implements report.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, rep report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reports (
			id, generated_by, department_id, user_id, start_date, end_date,
			format, file_name, stored_path, size
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + reportColumns

	created, err := scanReport(q.QueryRow(ctx, query,
		rep.ID,
		rep.GeneratedBy,
		rep.DepartmentID,
		rep.UserID,
		rep.StartDate,
		rep.EndDate,
		rep.Format,
		rep.FileName,
		rep.StoredPath,
		rep.Size,
	))
	if err != nil {
		return report.Report{}, err
	}

	return created, nil
}

// GetByID implements report.ReportRepository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1
	`

	found, err := scanReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, err
	}

	return found, nil
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, generatedBy *string) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reportColumns + `
		FROM reports
	`
	var args []interface{}
	if generatedBy != nil {
		query += ` WHERE generated_by = $1`
		args = append(args, *generatedBy)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []report.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

// Delete implements report.ReportRepository.
func (r *reportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM reports
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return report.ErrReportNotFound
	}

	return nil
}
