package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, user_id, department_id, type, start_date, end_date, reason,
	   attachment_id, status, reviewed_by, reviewed_at, comments, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.DepartmentID,
		&lr.Type,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.AttachmentID,
		&lr.Status,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.Comments,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, department_id, type, start_date, end_date,
			reason, attachment_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID,
		request.UserID,
		request.DepartmentID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.AttachmentID,
		request.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return found, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.UserID != nil {
		addCondition("user_id = $%d", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		addCondition("department_id = $%d", *filter.DepartmentID)
	}
	if filter.Type != nil {
		addCondition("type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		addCondition("status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("end_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("start_date <= $%d", *filter.EndDate)
	}

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
	`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// ListPendingByDepartment implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPendingByDepartment(ctx context.Context, departmentID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE department_id = $1 AND status = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, departmentID, leave.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET type = $1, start_date = $2, end_date = $3, reason = $4,
			attachment_id = $5, status = $6, reviewed_by = $7, reviewed_at = $8,
			comments = $9, updated_at = NOW()
		WHERE id = $10
	`

	commandTag, err := q.Exec(ctx, query,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.AttachmentID,
		request.Status,
		request.ReviewedBy,
		request.ReviewedAt,
		request.Comments,
		request.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// FindApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindApprovedCovering(ctx context.Context, userID string, date time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE user_id = $1 AND status = $2
		  AND start_date <= $3 AND end_date >= $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, userID, leave.StatusApproved, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// ListApprovedEndingOnOrAfter implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedEndingOnOrAfter(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE status = $1 AND end_date >= $2
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, leave.StatusApproved, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}
