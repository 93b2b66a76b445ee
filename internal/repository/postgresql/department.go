package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, code, head_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, code, head_id, is_active, created_at, updated_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query, d.ID, d.Name, d.Code, d.HeadID, d.IsActive).Scan(
		&created.ID,
		&created.Name,
		&created.Code,
		&created.HeadID,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "departments_name_key":
				return department.Department{}, department.ErrNameExists
			case "departments_code_key":
				return department.Department{}, department.ErrCodeExists
			}
		}
		return department.Department{}, err
	}

	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, head_id, is_active, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var found department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Code,
		&found.HeadID,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}

	if err := r.loadMembers(ctx, &found); err != nil {
		return department.Department{}, err
	}

	return found, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, includeInactive bool) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, head_id, is_active, created_at, updated_at
		FROM departments
	`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Code,
			&d.HeadID,
			&d.IsActive,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range departments {
		if err := r.loadMembers(ctx, &departments[i]); err != nil {
			return nil, err
		}
	}

	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, code = $2, head_id = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, d.Name, d.Code, d.HeadID, d.IsActive, d.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "departments_name_key":
				return department.ErrNameExists
			case "departments_code_key":
				return department.ErrCodeExists
			}
		}
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// SoftDelete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// AddMember implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) AddMember(ctx context.Context, departmentID, userID string, primary bool) error {
	q := GetQuerier(ctx, r.db)

	if primary {
		clearQuery := `
			UPDATE department_members
			SET is_primary = FALSE
			WHERE user_id = $1
		`
		if _, err := q.Exec(ctx, clearQuery, userID); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO department_members (department_id, user_id, is_primary)
		VALUES ($1, $2, $3)
	`

	_, err := q.Exec(ctx, query, departmentID, userID, primary)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return department.ErrAlreadyAMember
		}
		return err
	}

	return nil
}

// RemoveMember implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) RemoveMember(ctx context.Context, departmentID, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM department_members
		WHERE department_id = $1 AND user_id = $2
	`

	commandTag, err := q.Exec(ctx, query, departmentID, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return department.ErrNotAMember
	}

	return nil
}

// SetHead implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) SetHead(ctx context.Context, departmentID, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET head_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, userID, departmentID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// GetByMember implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByMember(ctx context.Context, userID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.code, d.head_id, d.is_active, d.created_at, d.updated_at
		FROM departments d
		INNER JOIN department_members dm ON dm.department_id = d.id
		WHERE dm.user_id = $1 AND d.is_active = TRUE
		ORDER BY dm.joined_at ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Code,
			&d.HeadID,
			&d.IsActive,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// GetPrimaryByMember implements department.DepartmentRepository. The
// membership flagged primary wins; without one the earliest joined does.
func (r *departmentRepositoryImpl) GetPrimaryByMember(ctx context.Context, userID string) (*department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.code, d.head_id, d.is_active, d.created_at, d.updated_at
		FROM departments d
		INNER JOIN department_members dm ON dm.department_id = d.id
		WHERE dm.user_id = $1 AND d.is_active = TRUE
		ORDER BY dm.is_primary DESC, dm.joined_at ASC
		LIMIT 1
	`

	var d department.Department
	err := q.QueryRow(ctx, query, userID).Scan(
		&d.ID,
		&d.Name,
		&d.Code,
		&d.HeadID,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &d, nil
}

func (r *departmentRepositoryImpl) loadMembers(ctx context.Context, d *department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id
		FROM department_members
		WHERE department_id = $1
		ORDER BY joined_at ASC
	`

	rows, err := q.Query(ctx, query, d.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		d.MemberIDs = append(d.MemberIDs, userID)
	}

	return rows.Err()
}
