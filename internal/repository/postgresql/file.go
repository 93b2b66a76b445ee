package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/database"
)

type fileRepositoryImpl struct {
	db *database.DB
}

func NewFileRepository(db *database.DB) file.FileRepository {
	return &fileRepositoryImpl{db: db}
}

const fileColumns = `id, owner_id, category, original_name, stored_path, mime_type, size,
	   related_type, related_id, created_at, updated_at`

func scanFile(row pgx.Row) (file.File, error) {
	var f file.File
	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.Category,
		&f.OriginalName,
		&f.StoredPath,
		&f.MimeType,
		&f.Size,
		&f.RelatedType,
		&f.RelatedID,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	return f, err
}

// Create implements file.FileRepository.
func (r *fileRepositoryImpl) Create(ctx context.Context, f file.File) (file.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO files (
			id, owner_id, category, original_name, stored_path, mime_type, size
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + fileColumns

	created, err := scanFile(q.QueryRow(ctx, query,
		f.ID,
		f.OwnerID,
		f.Category,
		f.OriginalName,
		f.StoredPath,
		f.MimeType,
		f.Size,
	))
	if err != nil {
		return file.File{}, err
	}

	return created, nil
}

// GetByID implements file.FileRepository.
func (r *fileRepositoryImpl) GetByID(ctx context.Context, id string) (file.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1
	`

	found, err := scanFile(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return file.File{}, file.ErrFileNotFound
		}
		return file.File{}, err
	}

	return found, nil
}

// ListByOwner implements file.FileRepository.
func (r *fileRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]file.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []file.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// Link implements file.FileRepository. The WHERE clause refuses to relink
// an already attached file.
func (r *fileRepositoryImpl) Link(ctx context.Context, id string, relatedType file.RelatedType, relatedID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE files
		SET related_type = $1, related_id = $2, updated_at = NOW()
		WHERE id = $3 AND related_id IS NULL
	`

	commandTag, err := q.Exec(ctx, query, relatedType, relatedID, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return file.ErrAlreadyLinked
		}
		return file.ErrFileNotFound
	}

	return nil
}

// Delete implements file.FileRepository.
func (r *fileRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM files
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return file.ErrFileNotFound
	}

	return nil
}

// ListOrphanedBefore implements file.FileRepository.
func (r *fileRepositoryImpl) ListOrphanedBefore(ctx context.Context, cutoff time.Time) ([]file.File, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE related_id IS NULL AND created_at < $1
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []file.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (r *fileRepositoryImpl) exists(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM files WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
