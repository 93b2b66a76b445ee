package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/storage"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/pkg/validator"
)

// MaxUploadSize caps a single upload at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/pdf",
}

type FileServiceImpl struct {
	file.FileRepository
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(fileRepository file.FileRepository, fileStorage storage.FileStorage) *FileServiceImpl {
	return &FileServiceImpl{
		FileRepository: fileRepository,
		storage:        fileStorage,
		now:            time.Now,
	}
}

// Upload stores the bytes under the category directory and records the
// metadata row. The file starts unlinked; attaching it to a record happens
// when the record referencing it is created.
func (s *FileServiceImpl) Upload(ctx context.Context, ownerID, category, originalName, mimeType string, size int64, r io.Reader) (file.FileResponse, error) {
	if !validator.IsInSlice(category, file.ValidCategories) {
		return file.FileResponse{}, file.ErrInvalidCategory
	}
	if size > MaxUploadSize {
		return file.FileResponse{}, file.ErrFileTooLarge
	}
	if !validator.IsInSlice(strings.ToLower(mimeType), allowedMimeTypes) {
		return file.FileResponse{}, file.ErrUnsupportedType
	}

	id := uuid.NewString()
	storedPath := fmt.Sprintf("%s/%s%s", category, id, strings.ToLower(filepath.Ext(originalName)))

	path, err := s.storage.Upload(ctx, io.LimitReader(r, MaxUploadSize), storedPath, mimeType)
	if err != nil {
		return file.FileResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	f := file.File{
		ID:           id,
		OwnerID:      ownerID,
		Category:     file.Category(category),
		OriginalName: originalName,
		StoredPath:   path,
		MimeType:     mimeType,
		Size:         size,
	}

	created, err := s.FileRepository.Create(ctx, f)
	if err != nil {
		// Don't leave bytes around without a metadata row.
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			slog.Warn("Failed to remove stored file after metadata failure", "path", path, "error", delErr)
		}
		return file.FileResponse{}, err
	}

	slog.Info("File uploaded", "file_id", created.ID, "category", category, "size", size)
	return file.ToResponse(created), nil
}

// Get returns file metadata. Owners see their own files; admins see all.
func (s *FileServiceImpl) Get(ctx context.Context, callerID string, callerRole user.Role, id string) (file.FileResponse, error) {
	f, err := s.authorized(ctx, callerID, callerRole, id)
	if err != nil {
		return file.FileResponse{}, err
	}
	return file.ToResponse(f), nil
}

// Download opens the stored bytes for streaming to the client.
func (s *FileServiceImpl) Download(ctx context.Context, callerID string, callerRole user.Role, id string) (file.File, io.ReadCloser, error) {
	f, err := s.authorized(ctx, callerID, callerRole, id)
	if err != nil {
		return file.File{}, nil, err
	}

	rc, err := s.storage.Download(ctx, f.StoredPath)
	if err != nil {
		return file.File{}, nil, fmt.Errorf("failed to open stored file: %w", err)
	}

	return f, rc, nil
}

// ListMine returns the caller's uploads, newest first.
func (s *FileServiceImpl) ListMine(ctx context.Context, ownerID string) ([]file.FileResponse, error) {
	files, err := s.FileRepository.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]file.FileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, file.ToResponse(f))
	}

	return responses, nil
}

// Delete removes the metadata row and the stored bytes.
func (s *FileServiceImpl) Delete(ctx context.Context, callerID string, callerRole user.Role, id string) error {
	f, err := s.authorized(ctx, callerID, callerRole, id)
	if err != nil {
		return err
	}

	if err := s.FileRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, f.StoredPath); err != nil {
		slog.Warn("Failed to delete stored file", "file_id", id, "path", f.StoredPath, "error", err)
	}

	return nil
}

// CleanupOrphaned removes uploads that were never attached to any record
// within 24 hours. Runs from the nightly job.
func (s *FileServiceImpl) CleanupOrphaned(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-24 * time.Hour)

	orphans, err := s.FileRepository.ListOrphanedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range orphans {
		if err := s.FileRepository.Delete(ctx, f.ID); err != nil {
			slog.Warn("Failed to delete orphaned file metadata", "file_id", f.ID, "error", err)
			continue
		}
		if err := s.storage.Delete(ctx, f.StoredPath); err != nil {
			slog.Warn("Failed to delete orphaned file bytes", "file_id", f.ID, "path", f.StoredPath, "error", err)
		}
		removed++
	}

	if removed > 0 {
		slog.Info("Orphaned files cleaned up", "count", removed)
	}
	return removed, nil
}

func (s *FileServiceImpl) authorized(ctx context.Context, callerID string, callerRole user.Role, id string) (file.File, error) {
	f, err := s.FileRepository.GetByID(ctx, id)
	if err != nil {
		return file.File{}, err
	}
	if callerRole != user.RoleAdmin && f.OwnerID != callerID {
		return file.File{}, file.ErrNotFileOwner
	}
	return f, nil
}
