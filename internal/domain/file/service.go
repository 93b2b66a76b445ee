package file

import (
	"context"
	"io"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type FileService interface {
	Upload(ctx context.Context, ownerID, category, originalName, mimeType string, size int64, r io.Reader) (FileResponse, error)
	Get(ctx context.Context, callerID string, callerRole user.Role, id string) (FileResponse, error)
	Download(ctx context.Context, callerID string, callerRole user.Role, id string) (File, io.ReadCloser, error)
	ListMine(ctx context.Context, ownerID string) ([]FileResponse, error)
	Delete(ctx context.Context, callerID string, callerRole user.Role, id string) error
	// CleanupOrphaned removes unlinked uploads older than 24 hours.
	CleanupOrphaned(ctx context.Context) (int, error)
}
