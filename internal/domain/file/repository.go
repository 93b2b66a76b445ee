package file

import (
	"context"
	"time"
)

// FileRepository defines data access methods for file metadata.
type FileRepository interface {
	Create(ctx context.Context, f File) (File, error)

	GetByID(ctx context.Context, id string) (File, error)

	// ListByOwner retrieves an owner's files, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]File, error)

	// Link attaches the file to a record. Fails with ErrAlreadyLinked when
	// the file is already attached.
	Link(ctx context.Context, id string, relatedType RelatedType, relatedID string) error

	Delete(ctx context.Context, id string) error

	// ListOrphanedBefore returns unlinked files created before the cutoff.
	// Used by the nightly cleanup job.
	ListOrphanedBefore(ctx context.Context, cutoff time.Time) ([]File, error)
}
