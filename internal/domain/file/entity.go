package file

import "time"

// Category determines the storage subdirectory and what a file may be
// attached to.
type Category string

const (
	CategoryProfile    Category = "profile"
	CategoryAttendance Category = "attendance"
	CategoryLeave      Category = "leave"
	CategoryReport     Category = "report"
)

// ValidCategories lists every uploadable category. Reports are generated
// server-side, not uploaded.
var ValidCategories = []string{
	string(CategoryProfile),
	string(CategoryAttendance),
	string(CategoryLeave),
}

// RelatedType names the kind of record a file is linked to.
type RelatedType string

const (
	RelatedUser       RelatedType = "user"
	RelatedAttendance RelatedType = "attendance"
	RelatedLeave      RelatedType = "leave_request"
	RelatedCorrection RelatedType = "correction"
)

// File is the metadata row for one stored object. The bytes live on disk
// under the category directory; the row records ownership and linkage.
type File struct {
	ID           string
	OwnerID      string
	Category     Category
	OriginalName string
	StoredPath   string
	MimeType     string
	Size         int64

	RelatedType *RelatedType
	RelatedID   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOrphaned reports whether the file was never linked to a record and is
// older than the cutoff.
func (f File) IsOrphaned(cutoff time.Time) bool {
	return f.RelatedID == nil && f.CreatedAt.Before(cutoff)
}
