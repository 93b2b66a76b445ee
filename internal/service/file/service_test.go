package file

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type fakeFileRepo struct {
	files map[string]file.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]file.File)}
}

func (r *fakeFileRepo) Create(_ context.Context, f file.File) (file.File, error) {
	r.files[f.ID] = f
	return f, nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (file.File, error) {
	f, ok := r.files[id]
	if !ok {
		return file.File{}, file.ErrFileNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) ListByOwner(_ context.Context, ownerID string) ([]file.File, error) {
	var files []file.File
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) Link(_ context.Context, id string, relatedType file.RelatedType, relatedID string) error {
	f, ok := r.files[id]
	if !ok {
		return file.ErrFileNotFound
	}
	f.RelatedType = &relatedType
	f.RelatedID = &relatedID
	r.files[id] = f
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.files[id]; !ok {
		return file.ErrFileNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) ListOrphanedBefore(_ context.Context, cutoff time.Time) ([]file.File, error) {
	var orphans []file.File
	for _, f := range r.files {
		if f.IsOrphaned(cutoff) {
			orphans = append(orphans, f)
		}
	}
	return orphans, nil
}

type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, r io.Reader, path string, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[path] = data
	return path, nil
}

func (s *memoryStorage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, file.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(_ context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

func (s *memoryStorage) GetURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "http://localhost/uploads/" + path, nil
}

func (s *memoryStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.objects[path]
	return ok, nil
}

func newFileTestEnv() (*FileServiceImpl, *fakeFileRepo, *memoryStorage) {
	repo := newFakeFileRepo()
	store := newMemoryStorage()
	return NewFileService(repo, store), repo, store
}

func TestUploadFile(t *testing.T) {
	svc, repo, store := newFileTestEnv()

	uploaded, err := svc.Upload(
		context.Background(),
		"user-1", "attendance", "selfie.jpg", "image/jpeg", 1024,
		strings.NewReader("jpeg bytes"),
	)
	require.NoError(t, err)

	stored := repo.files[uploaded.ID]
	assert.Equal(t, "user-1", stored.OwnerID)
	assert.Equal(t, file.CategoryAttendance, stored.Category)
	assert.Equal(t, "selfie.jpg", stored.OriginalName)
	assert.Nil(t, stored.RelatedID)

	data, ok := store.objects[stored.StoredPath]
	require.True(t, ok)
	assert.Equal(t, "jpeg bytes", string(data))
	assert.True(t, strings.HasPrefix(stored.StoredPath, "attendance/"))
	assert.True(t, strings.HasSuffix(stored.StoredPath, ".jpg"))
}

func TestUploadFile_Validation(t *testing.T) {
	svc, _, _ := newFileTestEnv()
	ctx := context.Background()

	_, err := svc.Upload(ctx, "user-1", "report", "report.xlsx", "application/pdf", 1024, strings.NewReader("x"))
	assert.ErrorIs(t, err, file.ErrInvalidCategory)

	_, err = svc.Upload(ctx, "user-1", "leave", "scan.pdf", "application/pdf", MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, file.ErrFileTooLarge)

	_, err = svc.Upload(ctx, "user-1", "leave", "notes.txt", "text/plain", 1024, strings.NewReader("x"))
	assert.ErrorIs(t, err, file.ErrUnsupportedType)
}

func TestDeleteFile_Authorization(t *testing.T) {
	svc, repo, store := newFileTestEnv()
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, "user-1", "profile", "photo.png", "image/png", 512, strings.NewReader("png"))
	require.NoError(t, err)

	err = svc.Delete(ctx, "user-2", user.RoleDosen, uploaded.ID)
	assert.ErrorIs(t, err, file.ErrNotFileOwner)

	require.NoError(t, svc.Delete(ctx, "user-2", user.RoleAdmin, uploaded.ID))
	assert.Empty(t, repo.files)
	assert.Empty(t, store.objects)
}

func TestDownloadFile(t *testing.T) {
	svc, _, _ := newFileTestEnv()
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, "user-1", "leave", "surat.pdf", "application/pdf", 256, strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	f, rc, err := svc.Download(ctx, "user-1", user.RoleDosen, uploaded.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "surat.pdf", f.OriginalName)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestCleanupOrphaned(t *testing.T) {
	svc, repo, store := newFileTestEnv()
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	relatedID := "leave-1"
	relatedType := file.RelatedLeave
	repo.files["old-orphan"] = file.File{
		ID:         "old-orphan",
		StoredPath: "leave/old-orphan.pdf",
		CreatedAt:  now.Add(-36 * time.Hour),
	}
	repo.files["fresh-orphan"] = file.File{
		ID:         "fresh-orphan",
		StoredPath: "leave/fresh-orphan.pdf",
		CreatedAt:  now.Add(-2 * time.Hour),
	}
	repo.files["old-linked"] = file.File{
		ID:          "old-linked",
		StoredPath:  "leave/old-linked.pdf",
		CreatedAt:   now.Add(-72 * time.Hour),
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	}
	store.objects["leave/old-orphan.pdf"] = []byte("x")

	removed, err := svc.CleanupOrphaned(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.NotContains(t, repo.files, "old-orphan")
	assert.Contains(t, repo.files, "fresh-orphan")
	assert.Contains(t, repo.files, "old-linked")
	assert.NotContains(t, store.objects, "leave/old-orphan.pdf")
}
