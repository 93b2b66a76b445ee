package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
		if existing.NIP == u.NIP {
			return user.User{}, user.ErrNIPExists
		}
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, activeOnly bool) ([]user.User, error) {
	var users []user.User
	for _, u := range r.users {
		if activeOnly && !u.IsActive {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = false
	r.users[id] = u
	return nil
}

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
	if f.RelatedID != nil {
		return file.ErrAlreadyLinked
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

func newUserTestEnv() (*UserServiceImpl, *fakeUserRepo, *fakeFileRepo) {
	userRepo := newFakeUserRepo()
	fileRepo := newFakeFileRepo()
	return NewUserService(userRepo, fileRepo), userRepo, fileRepo
}

func validCreateRequest() user.CreateUserRequest {
	return user.CreateUserRequest{
		FullName: "Rina Wulandari",
		Email:    "Rina.Wulandari@politani.ac.id",
		Password: "str0ngpassword",
		NIP:      "198703122010122001",
	}
}

func TestCreateUser(t *testing.T) {
	svc, repo, _ := newUserTestEnv()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "rina.wulandari@politani.ac.id", created.Email)
	assert.Equal(t, string(user.RoleDosen), created.Role)
	assert.True(t, created.IsActive)

	stored := repo.users[created.ID]
	assert.NotEqual(t, "str0ngpassword", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("str0ngpassword")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserTestEnv()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.NIP = "198703122010122002"
	_, err = svc.Create(context.Background(), second)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUpdateUser_RoleChangeRequiresAdmin(t *testing.T) {
	svc, _, _ := newUserTestEnv()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	role := string(user.RoleKajur)
	_, err = svc.Update(context.Background(), user.RoleDosen, user.UpdateUserRequest{
		ID:   created.ID,
		Role: &role,
	})
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)

	updated, err := svc.Update(context.Background(), user.RoleAdmin, user.UpdateUserRequest{
		ID:   created.ID,
		Role: &role,
	})
	require.NoError(t, err)
	assert.Equal(t, string(user.RoleKajur), updated.Role)
}

func TestSetProfilePhoto(t *testing.T) {
	svc, _, fileRepo := newUserTestEnv()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	fileRepo.files["photo-1"] = file.File{
		ID:       "photo-1",
		OwnerID:  created.ID,
		Category: file.CategoryProfile,
	}

	updated, err := svc.SetProfilePhoto(context.Background(), created.ID, "photo-1")
	require.NoError(t, err)
	require.NotNil(t, updated.ProfileImageID)
	assert.Equal(t, "photo-1", *updated.ProfileImageID)

	linked := fileRepo.files["photo-1"]
	require.NotNil(t, linked.RelatedType)
	assert.Equal(t, file.RelatedUser, *linked.RelatedType)
}

func TestSetProfilePhoto_OtherOwnersFile(t *testing.T) {
	svc, _, fileRepo := newUserTestEnv()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	fileRepo.files["photo-1"] = file.File{
		ID:       "photo-1",
		OwnerID:  "someone-else",
		Category: file.CategoryProfile,
	}

	_, err = svc.SetProfilePhoto(context.Background(), created.ID, "photo-1")
	assert.ErrorIs(t, err, file.ErrNotFileOwner)
}

func TestDeactivateUser(t *testing.T) {
	svc, repo, _ := newUserTestEnv()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	assert.False(t, repo.users[created.ID].IsActive)
}
