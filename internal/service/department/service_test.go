package department

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	primary     map[string]string
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{
		departments: make(map[string]department.Department),
		primary:     make(map[string]string),
	}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d department.Department) (department.Department, error) {
	for _, existing := range r.departments {
		if existing.Name == d.Name {
			return department.Department{}, department.ErrNameExists
		}
		if existing.Code == d.Code {
			return department.Department{}, department.ErrCodeExists
		}
	}
	r.departments[d.ID] = d
	return d, nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context, includeInactive bool) ([]department.Department, error) {
	var departments []department.Department
	for _, d := range r.departments {
		if !includeInactive && !d.IsActive {
			continue
		}
		departments = append(departments, d)
	}
	return departments, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, d department.Department) error {
	if _, ok := r.departments[d.ID]; !ok {
		return department.ErrDepartmentNotFound
	}
	r.departments[d.ID] = d
	return nil
}

func (r *fakeDepartmentRepo) SoftDelete(_ context.Context, id string) error {
	d, ok := r.departments[id]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	d.IsActive = false
	r.departments[id] = d
	return nil
}

func (r *fakeDepartmentRepo) AddMember(_ context.Context, departmentID, userID string, primary bool) error {
	d, ok := r.departments[departmentID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	d.MemberIDs = append(d.MemberIDs, userID)
	r.departments[departmentID] = d
	if primary {
		r.primary[userID] = departmentID
	}
	return nil
}

func (r *fakeDepartmentRepo) RemoveMember(_ context.Context, departmentID, userID string) error {
	d, ok := r.departments[departmentID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	members := d.MemberIDs[:0]
	for _, id := range d.MemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}
	d.MemberIDs = members
	r.departments[departmentID] = d
	return nil
}

func (r *fakeDepartmentRepo) SetHead(_ context.Context, departmentID, userID string) error {
	d, ok := r.departments[departmentID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	d.HeadID = &userID
	r.departments[departmentID] = d
	return nil
}

func (r *fakeDepartmentRepo) GetByMember(_ context.Context, userID string) ([]department.Department, error) {
	var departments []department.Department
	for _, d := range r.departments {
		if d.IsActive && d.HasMember(userID) {
			departments = append(departments, d)
		}
	}
	return departments, nil
}

func (r *fakeDepartmentRepo) GetPrimaryByMember(_ context.Context, userID string) (*department.Department, error) {
	if id, ok := r.primary[userID]; ok {
		d := r.departments[id]
		return &d, nil
	}
	for _, d := range r.departments {
		if d.HasMember(userID) {
			return &d, nil
		}
	}
	return nil, nil
}

type stubUserRepo struct {
	users map[string]user.User
}

func (r *stubUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (r *stubUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ bool) ([]user.User, error) { return nil, nil }

func (r *stubUserRepo) Update(_ context.Context, _ user.User) error { return nil }

func (r *stubUserRepo) Deactivate(_ context.Context, _ string) error { return nil }

func newDepartmentTestEnv() (*DepartmentServiceImpl, *fakeDepartmentRepo, *stubUserRepo) {
	departmentRepo := newFakeDepartmentRepo()
	userRepo := &stubUserRepo{users: map[string]user.User{
		"kajur-1": {ID: "kajur-1", Role: user.RoleKajur, IsActive: true},
		"dosen-1": {ID: "dosen-1", Role: user.RoleDosen, IsActive: true},
		"dosen-2": {ID: "dosen-2", Role: user.RoleDosen, IsActive: true},
	}}
	return NewDepartmentService(departmentRepo, userRepo), departmentRepo, userRepo
}

func TestCreateDepartment_EnrollsHead(t *testing.T) {
	svc, repo, _ := newDepartmentTestEnv()

	headID := "kajur-1"
	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{
		Name:   "Teknologi Informasi",
		Code:   "TI",
		HeadID: &headID,
	})
	require.NoError(t, err)

	require.NotNil(t, created.HeadID)
	assert.Equal(t, headID, *created.HeadID)
	assert.Contains(t, created.MemberIDs, headID)
	assert.Equal(t, created.ID, repo.primary[headID])
}

func TestCreateDepartment_UnknownHead(t *testing.T) {
	svc, _, _ := newDepartmentTestEnv()

	headID := "missing"
	_, err := svc.Create(context.Background(), department.CreateDepartmentRequest{
		Name:   "Teknologi Informasi",
		Code:   "TI",
		HeadID: &headID,
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAddMember_Duplicate(t *testing.T) {
	svc, _, _ := newDepartmentTestEnv()

	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{Name: "Agroteknologi", Code: "AGT"})
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(context.Background(), created.ID, department.MemberRequest{UserID: "dosen-1"}))
	err = svc.AddMember(context.Background(), created.ID, department.MemberRequest{UserID: "dosen-1"})
	assert.ErrorIs(t, err, department.ErrAlreadyAMember)
}

func TestRemoveMember(t *testing.T) {
	svc, repo, _ := newDepartmentTestEnv()

	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{Name: "Agroteknologi", Code: "AGT"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(context.Background(), created.ID, department.MemberRequest{UserID: "dosen-1"}))

	require.NoError(t, svc.RemoveMember(context.Background(), created.ID, "dosen-1"))
	assert.False(t, repo.departments[created.ID].HasMember("dosen-1"))

	err = svc.RemoveMember(context.Background(), created.ID, "dosen-1")
	assert.ErrorIs(t, err, department.ErrNotAMember)
}

func TestRemoveMember_Head(t *testing.T) {
	svc, _, _ := newDepartmentTestEnv()

	headID := "kajur-1"
	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{
		Name:   "Agroteknologi",
		Code:   "AGT",
		HeadID: &headID,
	})
	require.NoError(t, err)

	err = svc.RemoveMember(context.Background(), created.ID, headID)
	assert.ErrorIs(t, err, department.ErrHeadRemoval)
}

func TestSetHead(t *testing.T) {
	svc, repo, _ := newDepartmentTestEnv()

	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{Name: "Agroteknologi", Code: "AGT"})
	require.NoError(t, err)

	require.NoError(t, svc.SetHead(context.Background(), created.ID, "kajur-1"))

	stored := repo.departments[created.ID]
	assert.True(t, stored.IsHeadedBy("kajur-1"))
	assert.True(t, stored.HasMember("kajur-1"))
}

func TestSetHead_RequiresKajurRole(t *testing.T) {
	svc, _, _ := newDepartmentTestEnv()

	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{Name: "Agroteknologi", Code: "AGT"})
	require.NoError(t, err)

	err = svc.SetHead(context.Background(), created.ID, "dosen-1")
	assert.ErrorIs(t, err, department.ErrHeadRoleRequired)
}

func TestGetPrimary(t *testing.T) {
	svc, _, _ := newDepartmentTestEnv()

	created, err := svc.Create(context.Background(), department.CreateDepartmentRequest{Name: "Agroteknologi", Code: "AGT"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(context.Background(), created.ID, department.MemberRequest{UserID: "dosen-1", Primary: true}))

	primary, err := svc.GetPrimary(context.Background(), "dosen-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, primary.ID)

	_, err = svc.GetPrimary(context.Background(), "dosen-2")
	assert.ErrorIs(t, err, department.ErrNoDepartment)
}
