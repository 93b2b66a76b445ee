package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/config"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/attendance"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/department"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/leave"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/user"
)

// Campus reference point used by the test rules.
const (
	campusLat = -0.2316
	campusLon = 100.6328
)

func testRules() config.AttendanceConfig {
	return config.AttendanceConfig{
		WorkStart:                  config.WorkTime{Hour: 8},
		WorkEnd:                    config.WorkTime{Hour: 17},
		LateToleranceMinutes:       15,
		EarlyLeaveToleranceMinutes: 15,
		GeofenceLatitude:           campusLat,
		GeofenceLongitude:          campusLon,
		GeofenceRadiusMeters:       500,
	}
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.records {
		if existing.UserID == a.UserID && existing.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	for _, a := range f.records {
		if a.UserID == userID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	if _, ok := f.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[a.ID] = a
	return nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for id, existing := range f.records {
		if existing.UserID == a.UserID && existing.Date.Equal(a.Date) {
			a.ID = id
			f.records[id] = a
			return a, nil
		}
	}
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		if filter.DepartmentID != nil && a.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.UserID == userID && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListUserIDsWithRecordOn(_ context.Context, date time.Time) ([]string, error) {
	var out []string
	for _, a := range f.records {
		if a.Date.Equal(date) {
			out = append(out, a.UserID)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	for _, req := range f.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	return f.requests, nil
}

func (f *fakeLeaveRepo) ListPendingByDepartment(_ context.Context, _ string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, req leave.LeaveRequest) error {
	for i := range f.requests {
		if f.requests[i].ID == req.ID {
			f.requests[i] = req
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) Delete(_ context.Context, id string) error {
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) FindApprovedCovering(_ context.Context, userID string, date time.Time) (*leave.LeaveRequest, error) {
	for _, req := range f.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved && req.Covers(date) {
			found := req
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaveRepo) ListApprovedEndingOnOrAfter(_ context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.Status == leave.StatusApproved && !req.EndDate.Before(date) {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context, activeOnly bool) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if activeOnly && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = false
	f.users[id] = u
	return nil
}

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	primary     map[string]string // userID -> departmentID
}

func (f *fakeDepartmentRepo) Create(_ context.Context, d department.Department) (department.Department, error) {
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context, _ bool) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, d department.Department) error {
	f.departments[d.ID] = d
	return nil
}

func (f *fakeDepartmentRepo) SoftDelete(_ context.Context, id string) error {
	d, ok := f.departments[id]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	d.IsActive = false
	f.departments[id] = d
	return nil
}

func (f *fakeDepartmentRepo) AddMember(_ context.Context, departmentID, userID string, primary bool) error {
	d := f.departments[departmentID]
	d.MemberIDs = append(d.MemberIDs, userID)
	f.departments[departmentID] = d
	if primary {
		f.primary[userID] = departmentID
	}
	return nil
}

func (f *fakeDepartmentRepo) RemoveMember(_ context.Context, departmentID, userID string) error {
	return nil
}

func (f *fakeDepartmentRepo) SetHead(_ context.Context, departmentID, userID string) error {
	d := f.departments[departmentID]
	d.HeadID = &userID
	f.departments[departmentID] = d
	return nil
}

func (f *fakeDepartmentRepo) GetByMember(_ context.Context, userID string) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		if d.HasMember(userID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDepartmentRepo) GetPrimaryByMember(_ context.Context, userID string) (*department.Department, error) {
	id, ok := f.primary[userID]
	if !ok {
		return nil, nil
	}
	d := f.departments[id]
	return &d, nil
}

type fakeFileRepo struct {
	linked map[string]string
}

func (f *fakeFileRepo) Create(_ context.Context, fl file.File) (file.File, error) { return fl, nil }

func (f *fakeFileRepo) GetByID(_ context.Context, _ string) (file.File, error) {
	return file.File{}, file.ErrFileNotFound
}

func (f *fakeFileRepo) ListByOwner(_ context.Context, _ string) ([]file.File, error) {
	return nil, nil
}

func (f *fakeFileRepo) Link(_ context.Context, id string, _ file.RelatedType, relatedID string) error {
	f.linked[id] = relatedID
	return nil
}

func (f *fakeFileRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeFileRepo) ListOrphanedBefore(_ context.Context, _ time.Time) ([]file.File, error) {
	return nil, nil
}

type testEnv struct {
	svc        *AttendanceServiceImpl
	attendance *fakeAttendanceRepo
	leaves     *fakeLeaveRepo
	users      *fakeUserRepo
	depts      *fakeDepartmentRepo
	files      *fakeFileRepo
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	env := &testEnv{
		attendance: newFakeAttendanceRepo(),
		leaves:     &fakeLeaveRepo{},
		users:      &fakeUserRepo{users: make(map[string]user.User)},
		depts: &fakeDepartmentRepo{
			departments: make(map[string]department.Department),
			primary:     make(map[string]string),
		},
		files: &fakeFileRepo{linked: make(map[string]string)},
	}

	env.svc = NewAttendanceService(env.attendance, env.leaves, env.users, env.depts, env.files, testRules())
	env.svc.now = func() time.Time { return now }

	env.users.users["user-1"] = user.User{ID: "user-1", FullName: "Andi Saputra", Role: user.RoleDosen, IsActive: true}
	env.depts.departments["dept-1"] = department.Department{ID: "dept-1", Name: "Teknologi Informasi", Code: "TI", IsActive: true}
	env.depts.primary["user-1"] = "dept-1"

	return env
}

func TestCheckIn_OnTimeWithinGeofence(t *testing.T) {
	now := time.Date(2025, 3, 10, 7, 55, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	resp, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, "dept-1", resp.DepartmentID)
	assert.NotNil(t, resp.CheckInTime)
}

func TestCheckIn_AfterToleranceIsLate(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	resp, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckIn_OutsideGeofenceIsRemote(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	// Roughly 11 km north of campus, far outside the 500 m radius, and
	// late on top of it. The geofence result wins.
	resp, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat + 0.1,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusRemoteWorking), resp.Status)
}

func TestCheckIn_Twice(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_BlockedByApprovedLeave(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	env.leaves.requests = append(env.leaves.requests, leave.LeaveRequest{
		ID:        "leave-1",
		UserID:    "user-1",
		Type:      leave.TypeLeave,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	})

	_, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	assert.ErrorIs(t, err, attendance.ErrOnLeaveToday)
}

func TestCheckIn_ApprovedWFHDoesNotBlock(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	env.leaves.requests = append(env.leaves.requests, leave.LeaveRequest{
		ID:        "leave-1",
		UserID:    "user-1",
		Type:      leave.TypeWFH,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	})

	_, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	assert.NoError(t, err)
}

func TestCheckOut_ComputesWorkHours(t *testing.T) {
	checkInAt := time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)
	env := newTestEnv(t, checkInAt)

	_, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	resp, err := env.svc.CheckOut(context.Background(), "user-1", attendance.CheckOutRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WorkHours)
	assert.InDelta(t, 8.67, *resp.WorkHours, 0.001)
	// The late arrival is not overwritten by an on-time departure.
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckOut_EarlyDeparture(t *testing.T) {
	checkInAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, checkInAt)

	_, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }

	resp, err := env.svc.CheckOut(context.Background(), "user-1", attendance.CheckOutRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusEarlyDeparture), resp.Status)
}

func TestCheckOut_EarlyWithApprovedWFH(t *testing.T) {
	checkInAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, checkInAt)

	env.leaves.requests = append(env.leaves.requests, leave.LeaveRequest{
		ID:        "leave-1",
		UserID:    "user-1",
		Type:      leave.TypeWFH,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	})

	_, err := env.svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }

	resp, err := env.svc.CheckOut(context.Background(), "user-1", attendance.CheckOutRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusRemoteWorking), resp.Status)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.svc.CheckOut(context.Background(), "user-1", attendance.CheckOutRequest{
		Latitude:  campusLat,
		Longitude: campusLon,
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestFindToday_NoRecord(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	resp, err := env.svc.FindToday(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestMarkAbsencesForToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	// user-2 checked in, user-1 did not.
	env.users.users["user-2"] = user.User{ID: "user-2", FullName: "Budi Hartono", Role: user.RoleDosen, IsActive: true}
	env.depts.primary["user-2"] = "dept-1"
	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	env.attendance.records["att-2"] = attendance.Attendance{
		ID:          "att-2",
		UserID:      "user-2",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	}

	require.NoError(t, env.svc.MarkAbsencesForToday(context.Background()))

	record, err := env.attendance.GetByUserAndDate(context.Background(), "user-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, record.Status)

	// user-2 keeps the existing record.
	existing, err := env.attendance.GetByUserAndDate(context.Background(), "user-2", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, existing.Status)
}

func TestMarkAbsencesForToday_ApprovedLeave(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	reviewer := "kajur-1"
	env.leaves.requests = append(env.leaves.requests, leave.LeaveRequest{
		ID:         "leave-1",
		UserID:     "user-1",
		Type:       leave.TypeLeave,
		StartDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
		ReviewedBy: &reviewer,
	})

	require.NoError(t, env.svc.MarkAbsencesForToday(context.Background()))

	// The covered day gets the leave-mapped status with the synthetic work
	// day, not ABSENT.
	record, err := env.attendance.GetByUserAndDate(context.Background(), "user-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, record.Status)
	require.NotNil(t, record.CheckInTime)
	assert.Equal(t, 8, record.CheckInTime.Hour())
	require.NotNil(t, record.CheckOutTime)
	assert.Equal(t, 17, record.CheckOutTime.Hour())
	require.NotNil(t, record.WorkHours)
	assert.InDelta(t, 8.0, *record.WorkHours, 0.001)
	assert.True(t, record.Verified)
	require.NotNil(t, record.VerifiedBy)
	assert.Equal(t, "kajur-1", *record.VerifiedBy)
}

func TestSynchronizeWithLeaveRequests(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	// A day the absence sweep marked before the leave was approved.
	env.attendance.records["att-1"] = attendance.Attendance{
		ID:           "att-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:       attendance.StatusAbsent,
	}
	reviewer := "kajur-1"
	env.leaves.requests = append(env.leaves.requests, leave.LeaveRequest{
		ID:         "leave-1",
		UserID:     "user-1",
		Type:       leave.TypeWFH,
		StartDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
		ReviewedBy: &reviewer,
	})

	uid := "user-1"
	synced, err := env.svc.SynchronizeWithLeaveRequests(context.Background(), &uid,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	record := env.attendance.records["att-1"]
	assert.Equal(t, attendance.StatusRemoteWorking, record.Status)
	require.NotNil(t, record.CheckInNotes)
	assert.Contains(t, *record.CheckInNotes, "[synced:wfh]")
	require.NotNil(t, record.WorkHours)
	assert.InDelta(t, 8.0, *record.WorkHours, 0.001)

	// A second run finds the tag and rewrites nothing.
	synced, err = env.svc.SynchronizeWithLeaveRequests(context.Background(), &uid,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, synced)
}

func TestCreateManual_LeaveOverridesStatus(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	env.leaves.requests = append(env.leaves.requests, leave.LeaveRequest{
		ID:        "leave-1",
		UserID:    "user-1",
		Type:      leave.TypeDL,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	})

	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	corrID := "corr-1"
	record, err := env.svc.CreateManual(context.Background(), "user-1",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		&checkIn, nil, attendance.StatusPresent, &corrID, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusOfficialTravel, record.Status)
	assert.True(t, record.Verified)
	assert.True(t, record.IsManualCheckIn)
}

func TestGetSummary(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	h1, h2 := 8.0, 9.0
	env.attendance.records["a1"] = attendance.Attendance{
		ID: "a1", UserID: "user-1",
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    attendance.StatusPresent,
		WorkHours: &h1,
	}
	env.attendance.records["a2"] = attendance.Attendance{
		ID: "a2", UserID: "user-1",
		Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:    attendance.StatusLate,
		WorkHours: &h2,
	}
	env.attendance.records["a3"] = attendance.Attendance{
		ID: "a3", UserID: "user-1",
		Date:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status: attendance.StatusAbsent,
	}

	summary, err := env.svc.GetSummary(context.Background(), "user-1", user.RoleDosen, "user-1",
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalDays)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.Absent)
	// Present and late both count as attended; the absent day does not.
	assert.Equal(t, 2, summary.TotalAttendances)
	assert.InDelta(t, 17.0, summary.TotalWorkHours, 0.001)
	assert.InDelta(t, 8.5, summary.AverageWorkHours, 0.001)
}

func TestGetSummary_OtherUserForbidden(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.svc.GetSummary(context.Background(), "user-1", user.RoleDosen, "user-2", now, now)
	assert.ErrorIs(t, err, attendance.ErrNotRecordOwner)
}
