package leave

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

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListPendingByDepartment(_ context.Context, departmentID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.DepartmentID == departmentID && req.Status == leave.StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, req leave.LeaveRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeLeaveRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.requests, id)
	return nil
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

type fakeDepartmentRepo struct {
	departments map[string]department.Department
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
	return nil, nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, d department.Department) error {
	f.departments[d.ID] = d
	return nil
}

func (f *fakeDepartmentRepo) SoftDelete(_ context.Context, _ string) error { return nil }

func (f *fakeDepartmentRepo) AddMember(_ context.Context, departmentID, userID string, _ bool) error {
	d := f.departments[departmentID]
	d.MemberIDs = append(d.MemberIDs, userID)
	f.departments[departmentID] = d
	return nil
}

func (f *fakeDepartmentRepo) RemoveMember(_ context.Context, _, _ string) error { return nil }
func (f *fakeDepartmentRepo) SetHead(_ context.Context, _, _ string) error      { return nil }

func (f *fakeDepartmentRepo) GetByMember(_ context.Context, _ string) ([]department.Department, error) {
	return nil, nil
}

func (f *fakeDepartmentRepo) GetPrimaryByMember(_ context.Context, _ string) (*department.Department, error) {
	return nil, nil
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

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
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

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByUserAndRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListUserIDsWithRecordOn(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

func testRules() config.AttendanceConfig {
	return config.AttendanceConfig{
		WorkStart: config.WorkTime{Hour: 8},
		WorkEnd:   config.WorkTime{Hour: 17},
	}
}

type leaveTestEnv struct {
	svc        *LeaveServiceImpl
	sync       *Synchronizer
	leaves     *fakeLeaveRepo
	depts      *fakeDepartmentRepo
	files      *fakeFileRepo
	attendance *fakeAttendanceRepo
}

func newLeaveTestEnv(t *testing.T, now time.Time) *leaveTestEnv {
	t.Helper()

	env := &leaveTestEnv{
		leaves:     &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)},
		depts:      &fakeDepartmentRepo{departments: make(map[string]department.Department)},
		files:      &fakeFileRepo{linked: make(map[string]string)},
		attendance: &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)},
	}

	env.sync = NewSynchronizer(env.attendance, env.leaves, testRules())
	env.sync.now = func() time.Time { return now }

	env.svc = NewLeaveService(env.leaves, env.depts, env.files, env.sync)
	env.svc.now = func() time.Time { return now }

	kajurID := "kajur-1"
	env.depts.departments["dept-1"] = department.Department{
		ID:        "dept-1",
		Name:      "Teknologi Informasi",
		Code:      "TI",
		HeadID:    &kajurID,
		MemberIDs: []string{"user-1", "kajur-1"},
		IsActive:  true,
	}

	return env
}

func TestCreateLeaveRequest(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	resp, err := env.svc.Create(context.Background(), "user-1", leave.CreateLeaveRequestRequest{
		DepartmentID: "dept-1",
		Type:         "WFH",
		StartDate:    "2025-03-10",
		EndDate:      "2025-03-12",
		Reason:       "home renovation",
	})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, "WFH", resp.Type)
}

func TestCreateLeaveRequest_NotAMember(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	_, err := env.svc.Create(context.Background(), "stranger", leave.CreateLeaveRequestRequest{
		DepartmentID: "dept-1",
		Type:         "LEAVE",
		StartDate:    "2025-03-10",
		EndDate:      "2025-03-12",
		Reason:       "family matters",
	})
	assert.ErrorIs(t, err, leave.ErrNotDepartmentMember)
}

func TestReview_KajurApproves(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	env.leaves.requests["req-1"] = leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeDL,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusPending,
	}

	resp, err := env.svc.Review(context.Background(), "kajur-1", user.RoleKajur, leave.ReviewLeaveRequestRequest{
		ID:     "req-1",
		Status: "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), resp.Status)

	// Approval projects the covered days onto the attendance ledger.
	record, err := env.attendance.GetByUserAndDate(context.Background(), "user-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOfficialTravel, record.Status)
	assert.True(t, record.Verified)
	require.NotNil(t, record.WorkHours)
	assert.InDelta(t, 8.0, *record.WorkHours, 0.001)
}

func TestReview_NonHeadKajurForbidden(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	env.leaves.requests["req-1"] = leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeLeave,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusPending,
	}

	_, err := env.svc.Review(context.Background(), "other-kajur", user.RoleKajur, leave.ReviewLeaveRequestRequest{
		ID:     "req-1",
		Status: "APPROVED",
	})
	assert.ErrorIs(t, err, department.ErrNotDepartmentHead)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	env.leaves.requests["req-1"] = leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeLeave,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusApproved,
	}

	_, err := env.svc.Review(context.Background(), "kajur-1", user.RoleKajur, leave.ReviewLeaveRequestRequest{
		ID:     "req-1",
		Status: "REJECTED",
	})
	assert.ErrorIs(t, err, leave.ErrNotPending)
}

func TestUpdate_OwnerOnlyWhilePending(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	env.leaves.requests["req-1"] = leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeWFH,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusPending,
	}

	newEnd := "2025-03-14"
	resp, err := env.svc.Update(context.Background(), "user-1", leave.UpdateLeaveRequestRequest{
		ID:      "req-1",
		EndDate: &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", resp.EndDate)

	_, err = env.svc.Update(context.Background(), "user-2", leave.UpdateLeaveRequestRequest{ID: "req-1", EndDate: &newEnd})
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
}

func TestUpdate_PartialEditMustKeepValidRange(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	env.leaves.requests["req-1"] = leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeWFH,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusPending,
	}

	badEnd := "2025-03-05"
	_, err := env.svc.Update(context.Background(), "user-1", leave.UpdateLeaveRequestRequest{
		ID:      "req-1",
		EndDate: &badEnd,
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestCheckUserLeaveStatus(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	env.leaves.requests["req-1"] = leave.LeaveRequest{
		ID:        "req-1",
		UserID:    "user-1",
		Type:      leave.TypeWFA,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	}

	status, err := env.svc.CheckUserLeaveStatus(context.Background(), "user-1", now)
	require.NoError(t, err)
	assert.True(t, status.IsOnLeave)
	assert.Equal(t, leave.TypeWFA, status.LeaveType)

	status, err = env.svc.CheckUserLeaveStatus(context.Background(), "user-1", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, status.IsOnLeave)
}

func TestSynchronizer_Idempotent(t *testing.T) {
	now := time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	reviewer := "kajur-1"
	request := leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeWFH,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusApproved,
		ReviewedBy:   &reviewer,
	}
	env.leaves.requests["req-1"] = request

	require.NoError(t, env.sync.SyncRequest(context.Background(), request))
	assert.Len(t, env.attendance.records, 2)

	// A second run must not duplicate or rewrite anything.
	require.NoError(t, env.sync.SyncRequest(context.Background(), request))
	assert.Len(t, env.attendance.records, 2)

	record, err := env.attendance.GetByUserAndDate(context.Background(), "user-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRemoteWorking, record.Status)
	require.NotNil(t, record.CheckInNotes)
	assert.Contains(t, *record.CheckInNotes, "[synced:wfh]")
	require.NotNil(t, record.VerifiedBy)
	assert.Equal(t, "kajur-1", *record.VerifiedBy)
}

func TestSynchronizer_SkipsFutureDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	env := newLeaveTestEnv(t, now)

	request := leave.LeaveRequest{
		ID:        "req-1",
		UserID:    "user-1",
		Type:      leave.TypeLeave,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	}

	require.NoError(t, env.sync.SyncRequest(context.Background(), request))

	// Only today is projected; the remaining days wait for the sweep.
	assert.Len(t, env.attendance.records, 1)
}

func TestSynchronizer_TodayInLocalZone(t *testing.T) {
	// Western Indonesia time. Request dates come back from storage as UTC
	// midnight, which lies hours after the local midnight; the covered day
	// must still count as today rather than a future day.
	wib := time.FixedZone("WIB", 7*3600)
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, wib)
	env := newLeaveTestEnv(t, now)

	reviewer := "kajur-1"
	request := leave.LeaveRequest{
		ID:           "req-1",
		UserID:       "user-1",
		DepartmentID: "dept-1",
		Type:         leave.TypeLeave,
		StartDate:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:       leave.StatusApproved,
		ReviewedBy:   &reviewer,
	}

	require.NoError(t, env.sync.SyncRequest(context.Background(), request))
	require.Len(t, env.attendance.records, 1)

	record, err := env.attendance.GetByUserAndDate(context.Background(), "user-1", time.Date(2025, 3, 15, 0, 0, 0, 0, wib))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, record.Status)
	require.NotNil(t, record.CheckInTime)
	assert.Equal(t, 8, record.CheckInTime.Hour())
}
