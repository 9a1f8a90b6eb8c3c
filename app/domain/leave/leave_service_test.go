package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuskit.io/school-api-gateway/app/domain/common"
	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/domain/realtime"
	"campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/infrastructure/cache"
)

type stubLeaveRepo struct {
	apps   []*LeaveApplication
	nextID uint
}

func (r *stubLeaveRepo) Create(ctx context.Context, l *LeaveApplication) error {
	r.nextID++
	l.ID = r.nextID
	clone := *l
	r.apps = append(r.apps, &clone)
	return nil
}

func (r *stubLeaveRepo) Update(ctx context.Context, l *LeaveApplication) error {
	for i, a := range r.apps {
		if a.ID == l.ID {
			clone := *l
			r.apps[i] = &clone
			return nil
		}
	}
	return common.NewError("leave.not_found", "leave application not found")
}

func (r *stubLeaveRepo) DeleteByID(ctx context.Context, id uint) error {
	kept := r.apps[:0]
	for _, a := range r.apps {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.apps = kept
	return nil
}

func (r *stubLeaveRepo) FindByFilter(ctx context.Context, filter LeavesFilter, p *query.Pagination) ([]*LeaveApplication, error) {
	var out []*LeaveApplication
	for _, a := range r.apps {
		if filter.PublicID != nil && a.PublicID != *filter.PublicID {
			continue
		}
		if filter.TenantID != nil && a.TenantID != *filter.TenantID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubLeaveRepo) Count(ctx context.Context, filter LeavesFilter) (int64, error) {
	apps, _ := r.FindByFilter(ctx, filter, nil)
	return int64(len(apps)), nil
}

type stubTeacherRepo struct {
	teachers []*teacher.Teacher
}

func (r *stubTeacherRepo) Create(ctx context.Context, t *teacher.Teacher) error { return nil }
func (r *stubTeacherRepo) Update(ctx context.Context, t *teacher.Teacher) error { return nil }
func (r *stubTeacherRepo) DeleteByID(ctx context.Context, id uint) error        { return nil }

func (r *stubTeacherRepo) FindByFilter(ctx context.Context, f teacher.TeachersFilter, p *query.Pagination) ([]*teacher.Teacher, error) {
	return r.teachers, nil
}

func (r *stubTeacherRepo) Count(ctx context.Context, f teacher.TeachersFilter) (int64, error) {
	return int64(len(r.teachers)), nil
}

func newTestLeaveService() (*LeaveService, *stubLeaveRepo, *realtime.Hub[LeaveApplication]) {
	repo := &stubLeaveRepo{}
	teacherService := teacher.NewTeacherService(&stubTeacherRepo{
		teachers: []*teacher.Teacher{{PublicID: "t1", Name: "Ada", IsActive: true}},
	}, &cache.NoOpCacheService{})
	hub := NewLeaveEventHub()
	return NewLeaveService(repo, teacherService, hub), repo, hub
}

func validApp() *LeaveApplication {
	return &LeaveApplication{
		TenantID:  "tenant-a",
		TeacherID: "t1",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Reason:    "medical",
	}
}

func TestCreateLeave(t *testing.T) {
	svc, repo, hub := newTestLeaveService()
	ctx := context.Background()

	events, cancel := hub.Subscribe("tenant-a")
	defer cancel()

	created, err := svc.CreateLeave(ctx, validApp())
	require.NoError(t, err)
	assert.NotEmpty(t, created.PublicID)
	assert.Equal(t, LeaveStatusPending, created.Status)
	assert.Equal(t, 3, created.TotalDays)
	assert.False(t, created.AppliedAt.IsZero())
	require.NotNil(t, created.Teacher)
	assert.Equal(t, "Ada", created.Teacher.Name)
	require.Len(t, repo.apps, 1)

	select {
	case ev := <-events:
		assert.Equal(t, realtime.EventInsert, ev.EventType)
		require.NotNil(t, ev.New)
		assert.Equal(t, created.PublicID, ev.New.PublicID)
	case <-time.After(time.Second):
		t.Fatal("no insert event published")
	}
}

func TestCreateLeaveValidation(t *testing.T) {
	svc, repo, _ := newTestLeaveService()
	ctx := context.Background()

	missing := validApp()
	missing.TeacherID = ""
	_, err := svc.CreateLeave(ctx, missing)
	assert.Error(t, err)

	noDates := validApp()
	noDates.StartDate = time.Time{}
	_, err = svc.CreateLeave(ctx, noDates)
	assert.Error(t, err)

	inverted := validApp()
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	_, err = svc.CreateLeave(ctx, inverted)
	assert.Error(t, err)

	assert.Empty(t, repo.apps)
}

func TestUpdateLeaveStatus(t *testing.T) {
	svc, _, hub := newTestLeaveService()
	ctx := context.Background()

	created, err := svc.CreateLeave(ctx, validApp())
	require.NoError(t, err)

	events, cancel := hub.Subscribe("tenant-a")
	defer cancel()

	updated, err := svc.UpdateLeaveStatus(ctx, "tenant-a", created.PublicID, LeaveStatusApproved, "t1")
	require.NoError(t, err)
	assert.Equal(t, LeaveStatusApproved, updated.Status)
	assert.Equal(t, "t1", updated.ReplacementTeacherID)

	select {
	case ev := <-events:
		assert.Equal(t, realtime.EventUpdate, ev.EventType)
	case <-time.After(time.Second):
		t.Fatal("no update event published")
	}
}

func TestUpdateLeaveStatusRejectsInvalidTransitions(t *testing.T) {
	svc, _, _ := newTestLeaveService()
	ctx := context.Background()

	created, err := svc.CreateLeave(ctx, validApp())
	require.NoError(t, err)

	_, err = svc.UpdateLeaveStatus(ctx, "tenant-a", created.PublicID, LeaveStatusPending, "")
	assert.Error(t, err, "pending is not a reviewer decision")

	_, err = svc.UpdateLeaveStatus(ctx, "tenant-a", "missing", LeaveStatusApproved, "")
	assert.Error(t, err)

	// A tenant cannot touch another tenant's application.
	_, err = svc.UpdateLeaveStatus(ctx, "tenant-b", created.PublicID, LeaveStatusApproved, "")
	assert.Error(t, err)
}

func TestDeleteLeave(t *testing.T) {
	svc, repo, hub := newTestLeaveService()
	ctx := context.Background()

	created, err := svc.CreateLeave(ctx, validApp())
	require.NoError(t, err)

	events, cancel := hub.Subscribe("tenant-a")
	defer cancel()

	require.NoError(t, svc.DeleteLeave(ctx, "tenant-a", created.PublicID))
	assert.Empty(t, repo.apps)

	select {
	case ev := <-events:
		assert.Equal(t, realtime.EventDelete, ev.EventType)
		require.NotNil(t, ev.Old)
		assert.Equal(t, created.PublicID, ev.Old.PublicID)
	case <-time.After(time.Second):
		t.Fatal("no delete event published")
	}

	assert.Error(t, svc.DeleteLeave(ctx, "tenant-a", created.PublicID))
}

func TestListLeavesEnriches(t *testing.T) {
	svc, _, _ := newTestLeaveService()
	ctx := context.Background()

	_, err := svc.CreateLeave(ctx, validApp())
	require.NoError(t, err)

	tenantID := "tenant-a"
	apps, err := svc.ListLeaves(ctx, LeavesFilter{TenantID: &tenantID}, nil)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Teacher)
	assert.Equal(t, "Ada", apps[0].Teacher.Name)
	assert.Equal(t, 3, apps[0].TotalDays)
}

func TestCountLeaves(t *testing.T) {
	svc, _, _ := newTestLeaveService()
	ctx := context.Background()

	_, err := svc.CreateLeave(ctx, validApp())
	require.NoError(t, err)

	tenantID := "tenant-a"
	count, err := svc.CountLeaves(ctx, LeavesFilter{TenantID: &tenantID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
