package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/domain/student"
)

type stubStudentRepo struct {
	students []*student.Student
	calls    int
}

func (r *stubStudentRepo) Create(ctx context.Context, s *student.Student) error  { return nil }
func (r *stubStudentRepo) Update(ctx context.Context, s *student.Student) error  { return nil }
func (r *stubStudentRepo) DeleteByID(ctx context.Context, id uint) error         { return nil }
func (r *stubStudentRepo) Count(ctx context.Context, f student.StudentsFilter) (int64, error) {
	return int64(len(r.students)), nil
}

func (r *stubStudentRepo) FindByFilter(ctx context.Context, f student.StudentsFilter, p *query.Pagination) ([]*student.Student, error) {
	r.calls++
	return r.students, nil
}

type stubStudentAttendanceRepo struct {
	rows      []*StudentAttendance
	upserted  [][]*StudentAttendance
	findCalls int
	err       error
}

func (r *stubStudentAttendanceRepo) Upsert(ctx context.Context, rows []*StudentAttendance) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, rows)
	return nil
}

func (r *stubStudentAttendanceRepo) FindByClassAndDate(ctx context.Context, tenantID, classID string, date time.Time) ([]*StudentAttendance, error) {
	r.findCalls++
	return r.rows, r.err
}

func (r *stubStudentAttendanceRepo) FindByStudentAndRange(ctx context.Context, tenantID, studentID string, from, to time.Time) ([]*StudentAttendance, error) {
	r.findCalls++
	return r.rows, r.err
}

type stubTeacherAttendanceRepo struct {
	rows      []*TeacherAttendance
	findCalls int
}

func (r *stubTeacherAttendanceRepo) Upsert(ctx context.Context, rows []*TeacherAttendance) error {
	return nil
}

func (r *stubTeacherAttendanceRepo) FindByDate(ctx context.Context, tenantID string, date time.Time) ([]*TeacherAttendance, error) {
	r.findCalls++
	return r.rows, nil
}

func newTestService(studentRepo *stubStudentRepo, rows *stubStudentAttendanceRepo, teacherRows *stubTeacherAttendanceRepo) *AttendanceService {
	return NewAttendanceService(studentRepo, rows, teacherRows, NewAttendanceCache())
}

func TestStudentAttendanceForClassReadsThroughCache(t *testing.T) {
	rows := &stubStudentAttendanceRepo{rows: []*StudentAttendance{{StudentID: "s1", Status: StatusPresent}}}
	svc := newTestService(&stubStudentRepo{}, rows, &stubTeacherAttendanceRepo{})
	ctx := context.Background()

	got, err := svc.StudentAttendanceForClass(ctx, "t1", "class-5a", march1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, rows.findCalls)

	// The second read is served from the cache.
	_, err = svc.StudentAttendanceForClass(ctx, "t1", "class-5a", march1)
	require.NoError(t, err)
	assert.Equal(t, 1, rows.findCalls)

	// A different tenant goes back to storage.
	_, err = svc.StudentAttendanceForClass(ctx, "t2", "class-5a", march1)
	require.NoError(t, err)
	assert.Equal(t, 2, rows.findCalls)
}

func TestStudentAttendanceForClassRepoError(t *testing.T) {
	rows := &stubStudentAttendanceRepo{err: errors.New("db down")}
	svc := newTestService(&stubStudentRepo{}, rows, &stubTeacherAttendanceRepo{})

	_, err := svc.StudentAttendanceForClass(context.Background(), "t1", "class-5a", march1)
	assert.ErrorContains(t, err, "db down")
}

func TestMarkStudentAttendanceInvalidatesTouchedKeys(t *testing.T) {
	rows := &stubStudentAttendanceRepo{rows: []*StudentAttendance{{StudentID: "s1"}}}
	svc := newTestService(&stubStudentRepo{}, rows, &stubTeacherAttendanceRepo{})
	ctx := context.Background()

	// Warm the cache.
	_, err := svc.StudentAttendanceForClass(ctx, "t1", "class-5a", march1)
	require.NoError(t, err)

	err = svc.MarkStudentAttendance(ctx, "t1", []*StudentAttendance{
		{StudentID: "s1", ClassID: "class-5a", Date: march1, Status: StatusAbsent},
	})
	require.NoError(t, err)
	require.Len(t, rows.upserted, 1)
	assert.Equal(t, "t1", rows.upserted[0][0].TenantID, "tenant is stamped onto every row")

	// The next read must bypass the stale cache entry.
	_, err = svc.StudentAttendanceForClass(ctx, "t1", "class-5a", march1)
	require.NoError(t, err)
	assert.Equal(t, 2, rows.findCalls)
}

func TestMarkStudentAttendanceValidatesRows(t *testing.T) {
	rows := &stubStudentAttendanceRepo{}
	svc := newTestService(&stubStudentRepo{}, rows, &stubTeacherAttendanceRepo{})
	ctx := context.Background()

	err := svc.MarkStudentAttendance(ctx, "t1", []*StudentAttendance{{ClassID: "class-5a", Date: march1}})
	assert.Error(t, err, "missing student id")

	err = svc.MarkStudentAttendance(ctx, "t1", []*StudentAttendance{{StudentID: "s1", ClassID: "class-5a"}})
	assert.Error(t, err, "missing date")

	assert.Empty(t, rows.upserted)

	// An empty batch is a no-op, not an error.
	assert.NoError(t, svc.MarkStudentAttendance(ctx, "t1", nil))
}

func TestTeacherAttendanceForDateReadsThroughCache(t *testing.T) {
	teacherRows := &stubTeacherAttendanceRepo{rows: []*TeacherAttendance{{TeacherID: "tc1"}}}
	svc := newTestService(&stubStudentRepo{}, &stubStudentAttendanceRepo{}, teacherRows)
	ctx := context.Background()

	_, err := svc.TeacherAttendanceForDate(ctx, "t1", march1)
	require.NoError(t, err)
	_, err = svc.TeacherAttendanceForDate(ctx, "t1", march1)
	require.NoError(t, err)
	assert.Equal(t, 1, teacherRows.findCalls)
}

func TestClassRosterReadsThroughCache(t *testing.T) {
	studentRepo := &stubStudentRepo{students: []*student.Student{{PublicID: "s1", Name: "Ana"}}}
	svc := newTestService(studentRepo, &stubStudentAttendanceRepo{}, &stubTeacherAttendanceRepo{})
	ctx := context.Background()

	roster, err := svc.ClassRoster(ctx, "t1", "class-5a")
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = svc.ClassRoster(ctx, "t1", "class-5a")
	require.NoError(t, err)
	assert.Equal(t, 1, studentRepo.calls)
}

func TestStudentSummary(t *testing.T) {
	rows := &stubStudentAttendanceRepo{rows: []*StudentAttendance{
		{StudentID: "s1", Status: StatusPresent},
		{StudentID: "s1", Status: StatusAbsent},
	}}
	svc := newTestService(&stubStudentRepo{}, rows, &stubTeacherAttendanceRepo{})

	summary, err := svc.StudentSummary(context.Background(), "t1", "s1", march1, march1.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.InDelta(t, 50.0, summary.Percentage, 0.001)
}

func TestStudentSummaryNoRows(t *testing.T) {
	svc := newTestService(&stubStudentRepo{}, &stubStudentAttendanceRepo{}, &stubTeacherAttendanceRepo{})

	summary, err := svc.StudentSummary(context.Background(), "t1", "s9", march1, march1)
	require.NoError(t, err)
	assert.Equal(t, "s9", summary.StudentID)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Percentage)
}

func TestClassSummary(t *testing.T) {
	rows := &stubStudentAttendanceRepo{rows: []*StudentAttendance{
		{StudentID: "s1", Status: StatusPresent},
		{StudentID: "s2", Status: StatusAbsent},
	}}
	svc := newTestService(&stubStudentRepo{}, rows, &stubTeacherAttendanceRepo{})

	summaries, err := svc.ClassSummary(context.Background(), "t1", "class-5a", march1)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}
