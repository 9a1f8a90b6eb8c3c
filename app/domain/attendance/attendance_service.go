package attendance

import (
	"context"
	"fmt"
	"time"

	"campuskit.io/school-api-gateway/app/domain/common"
	"campuskit.io/school-api-gateway/app/domain/student"
)

// AttendanceService serves attendance reads through the in-memory
// cache and keeps it consistent on writes. A cache miss is normal
// control flow, never an error.
type AttendanceService struct {
	studentRepo student.StudentRepository
	studentRows StudentAttendanceRepository
	teacherRows TeacherAttendanceRepository
	cache       *AttendanceCache
}

// NewAttendanceService is the constructor for AttendanceService.
func NewAttendanceService(
	studentRepo student.StudentRepository,
	studentRows StudentAttendanceRepository,
	teacherRows TeacherAttendanceRepository,
	cache *AttendanceCache,
) *AttendanceService {
	return &AttendanceService{
		studentRepo: studentRepo,
		studentRows: studentRows,
		teacherRows: teacherRows,
		cache:       cache,
	}
}

// StudentAttendanceForClass returns the rows for one class and day,
// reading through the cache.
func (s *AttendanceService) StudentAttendanceForClass(ctx context.Context, tenantID, classID string, date time.Time) ([]*StudentAttendance, error) {
	if rows, ok := s.cache.StudentRows(tenantID, classID, date); ok {
		return rows, nil
	}

	rows, err := s.studentRows.FindByClassAndDate(ctx, tenantID, classID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load student attendance: %w", err)
	}
	s.cache.SetStudentRows(tenantID, classID, date, rows)
	return rows, nil
}

// MarkStudentAttendance upserts the given rows and invalidates every
// (class, date) combination they touch.
func (s *AttendanceService) MarkStudentAttendance(ctx context.Context, tenantID string, rows []*StudentAttendance) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.StudentID == "" || row.ClassID == "" || row.Date.IsZero() {
			return common.NewError("attendance.invalid_row", "attendance rows require student, class and date")
		}
		row.TenantID = tenantID
	}

	if err := s.studentRows.Upsert(ctx, rows); err != nil {
		return fmt.Errorf("failed to mark student attendance: %w", err)
	}
	for _, row := range rows {
		s.cache.InvalidateStudentRows(tenantID, row.ClassID, row.Date)
	}
	return nil
}

// TeacherAttendanceForDate returns the teacher rows for one day,
// reading through the cache.
func (s *AttendanceService) TeacherAttendanceForDate(ctx context.Context, tenantID string, date time.Time) ([]*TeacherAttendance, error) {
	if rows, ok := s.cache.TeacherRows(tenantID, date); ok {
		return rows, nil
	}

	rows, err := s.teacherRows.FindByDate(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load teacher attendance: %w", err)
	}
	s.cache.SetTeacherRows(tenantID, date, rows)
	return rows, nil
}

// MarkTeacherAttendance upserts the given rows and invalidates the
// dates they touch.
func (s *AttendanceService) MarkTeacherAttendance(ctx context.Context, tenantID string, rows []*TeacherAttendance) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.TeacherID == "" || row.Date.IsZero() {
			return common.NewError("attendance.invalid_row", "attendance rows require teacher and date")
		}
		row.TenantID = tenantID
	}

	if err := s.teacherRows.Upsert(ctx, rows); err != nil {
		return fmt.Errorf("failed to mark teacher attendance: %w", err)
	}
	for _, row := range rows {
		s.cache.InvalidateTeacherRows(tenantID, row.Date)
	}
	return nil
}

// ClassRoster returns the active students of a class, reading through
// the longer-lived roster cache.
func (s *AttendanceService) ClassRoster(ctx context.Context, tenantID, classID string) ([]*student.Student, error) {
	if roster, ok := s.cache.ClassRoster(tenantID, classID); ok {
		return roster, nil
	}

	active := true
	roster, err := s.studentRepo.FindByFilter(ctx, student.StudentsFilter{
		TenantID: &tenantID,
		ClassID:  &classID,
		IsActive: &active,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load class roster: %w", err)
	}
	s.cache.SetClassRoster(tenantID, classID, roster)
	return roster, nil
}

// StudentSummary aggregates one student's attendance over a date range
// into the percentage the report screens show.
func (s *AttendanceService) StudentSummary(ctx context.Context, tenantID, studentID string, from, to time.Time) (*Summary, error) {
	rows, err := s.studentRows.FindByStudentAndRange(ctx, tenantID, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance range: %w", err)
	}
	summary := Summarize(rows)[studentID]
	if summary == nil {
		summary = &Summary{StudentID: studentID}
	}
	return summary, nil
}

// ClassSummary aggregates a whole class's rows for one day range.
func (s *AttendanceService) ClassSummary(ctx context.Context, tenantID, classID string, date time.Time) (map[string]*Summary, error) {
	rows, err := s.StudentAttendanceForClass(ctx, tenantID, classID, date)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}

// Cache exposes the cache for the admin diagnostics route and cron.
func (s *AttendanceService) Cache() *AttendanceCache {
	return s.cache
}
