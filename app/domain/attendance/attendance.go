package attendance

import (
	"context"
	"time"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
)

// DateLayout is the calendar-date form used in cache keys and queries.
const DateLayout = "2006-01-02"

// StudentAttendance is one student's status for one class on one day.
type StudentAttendance struct {
	ID        uint
	TenantID  string
	StudentID string
	ClassID   string
	Date      time.Time
	Status    AttendanceStatus
	MarkedBy  string
}

// TeacherAttendance is one teacher's status for one day.
type TeacherAttendance struct {
	ID        uint
	TenantID  string
	TeacherID string
	Date      time.Time
	Status    AttendanceStatus
	MarkedBy  string
}

type StudentAttendanceRepository interface {
	// Upsert replaces any existing row for the same (tenant, student,
	// class, date). Marking twice is an overwrite, not a duplicate.
	Upsert(ctx context.Context, rows []*StudentAttendance) error
	FindByClassAndDate(ctx context.Context, tenantID, classID string, date time.Time) ([]*StudentAttendance, error)
	FindByStudentAndRange(ctx context.Context, tenantID, studentID string, from, to time.Time) ([]*StudentAttendance, error)
}

type TeacherAttendanceRepository interface {
	Upsert(ctx context.Context, rows []*TeacherAttendance) error
	FindByDate(ctx context.Context, tenantID string, date time.Time) ([]*TeacherAttendance, error)
}

// Summary is the aggregate a student's attendance percentage is
// reported from.
type Summary struct {
	StudentID  string  `json:"student_id"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Excused    int     `json:"excused"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Summarize folds attendance rows into per-student aggregates.
// Present and late both count toward attended days.
func Summarize(rows []*StudentAttendance) map[string]*Summary {
	summaries := make(map[string]*Summary)
	for _, row := range rows {
		if row == nil {
			continue
		}
		s := summaries[row.StudentID]
		if s == nil {
			s = &Summary{StudentID: row.StudentID}
			summaries[row.StudentID] = s
		}
		switch row.Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		case StatusExcused:
			s.Excused++
		}
		s.Total++
	}
	for _, s := range summaries {
		if s.Total > 0 {
			s.Percentage = float64(s.Present+s.Late) / float64(s.Total) * 100
		}
	}
	return summaries
}
