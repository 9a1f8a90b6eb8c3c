package dbschema

import (
	"time"

	"campuskit.io/school-api-gateway/app/domain/attendance"
	"campuskit.io/school-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(StudentAttendance{}, TeacherAttendance{})
}

type StudentAttendance struct {
	BaseModel
	TenantID  string    `gorm:"index;uniqueIndex:idx_student_attendance_row"`
	StudentID string    `gorm:"uniqueIndex:idx_student_attendance_row"`
	ClassID   string    `gorm:"index;uniqueIndex:idx_student_attendance_row"`
	Date      time.Time `gorm:"type:date;index;uniqueIndex:idx_student_attendance_row"`
	Status    string
	MarkedBy  string
}

func NewSchemaStudentAttendance(a *attendance.StudentAttendance) *StudentAttendance {
	return &StudentAttendance{
		BaseModel: BaseModel{
			ID: a.ID,
		},
		TenantID:  a.TenantID,
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		Date:      a.Date,
		Status:    string(a.Status),
		MarkedBy:  a.MarkedBy,
	}
}

func (a *StudentAttendance) EtoD() *attendance.StudentAttendance {
	return &attendance.StudentAttendance{
		ID:        a.ID,
		TenantID:  a.TenantID,
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		Date:      a.Date,
		Status:    attendance.AttendanceStatus(a.Status),
		MarkedBy:  a.MarkedBy,
	}
}

type TeacherAttendance struct {
	BaseModel
	TenantID  string    `gorm:"index;uniqueIndex:idx_teacher_attendance_row"`
	TeacherID string    `gorm:"uniqueIndex:idx_teacher_attendance_row"`
	Date      time.Time `gorm:"type:date;index;uniqueIndex:idx_teacher_attendance_row"`
	Status    string
	MarkedBy  string
}

func NewSchemaTeacherAttendance(a *attendance.TeacherAttendance) *TeacherAttendance {
	return &TeacherAttendance{
		BaseModel: BaseModel{
			ID: a.ID,
		},
		TenantID:  a.TenantID,
		TeacherID: a.TeacherID,
		Date:      a.Date,
		Status:    string(a.Status),
		MarkedBy:  a.MarkedBy,
	}
}

func (a *TeacherAttendance) EtoD() *attendance.TeacherAttendance {
	return &attendance.TeacherAttendance{
		ID:        a.ID,
		TenantID:  a.TenantID,
		TeacherID: a.TeacherID,
		Date:      a.Date,
		Status:    attendance.AttendanceStatus(a.Status),
		MarkedBy:  a.MarkedBy,
	}
}
