package cache

// Composite-key kinds for the in-memory caches.
const (
	KindStudentAttendance = "student_attendance"
	KindTeacherAttendance = "teacher_attendance"
	KindStudentsByClass   = "students_by_class"
)

// Shared (redis) cache keys.
const (
	CacheVersion            = "v1"
	TeacherRosterKeyPattern = CacheVersion + ":roster:tenant:%s"
	RosterLockKeyPattern    = CacheVersion + ":roster:lock:%s"
)
