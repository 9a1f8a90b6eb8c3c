package attendance

import (
	"regexp"
	"time"

	"campuskit.io/school-api-gateway/app/domain/student"
	"campuskit.io/school-api-gateway/app/infrastructure/cache"
	"campuskit.io/school-api-gateway/config/environment_variables"
)

// Rosters change far less often than daily attendance rows, so they
// get a longer default age.
const defaultRosterMaxAge = 10 * time.Minute

// AttendanceCache binds the generic in-memory cache to the three
// access patterns the screens use: per-(class,date) student rows,
// per-date teacher rows, and per-class student rosters. Tenant is an
// extra key dimension because one process serves many tenants.
type AttendanceCache struct {
	studentRows *cache.MemoryCache[[]*StudentAttendance]
	teacherRows *cache.MemoryCache[[]*TeacherAttendance]
	rosters     *cache.MemoryCache[[]*student.Student]
}

// NewAttendanceCache builds the cache set with ages from the
// environment, falling back to the package defaults.
func NewAttendanceCache() *AttendanceCache {
	rowAge := time.Duration(environment_variables.EnvironmentVariables.ATTENDANCE_CACHE_TTL_MS) * time.Millisecond
	rosterAge := time.Duration(environment_variables.EnvironmentVariables.ROSTER_CACHE_TTL_MS) * time.Millisecond
	if rosterAge <= 0 {
		rosterAge = defaultRosterMaxAge
	}
	return &AttendanceCache{
		studentRows: cache.NewMemoryCache[[]*StudentAttendance](rowAge),
		teacherRows: cache.NewMemoryCache[[]*TeacherAttendance](rowAge),
		rosters:     cache.NewMemoryCache[[]*student.Student](rosterAge),
	}
}

func studentRowsKey(tenantID, classID string, date time.Time) string {
	return cache.GenerateKey(cache.KindStudentAttendance, classID, date.Format(DateLayout),
		cache.KV{Key: "tenant", Value: tenantID})
}

func teacherRowsKey(tenantID string, date time.Time) string {
	return cache.GenerateKey(cache.KindTeacherAttendance, "", date.Format(DateLayout),
		cache.KV{Key: "tenant", Value: tenantID})
}

func rosterKey(tenantID, classID string) string {
	return cache.GenerateKey(cache.KindStudentsByClass, classID, "",
		cache.KV{Key: "tenant", Value: tenantID})
}

func (c *AttendanceCache) StudentRows(tenantID, classID string, date time.Time) ([]*StudentAttendance, bool) {
	return c.studentRows.Get(studentRowsKey(tenantID, classID, date))
}

func (c *AttendanceCache) SetStudentRows(tenantID, classID string, date time.Time, rows []*StudentAttendance) {
	c.studentRows.Set(studentRowsKey(tenantID, classID, date), rows)
}

func (c *AttendanceCache) InvalidateStudentRows(tenantID, classID string, date time.Time) {
	c.studentRows.Invalidate(studentRowsKey(tenantID, classID, date))
}

func (c *AttendanceCache) TeacherRows(tenantID string, date time.Time) ([]*TeacherAttendance, bool) {
	return c.teacherRows.Get(teacherRowsKey(tenantID, date))
}

func (c *AttendanceCache) SetTeacherRows(tenantID string, date time.Time, rows []*TeacherAttendance) {
	c.teacherRows.Set(teacherRowsKey(tenantID, date), rows)
}

func (c *AttendanceCache) InvalidateTeacherRows(tenantID string, date time.Time) {
	c.teacherRows.Invalidate(teacherRowsKey(tenantID, date))
}

func (c *AttendanceCache) ClassRoster(tenantID, classID string) ([]*student.Student, bool) {
	return c.rosters.Get(rosterKey(tenantID, classID))
}

func (c *AttendanceCache) SetClassRoster(tenantID, classID string, roster []*student.Student) {
	c.rosters.Set(rosterKey(tenantID, classID), roster)
}

func (c *AttendanceCache) InvalidateClassRoster(tenantID, classID string) {
	c.rosters.Invalidate(rosterKey(tenantID, classID))
}

// InvalidateClass drops every cached result for a class regardless of
// date: attendance rows and the roster list. Used when a mutation can
// touch an unknown set of dates, e.g. a bulk correction.
func (c *AttendanceCache) InvalidateClass(tenantID, classID string) (int, error) {
	pattern := "^" + cache.KindStudentAttendance + "_" + regexp.QuoteMeta(classID) + "_"
	deleted, err := c.studentRows.InvalidatePattern(pattern)
	if err != nil {
		return deleted, err
	}
	c.rosters.Invalidate(rosterKey(tenantID, classID))
	return deleted + 1, nil
}

// CacheStats aggregates the snapshots of the three underlying caches.
type CacheStats struct {
	StudentRows cache.CacheStats `json:"student_attendance"`
	TeacherRows cache.CacheStats `json:"teacher_attendance"`
	Rosters     cache.CacheStats `json:"class_rosters"`
}

func (c *AttendanceCache) Stats() CacheStats {
	return CacheStats{
		StudentRows: c.studentRows.Stats(),
		TeacherRows: c.teacherRows.Stats(),
		Rosters:     c.rosters.Stats(),
	}
}

// CleanupExpired sweeps all three caches and returns the total removed.
// Driven by the cron service, never self-scheduled.
func (c *AttendanceCache) CleanupExpired() int {
	return c.studentRows.CleanupExpired() +
		c.teacherRows.CleanupExpired() +
		c.rosters.CleanupExpired()
}

// Clear drops everything, returning the number of entries removed.
func (c *AttendanceCache) Clear() int {
	return c.studentRows.Clear() + c.teacherRows.Clear() + c.rosters.Clear()
}
