package repository

import (
	"github.com/google/wire"

	"campuskit.io/school-api-gateway/app/infrastructure/database/repository/attendancerepo"
	"campuskit.io/school-api-gateway/app/infrastructure/database/repository/leaverepo"
	"campuskit.io/school-api-gateway/app/infrastructure/database/repository/studentrepo"
	"campuskit.io/school-api-gateway/app/infrastructure/database/repository/teacherrepo"
)

var RepositoryProvider = wire.NewSet(
	teacherrepo.NewTeacherGormRepository,
	studentrepo.NewStudentGormRepository,
	attendancerepo.NewStudentAttendanceGormRepository,
	attendancerepo.NewTeacherAttendanceGormRepository,
	leaverepo.NewLeaveGormRepository,
)
