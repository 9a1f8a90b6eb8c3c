package domain

import (
	"github.com/google/wire"

	"campuskit.io/school-api-gateway/app/domain/attendance"
	"campuskit.io/school-api-gateway/app/domain/leave"
	"campuskit.io/school-api-gateway/app/domain/teacher"
)

var ServiceProvider = wire.NewSet(
	teacher.NewTeacherService,
	attendance.NewAttendanceCache,
	attendance.NewAttendanceService,
	leave.NewLeaveEventHub,
	leave.NewLeaveService,
)
