package routes

import (
	"github.com/google/wire"

	v1 "campuskit.io/school-api-gateway/app/interfaces/http/routes/v1"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/admin"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/attendance"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/leaves"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/teachers"
)

var RouteProvider = wire.NewSet(
	teachers.NewTeachersRoute,
	attendance.NewAttendanceRoute,
	leaves.NewLeavesRoute,
	admin.NewCacheRoute,
	v1.NewV1Route,
)
