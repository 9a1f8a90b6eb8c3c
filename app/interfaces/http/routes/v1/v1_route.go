package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuskit.io/school-api-gateway/app/interfaces/http/middleware"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/admin"
	attendanceRoute "campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/attendance"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/leaves"
	"campuskit.io/school-api-gateway/app/interfaces/http/routes/v1/teachers"
	"campuskit.io/school-api-gateway/config"
)

type V1Route struct {
	teachersRoute   *teachers.TeachersRoute
	attendanceRoute *attendanceRoute.AttendanceRoute
	leavesRoute     *leaves.LeavesRoute
	cacheRoute      *admin.CacheRoute
}

func NewV1Route(
	teachersRoute *teachers.TeachersRoute,
	attendanceRoute *attendanceRoute.AttendanceRoute,
	leavesRoute *leaves.LeavesRoute,
	cacheRoute *admin.CacheRoute,
) *V1Route {
	return &V1Route{
		teachersRoute,
		attendanceRoute,
		leavesRoute,
		cacheRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	tenantRouter := v1Router.Group("", middleware.TenantAuthMiddleware())
	v1Route.teachersRoute.RegisterRouter(tenantRouter)
	v1Route.attendanceRoute.RegisterRouter(tenantRouter)
	v1Route.leavesRoute.RegisterRouter(tenantRouter)
	v1Route.cacheRoute.RegisterRouter(tenantRouter)
}

func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
