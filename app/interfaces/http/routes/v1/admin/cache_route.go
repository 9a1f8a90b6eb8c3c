package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuskit.io/school-api-gateway/app/domain/attendance"
	"campuskit.io/school-api-gateway/app/interfaces/http/middleware"
	"campuskit.io/school-api-gateway/app/interfaces/http/responses"
	"campuskit.io/school-api-gateway/app/utils/logger"
)

// CacheRoute exposes administrative cache diagnostics and operations.
type CacheRoute struct {
	attendanceService *attendance.AttendanceService
}

// NewCacheRoute constructs a CacheRoute instance.
func NewCacheRoute(attendanceService *attendance.AttendanceService) *CacheRoute {
	return &CacheRoute{
		attendanceService: attendanceService,
	}
}

// RegisterRouter wires the administrative cache endpoints.
func (route *CacheRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin")
	adminRouter.GET("/cache/stats", route.GetCacheStats)
	adminRouter.POST("/cache/invalidate", route.InvalidateCache)
	adminRouter.POST("/cache/cleanup", route.CleanupCache)
}

func (route *CacheRoute) GetCacheStats(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[attendance.CacheStats]{
		Status: "ok",
		Result: route.attendanceService.Cache().Stats(),
	})
}

type InvalidateCacheRequest struct {
	// ClassID limits invalidation to one class. When empty the whole
	// cache is dropped.
	ClassID string `json:"class_id"`
}

type CacheInvalidateResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Removed int    `json:"removed"`
}

func (route *CacheRoute) InvalidateCache(reqCtx *gin.Context) {
	tenantID := middleware.TenantFromContext(reqCtx)

	var request InvalidateCacheRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "a3e7c9f1-58d2-4b06-9c43-e0f6b8d21a75",
			Error: err.Error(),
		})
		return
	}

	var removed int
	if request.ClassID != "" {
		n, err := route.attendanceService.Cache().InvalidateClass(tenantID, request.ClassID)
		if err != nil {
			logger.GetLogger().Errorf("admin cache: failed to invalidate class: %v", err)
			reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code:  "b0c4f1c8-2a3b-4ad4-8b1d-7a2124d7c7b1",
				Error: "failed to invalidate cache",
			})
			return
		}
		removed = n
	} else {
		removed = route.attendanceService.Cache().Clear()
	}

	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Removed: removed,
	})
}

func (route *CacheRoute) CleanupCache(reqCtx *gin.Context) {
	removed := route.attendanceService.Cache().CleanupExpired()
	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.cleanup",
		Status:  "ok",
		Removed: removed,
	})
}
