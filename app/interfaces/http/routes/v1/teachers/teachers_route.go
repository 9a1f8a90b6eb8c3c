package teachers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/interfaces/http/middleware"
	"campuskit.io/school-api-gateway/app/interfaces/http/responses"
	"campuskit.io/school-api-gateway/app/utils/functional"
)

type TeachersRoute struct {
	teacherService *teacher.TeacherService
}

func NewTeachersRoute(teacherService *teacher.TeacherService) *TeachersRoute {
	return &TeachersRoute{
		teacherService: teacherService,
	}
}

func (route *TeachersRoute) RegisterRouter(router gin.IRouter) {
	teachersRouter := router.Group("/teachers")
	teachersRouter.GET("", route.ListTeachers)
	teachersRouter.POST("", route.CreateTeacher)
	teachersRouter.GET("/roster", route.GetRoster)
}

type TeacherResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Subject  string `json:"subject,omitempty"`
	IsActive bool   `json:"is_active"`
}

func toTeacherResponse(t *teacher.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:       t.PublicID,
		Name:     t.Name,
		Email:    t.Email,
		Phone:    t.Phone,
		Subject:  t.Subject,
		IsActive: t.IsActive,
	}
}

func (route *TeachersRoute) ListTeachers(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "f3c1d6b2-8f43-41f5-94b0-e5a7c2f81d09",
			Error: err.Error(),
		})
		return
	}

	filter := teacher.TeachersFilter{TenantID: &tenantID}
	teachers, err := route.teacherService.FindTeachers(ctx, filter, pagination)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "1d9a2e75-4f3c-4b1e-b4a8-c0f5d6a28e31",
			Error: "failed to list teachers",
		})
		return
	}
	total, err := route.teacherService.CountTeachers(ctx, filter)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "2c4f8b10-93d2-45c6-a1e7-f8b3d5c97a42",
			Error: "failed to count teachers",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[TeacherResponse]{
		Status:  "ok",
		Total:   total,
		Results: functional.Map(teachers, toTeacherResponse),
	})
}

type CreateTeacherRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
}

func (route *TeachersRoute) CreateTeacher(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	var request CreateTeacherRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8a7d3f52-61bc-4e89-bb0a-2c4e9d1f6b73",
			Error: err.Error(),
		})
		return
	}

	created, err := route.teacherService.CreateTeacherWithPublicID(ctx, &teacher.Teacher{
		TenantID: tenantID,
		Name:     request.Name,
		Email:    request.Email,
		Phone:    request.Phone,
		Subject:  request.Subject,
		IsActive: true,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "6e2b9c81-0d5f-4a37-9c16-b8f4a3d7e250",
			Error: "failed to create teacher",
		})
		return
	}

	reqCtx.JSON(http.StatusCreated, responses.GeneralResponse[TeacherResponse]{
		Status: "ok",
		Result: toTeacherResponse(created),
	})
}

func (route *TeachersRoute) GetRoster(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	roster, err := route.teacherService.Roster(ctx, tenantID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "4f0c7a93-2e6d-4b58-8a1f-d3c5b9e72640",
			Error: "failed to load roster",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[TeacherResponse]{
		Status:  "ok",
		Total:   int64(len(roster)),
		Results: functional.Map(roster, toTeacherResponse),
	})
}
