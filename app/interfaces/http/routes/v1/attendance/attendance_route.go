package attendance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campuskit.io/school-api-gateway/app/domain/attendance"
	"campuskit.io/school-api-gateway/app/domain/student"
	"campuskit.io/school-api-gateway/app/interfaces/http/middleware"
	"campuskit.io/school-api-gateway/app/interfaces/http/responses"
	"campuskit.io/school-api-gateway/app/utils/functional"
)

type AttendanceRoute struct {
	attendanceService *attendance.AttendanceService
}

func NewAttendanceRoute(attendanceService *attendance.AttendanceService) *AttendanceRoute {
	return &AttendanceRoute{
		attendanceService: attendanceService,
	}
}

func (route *AttendanceRoute) RegisterRouter(router gin.IRouter) {
	attendanceRouter := router.Group("/attendance")
	attendanceRouter.GET("/students", route.GetStudentAttendance)
	attendanceRouter.POST("/students", route.MarkStudentAttendance)
	attendanceRouter.GET("/students/:student_id/summary", route.GetStudentSummary)
	attendanceRouter.GET("/teachers", route.GetTeacherAttendance)
	attendanceRouter.POST("/teachers", route.MarkTeacherAttendance)
	attendanceRouter.GET("/classes/:class_id/roster", route.GetClassRoster)
	attendanceRouter.GET("/classes/:class_id/summary", route.GetClassSummary)
}

func parseDateQuery(reqCtx *gin.Context, name string) (time.Time, bool) {
	raw := reqCtx.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(attendance.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

type StudentAttendanceRow struct {
	StudentID string `json:"student_id" binding:"required"`
	ClassID   string `json:"class_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent late excused"`
	MarkedBy  string `json:"marked_by"`
}

type TeacherAttendanceRow struct {
	TeacherID string `json:"teacher_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent late excused"`
	MarkedBy  string `json:"marked_by"`
}

func toStudentRowResponse(row *attendance.StudentAttendance) StudentAttendanceRow {
	return StudentAttendanceRow{
		StudentID: row.StudentID,
		ClassID:   row.ClassID,
		Date:      row.Date.Format(attendance.DateLayout),
		Status:    string(row.Status),
		MarkedBy:  row.MarkedBy,
	}
}

func (route *AttendanceRoute) GetStudentAttendance(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	classID := reqCtx.Query("class_id")
	date, ok := parseDateQuery(reqCtx, "date")
	if classID == "" || !ok {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "9b3e5d27-41af-4c68-b0d9-7f2c8a61e354",
			Error: "class_id and date (YYYY-MM-DD) are required",
		})
		return
	}

	rows, err := route.attendanceService.StudentAttendanceForClass(ctx, tenantID, classID, date)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "0c6f2a84-95bd-4e13-8c57-a1d3f9b60e72",
			Error: "failed to load student attendance",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[StudentAttendanceRow]{
		Status:  "ok",
		Total:   int64(len(rows)),
		Results: functional.Map(rows, toStudentRowResponse),
	})
}

type MarkStudentAttendanceRequest struct {
	Rows []StudentAttendanceRow `json:"rows" binding:"required,dive"`
}

func (route *AttendanceRoute) MarkStudentAttendance(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	var request MarkStudentAttendanceRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "e1b8c4d6-3a27-49f5-8e0b-6d9f2c75a183",
			Error: err.Error(),
		})
		return
	}

	rows := make([]*attendance.StudentAttendance, 0, len(request.Rows))
	for _, row := range request.Rows {
		date, err := time.Parse(attendance.DateLayout, row.Date)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "5a9d1f38-7c42-4b06-a8e3-f0b6d2c49e17",
				Error: "invalid date: " + row.Date,
			})
			return
		}
		rows = append(rows, &attendance.StudentAttendance{
			StudentID: row.StudentID,
			ClassID:   row.ClassID,
			Date:      date,
			Status:    attendance.AttendanceStatus(row.Status),
			MarkedBy:  row.MarkedBy,
		})
	}

	if err := route.attendanceService.MarkStudentAttendance(ctx, tenantID, rows); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "3d7b0e92-68af-4c51-9d24-b5e8f1a37c60",
			Error: "failed to mark attendance",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[int]{
		Status: "ok",
		Result: len(rows),
	})
}

func (route *AttendanceRoute) GetStudentSummary(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)
	studentID := reqCtx.Param("student_id")

	from, okFrom := parseDateQuery(reqCtx, "from")
	to, okTo := parseDateQuery(reqCtx, "to")
	if !okFrom || !okTo {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "b4c2e6f8-19d3-457a-8b0c-d7f5a3e91642",
			Error: "from and to (YYYY-MM-DD) are required",
		})
		return
	}

	summary, err := route.attendanceService.StudentSummary(ctx, tenantID, studentID, from, to)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a8f1d5b3-26c7-4e09-b4d8-3e6a9c20f571",
			Error: "failed to compute summary",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*attendance.Summary]{
		Status: "ok",
		Result: summary,
	})
}

func (route *AttendanceRoute) GetTeacherAttendance(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	date, ok := parseDateQuery(reqCtx, "date")
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c5e3a7d9-40b2-4f68-9a1c-e8d6b2f57304",
			Error: "date (YYYY-MM-DD) is required",
		})
		return
	}

	rows, err := route.attendanceService.TeacherAttendanceForDate(ctx, tenantID, date)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "f7a4b1c8-52e6-4d30-8f9b-a0c3d6e82415",
			Error: "failed to load teacher attendance",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[TeacherAttendanceRow]{
		Status: "ok",
		Total:  int64(len(rows)),
		Results: functional.Map(rows, func(row *attendance.TeacherAttendance) TeacherAttendanceRow {
			return TeacherAttendanceRow{
				TeacherID: row.TeacherID,
				Date:      row.Date.Format(attendance.DateLayout),
				Status:    string(row.Status),
				MarkedBy:  row.MarkedBy,
			}
		}),
	})
}

type MarkTeacherAttendanceRequest struct {
	Rows []TeacherAttendanceRow `json:"rows" binding:"required,dive"`
}

func (route *AttendanceRoute) MarkTeacherAttendance(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	var request MarkTeacherAttendanceRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d2b9f4a6-71c3-4e85-90da-b6e1f8c35027",
			Error: err.Error(),
		})
		return
	}

	rows := make([]*attendance.TeacherAttendance, 0, len(request.Rows))
	for _, row := range request.Rows {
		date, err := time.Parse(attendance.DateLayout, row.Date)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "19c6e2d8-45fa-4b07-a3e9-d5b8f0c27461",
				Error: "invalid date: " + row.Date,
			})
			return
		}
		rows = append(rows, &attendance.TeacherAttendance{
			TeacherID: row.TeacherID,
			Date:      date,
			Status:    attendance.AttendanceStatus(row.Status),
			MarkedBy:  row.MarkedBy,
		})
	}

	if err := route.attendanceService.MarkTeacherAttendance(ctx, tenantID, rows); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "72e0d8b4-36c9-4f12-85ab-c4f7e1d96350",
			Error: "failed to mark attendance",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[int]{
		Status: "ok",
		Result: len(rows),
	})
}

type StudentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber int    `json:"roll_number"`
}

func (route *AttendanceRoute) GetClassRoster(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)
	classID := reqCtx.Param("class_id")

	roster, err := route.attendanceService.ClassRoster(ctx, tenantID, classID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "84d5f2c0-9eb1-4a63-b7d8-e2c9a6f41085",
			Error: "failed to load class roster",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[StudentResponse]{
		Status: "ok",
		Total:  int64(len(roster)),
		Results: functional.Map(roster, func(s *student.Student) StudentResponse {
			return StudentResponse{
				ID:         s.PublicID,
				Name:       s.Name,
				RollNumber: s.RollNumber,
			}
		}),
	})
}

func (route *AttendanceRoute) GetClassSummary(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)
	classID := reqCtx.Param("class_id")

	date, ok := parseDateQuery(reqCtx, "date")
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "6b8a3e17-d204-4c95-8f6e-1a7d5b9c2430",
			Error: "date (YYYY-MM-DD) is required",
		})
		return
	}

	summaries, err := route.attendanceService.ClassSummary(ctx, tenantID, classID, date)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "30f9c7e5-1b68-4d24-a90f-8c5e2d7b6149",
			Error: "failed to compute class summary",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[map[string]*attendance.Summary]{
		Status: "ok",
		Result: summaries,
	})
}
