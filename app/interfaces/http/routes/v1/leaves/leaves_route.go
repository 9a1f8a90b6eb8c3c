package leaves

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"campuskit.io/school-api-gateway/app/domain/leave"
	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/domain/realtime"
	"campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/interfaces/http/middleware"
	"campuskit.io/school-api-gateway/app/interfaces/http/responses"
	"campuskit.io/school-api-gateway/app/utils/debounce"
	"campuskit.io/school-api-gateway/app/utils/functional"
	"campuskit.io/school-api-gateway/app/utils/logger"
	"campuskit.io/school-api-gateway/config/environment_variables"
)

type LeavesRoute struct {
	leaveService   *leave.LeaveService
	teacherService *teacher.TeacherService
	hub            *realtime.Hub[leave.LeaveApplication]
}

func NewLeavesRoute(
	leaveService *leave.LeaveService,
	teacherService *teacher.TeacherService,
	hub *realtime.Hub[leave.LeaveApplication],
) *LeavesRoute {
	return &LeavesRoute{
		leaveService:   leaveService,
		teacherService: teacherService,
		hub:            hub,
	}
}

func (route *LeavesRoute) RegisterRouter(router gin.IRouter) {
	leavesRouter := router.Group("/leaves")
	leavesRouter.GET("", route.ListLeaves)
	leavesRouter.POST("", route.CreateLeave)
	leavesRouter.PATCH("/:public_id/status", route.UpdateLeaveStatus)
	leavesRouter.DELETE("/:public_id", route.DeleteLeave)
	leavesRouter.GET("/stream", route.StreamLeaves)
}

type TeacherRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LeaveResponse struct {
	ID                 string      `json:"id"`
	TeacherID          string      `json:"teacher_id"`
	ReplacementID      string      `json:"replacement_teacher_id,omitempty"`
	StartDate          string      `json:"start_date"`
	EndDate            string      `json:"end_date"`
	TotalDays          int         `json:"total_days"`
	Reason             string      `json:"reason,omitempty"`
	Status             string      `json:"status"`
	AppliedAt          time.Time   `json:"applied_at"`
	Teacher            *TeacherRef `json:"teacher"`
	ReplacementTeacher *TeacherRef `json:"replacement_teacher"`
}

const dateLayout = "2006-01-02"

func toRef(ref *teacher.Ref) *TeacherRef {
	if ref == nil {
		return nil
	}
	return &TeacherRef{ID: ref.ID, Name: ref.Name}
}

func toLeaveResponse(app leave.LeaveApplication) LeaveResponse {
	return LeaveResponse{
		ID:                 app.PublicID,
		TeacherID:          app.TeacherID,
		ReplacementID:      app.ReplacementTeacherID,
		StartDate:          app.StartDate.Format(dateLayout),
		EndDate:            app.EndDate.Format(dateLayout),
		TotalDays:          app.TotalDays,
		Reason:             app.Reason,
		Status:             string(app.Status),
		AppliedAt:          app.AppliedAt,
		Teacher:            toRef(app.Teacher),
		ReplacementTeacher: toRef(app.ReplacementTeacher),
	}
}

func (route *LeavesRoute) ListLeaves(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "ca1f5e83-62d9-4b07-a4f2-8d3b0c69e715",
			Error: err.Error(),
		})
		return
	}

	filter := leave.LeavesFilter{TenantID: &tenantID}
	if status := reqCtx.Query("status"); status != "" {
		leaveStatus := leave.LeaveStatus(status)
		filter.Status = &leaveStatus
	}

	apps, err := route.leaveService.ListLeaves(ctx, filter, pagination)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "91d7b3f0-84ce-4a26-b5e1-f62a0d8c4937",
			Error: "failed to list leave applications",
		})
		return
	}
	total, err := route.leaveService.CountLeaves(ctx, filter)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "58e2c9a4-07bf-4d61-93c8-b1f6e3d72508",
			Error: "failed to count leave applications",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.ListResponse[LeaveResponse]{
		Status:  "ok",
		Total:   total,
		Results: functional.Map(apps, toLeaveResponse),
	})
}

type CreateLeaveRequest struct {
	TeacherID            string `json:"teacher_id" binding:"required"`
	ReplacementTeacherID string `json:"replacement_teacher_id"`
	StartDate            string `json:"start_date" binding:"required"`
	EndDate              string `json:"end_date" binding:"required"`
	Reason               string `json:"reason"`
}

func (route *LeavesRoute) CreateLeave(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	var request CreateLeaveRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "0b6d9f21-e483-45c7-8a50-d2c7f1b8e694",
			Error: err.Error(),
		})
		return
	}

	startDate, err := time.Parse(dateLayout, request.StartDate)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "47a3c8e1-95bd-4f20-86de-1b9c5f0a2d73",
			Error: "invalid start_date",
		})
		return
	}
	endDate, err := time.Parse(dateLayout, request.EndDate)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "b5f0d7c2-38a6-4e19-92cb-6e4d8a1f3057",
			Error: "invalid end_date",
		})
		return
	}

	created, err := route.leaveService.CreateLeave(ctx, &leave.LeaveApplication{
		TenantID:             tenantID,
		TeacherID:            request.TeacherID,
		ReplacementTeacherID: request.ReplacementTeacherID,
		StartDate:            startDate,
		EndDate:              endDate,
		Reason:               request.Reason,
	})
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d9c4a5e7-10fb-4862-b3d0-5f8e2c7a9164",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusCreated, responses.GeneralResponse[LeaveResponse]{
		Status: "ok",
		Result: toLeaveResponse(*created),
	})
}

type UpdateLeaveStatusRequest struct {
	Status               string `json:"status" binding:"required,oneof=approved rejected"`
	ReplacementTeacherID string `json:"replacement_teacher_id"`
}

func (route *LeavesRoute) UpdateLeaveStatus(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)
	publicID := reqCtx.Param("public_id")

	var request UpdateLeaveStatusRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "e7b2f4d8-63a0-4c95-81fe-9d5c3b6a0247",
			Error: err.Error(),
		})
		return
	}

	updated, err := route.leaveService.UpdateLeaveStatus(ctx, tenantID, publicID, leave.LeaveStatus(request.Status), request.ReplacementTeacherID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "2a8e6c40-f7d1-4b39-a562-0c9b4e8d7135",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[LeaveResponse]{
		Status: "ok",
		Result: toLeaveResponse(*updated),
	})
}

func (route *LeavesRoute) DeleteLeave(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)
	publicID := reqCtx.Param("public_id")

	if err := route.leaveService.DeleteLeave(ctx, tenantID, publicID); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "63c5d0b9-e2a8-4f71-95c4-7b1f8d3e6029",
			Error: err.Error(),
		})
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[string]{
		Status: "ok",
		Result: publicID,
	})
}

// StreamLeaves is the live feed behind the admin leave screen. The
// handler holds the reconciled list for the connection: each change
// event from the hub is merged in by the reconciler and a fresh
// snapshot is pushed over SSE. A debounced dispatcher collapses event
// bursts (e.g. a bulk approval) into a single snapshot, bounding
// re-renders on the client.
func (route *LeavesRoute) StreamLeaves(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	tenantID := middleware.TenantFromContext(reqCtx)

	roster, err := route.teacherService.RosterCache(ctx, tenantID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "75f8a2d6-b013-4e94-8c67-2e0d9b5f1c48",
			Error: "failed to load teacher roster",
		})
		return
	}

	apps, err := route.leaveService.ListLeaves(ctx, leave.LeavesFilter{TenantID: &tenantID}, nil)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "8d1c6e39-54f7-4a02-b9e8-c3a5f7d20616",
			Error: "failed to load leave applications",
		})
		return
	}

	events, cancelSub := route.hub.Subscribe(tenantID)
	defer cancelSub()

	reqCtx.Header("Content-Type", "text/event-stream")
	reqCtx.Header("Cache-Control", "no-cache")
	reqCtx.Header("Connection", "keep-alive")

	emit := func(snapshot []leave.LeaveApplication) {
		payload, err := json.Marshal(functional.Map(snapshot, toLeaveResponse))
		if err != nil {
			logger.GetLogger().Errorf("leave stream: failed to marshal snapshot: %v", err)
			return
		}
		fmt.Fprintf(reqCtx.Writer, "event: snapshot\ndata: %s\n\n", payload)
		reqCtx.Writer.Flush()
	}

	// The debounced function fires on a timer goroutine, so the list
	// and the response writer are guarded by one mutex.
	var mu sync.Mutex
	current := apps
	delay := time.Duration(environment_variables.EnvironmentVariables.REALTIME_DEBOUNCE_MS) * time.Millisecond
	processor := debounce.New(func(ev leave.Event) {
		mu.Lock()
		defer mu.Unlock()
		current = leave.Reconcile(current, ev, roster)
		emit(current)
	}, delay)
	defer processor.Cancel()

	mu.Lock()
	emit(current)
	mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			processor.Call(ev)
		}
	}
}
