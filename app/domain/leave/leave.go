package leave

import (
	"context"
	"time"

	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/domain/realtime"
	"campuskit.io/school-api-gateway/app/domain/teacher"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveApplication is a teacher's request for leave over an inclusive
// date range. Teacher and ReplacementTeacher are denormalized from the
// roster for display and never persisted.
type LeaveApplication struct {
	ID                   uint
	PublicID             string
	TenantID             string
	TeacherID            string
	ReplacementTeacherID string
	StartDate            time.Time
	EndDate              time.Time
	TotalDays            int
	Reason               string
	Status               LeaveStatus
	AppliedAt            time.Time

	Teacher            *teacher.Ref
	ReplacementTeacher *teacher.Ref
}

// Event is a row-level change to a leave application.
type Event = realtime.ChangeEvent[LeaveApplication]

type LeavesFilter struct {
	PublicID  *string
	TenantID  *string
	TeacherID *string
	Status    *LeaveStatus
}

type LeaveRepository interface {
	Create(ctx context.Context, l *LeaveApplication) error
	Update(ctx context.Context, l *LeaveApplication) error
	DeleteByID(ctx context.Context, id uint) error
	FindByFilter(ctx context.Context, filter LeavesFilter, p *query.Pagination) ([]*LeaveApplication, error)
	Count(ctx context.Context, filter LeavesFilter) (int64, error)
}
