package leave

import (
	"context"
	"fmt"
	"time"

	"campuskit.io/school-api-gateway/app/domain/common"
	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/domain/realtime"
	"campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/utils/idgen"
)

// NewLeaveEventHub provides the hub carrying leave-application change
// events to realtime subscribers.
func NewLeaveEventHub() *realtime.Hub[LeaveApplication] {
	return realtime.NewHub[LeaveApplication]()
}

// LeaveService provides business logic for leave applications. Every
// successful write publishes a change event so live subscribers stay
// consistent without re-querying.
type LeaveService struct {
	repo           LeaveRepository
	teacherService *teacher.TeacherService
	hub            *realtime.Hub[LeaveApplication]
}

// NewLeaveService is the constructor for LeaveService.
func NewLeaveService(repo LeaveRepository, teacherService *teacher.TeacherService, hub *realtime.Hub[LeaveApplication]) *LeaveService {
	return &LeaveService{
		repo:           repo,
		teacherService: teacherService,
		hub:            hub,
	}
}

func (s *LeaveService) createPublicID() (string, error) {
	return idgen.GenerateSecureID("leave", 16)
}

// CreateLeave validates and stores a new application, derives its day
// count when absent, and announces the insert.
func (s *LeaveService) CreateLeave(ctx context.Context, app *LeaveApplication) (*LeaveApplication, error) {
	if app.TeacherID == "" {
		return nil, common.NewError("leave.missing_teacher", "leave application requires a teacher id")
	}
	if app.StartDate.IsZero() || app.EndDate.IsZero() {
		return nil, common.NewError("leave.missing_dates", "leave application requires start and end dates")
	}
	if app.EndDate.Before(app.StartDate) {
		return nil, common.NewError("leave.inverted_range", "end date precedes start date")
	}

	publicID, err := s.createPublicID()
	if err != nil {
		return nil, err
	}
	app.PublicID = publicID
	app.Status = LeaveStatusPending
	app.AppliedAt = time.Now()
	if app.TotalDays == 0 {
		app.TotalDays = InclusiveDays(app.StartDate, app.EndDate)
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create leave application: %w", err)
	}

	enriched, err := s.enrichOne(ctx, *app)
	if err == nil {
		*app = enriched
	}
	s.hub.Publish(app.TenantID, Event{EventType: realtime.EventInsert, New: app})
	return app, nil
}

// UpdateLeaveStatus moves an application to approved or rejected and
// announces the update.
func (s *LeaveService) UpdateLeaveStatus(ctx context.Context, tenantID, publicID string, status LeaveStatus, replacementTeacherID string) (*LeaveApplication, error) {
	if status != LeaveStatusApproved && status != LeaveStatusRejected {
		return nil, common.NewError("leave.invalid_status", "status must be approved or rejected")
	}

	app, err := s.findOne(ctx, tenantID, publicID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, common.NewError("leave.not_found", "leave application not found")
	}

	app.Status = status
	if replacementTeacherID != "" {
		app.ReplacementTeacherID = replacementTeacherID
	}
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to update leave application: %w", err)
	}

	enriched, err := s.enrichOne(ctx, *app)
	if err == nil {
		*app = enriched
	}
	s.hub.Publish(app.TenantID, Event{EventType: realtime.EventUpdate, New: app})
	return app, nil
}

// DeleteLeave removes an application and announces the delete.
func (s *LeaveService) DeleteLeave(ctx context.Context, tenantID, publicID string) error {
	app, err := s.findOne(ctx, tenantID, publicID)
	if err != nil {
		return err
	}
	if app == nil {
		return common.NewError("leave.not_found", "leave application not found")
	}

	if err := s.repo.DeleteByID(ctx, app.ID); err != nil {
		return fmt.Errorf("failed to delete leave application: %w", err)
	}
	s.hub.Publish(app.TenantID, Event{EventType: realtime.EventDelete, Old: app})
	return nil
}

// ListLeaves returns a tenant's applications latest-first, with the
// denormalized teacher fields filled from one roster snapshot.
func (s *LeaveService) ListLeaves(ctx context.Context, filter LeavesFilter, pagination *query.Pagination) ([]LeaveApplication, error) {
	apps, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	var tenantID string
	if filter.TenantID != nil {
		tenantID = *filter.TenantID
	}
	roster, err := s.teacherService.RosterCache(ctx, tenantID)
	if err != nil {
		// Enrichment is display-only; the list is still valid.
		roster = nil
	}

	result := make([]LeaveApplication, 0, len(apps))
	for _, app := range apps {
		result = append(result, enrich(*app, roster))
	}
	return result, nil
}

// CountLeaves counts applications matching the filter.
func (s *LeaveService) CountLeaves(ctx context.Context, filter LeavesFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

func (s *LeaveService) findOne(ctx context.Context, tenantID, publicID string) (*LeaveApplication, error) {
	apps, err := s.repo.FindByFilter(ctx, LeavesFilter{
		PublicID: &publicID,
		TenantID: &tenantID,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, nil
	}
	return apps[0], nil
}

func (s *LeaveService) enrichOne(ctx context.Context, app LeaveApplication) (LeaveApplication, error) {
	roster, err := s.teacherService.RosterCache(ctx, app.TenantID)
	if err != nil {
		return app, err
	}
	return enrich(app, roster), nil
}
