package teacher

import (
	"context"

	"campuskit.io/school-api-gateway/app/domain/query"
)

type Teacher struct {
	ID       uint
	PublicID string
	TenantID string
	Name     string
	Email    string
	Phone    string
	Subject  string
	IsActive bool
}

type TeachersFilter struct {
	PublicID *string
	TenantID *string
	IsActive *bool
}

type TeacherRepository interface {
	Create(ctx context.Context, t *Teacher) error
	Update(ctx context.Context, t *Teacher) error
	DeleteByID(ctx context.Context, id uint) error
	FindByFilter(ctx context.Context, filter TeachersFilter, p *query.Pagination) ([]*Teacher, error)
	Count(ctx context.Context, filter TeachersFilter) (int64, error)
}
