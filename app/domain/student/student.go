package student

import (
	"context"

	"campuskit.io/school-api-gateway/app/domain/query"
)

type Student struct {
	ID         uint
	PublicID   string
	TenantID   string
	Name       string
	ClassID    string
	RollNumber int
	IsActive   bool
}

type StudentsFilter struct {
	PublicID *string
	TenantID *string
	ClassID  *string
	IsActive *bool
}

type StudentRepository interface {
	Create(ctx context.Context, s *Student) error
	Update(ctx context.Context, s *Student) error
	DeleteByID(ctx context.Context, id uint) error
	FindByFilter(ctx context.Context, filter StudentsFilter, p *query.Pagination) ([]*Student, error)
	Count(ctx context.Context, filter StudentsFilter) (int64, error)
}
