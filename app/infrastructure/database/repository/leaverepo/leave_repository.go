package leaverepo

import (
	"context"

	"gorm.io/gorm"

	domain "campuskit.io/school-api-gateway/app/domain/leave"
	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/infrastructure/database/dbschema"
)

type LeaveGormRepository struct {
	db *gorm.DB
}

func NewLeaveGormRepository(db *gorm.DB) domain.LeaveRepository {
	return &LeaveGormRepository{
		db: db,
	}
}

func (r *LeaveGormRepository) Create(ctx context.Context, l *domain.LeaveApplication) error {
	model := dbschema.NewSchemaLeaveApplication(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	l.ID = model.ID
	return nil
}

func (r *LeaveGormRepository) Update(ctx context.Context, l *domain.LeaveApplication) error {
	model := dbschema.NewSchemaLeaveApplication(l)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *LeaveGormRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&dbschema.LeaveApplication{}, id).Error
}

func (r *LeaveGormRepository) FindByFilter(ctx context.Context, filter domain.LeavesFilter, p *query.Pagination) ([]*domain.LeaveApplication, error) {
	var models []*dbschema.LeaveApplication
	if err := r.applyFilter(ctx, filter, p).Find(&models).Error; err != nil {
		return nil, err
	}

	apps := make([]*domain.LeaveApplication, 0, len(models))
	for _, model := range models {
		apps = append(apps, model.EtoD())
	}
	return apps, nil
}

func (r *LeaveGormRepository) Count(ctx context.Context, filter domain.LeavesFilter) (int64, error) {
	var count int64
	err := r.applyFilter(ctx, filter, nil).Model(&dbschema.LeaveApplication{}).Count(&count).Error
	return count, err
}

func (r *LeaveGormRepository) applyFilter(ctx context.Context, filter domain.LeavesFilter, p *query.Pagination) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.TenantID != nil {
		tx = tx.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.TeacherID != nil {
		tx = tx.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", string(*filter.Status))
	}
	if p != nil {
		if p.Limit != nil {
			tx = tx.Limit(*p.Limit)
		}
		if p.Order == "asc" {
			tx = tx.Order("applied_at ASC")
		} else {
			// Latest-first is the display invariant for leave lists.
			tx = tx.Order("applied_at DESC")
		}
	} else {
		tx = tx.Order("applied_at DESC")
	}
	return tx
}
