package teacherrepo

import (
	"context"

	"gorm.io/gorm"

	"campuskit.io/school-api-gateway/app/domain/query"
	domain "campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/infrastructure/database/dbschema"
)

type TeacherGormRepository struct {
	db *gorm.DB
}

func NewTeacherGormRepository(db *gorm.DB) domain.TeacherRepository {
	return &TeacherGormRepository{
		db: db,
	}
}

func (r *TeacherGormRepository) Create(ctx context.Context, t *domain.Teacher) error {
	model := dbschema.NewSchemaTeacher(t)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	t.ID = model.ID
	return nil
}

func (r *TeacherGormRepository) Update(ctx context.Context, t *domain.Teacher) error {
	model := dbschema.NewSchemaTeacher(t)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *TeacherGormRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&dbschema.Teacher{}, id).Error
}

func (r *TeacherGormRepository) FindByFilter(ctx context.Context, filter domain.TeachersFilter, p *query.Pagination) ([]*domain.Teacher, error) {
	var models []*dbschema.Teacher
	if err := r.applyFilter(ctx, filter, p).Find(&models).Error; err != nil {
		return nil, err
	}

	teachers := make([]*domain.Teacher, 0, len(models))
	for _, model := range models {
		teachers = append(teachers, model.EtoD())
	}
	return teachers, nil
}

func (r *TeacherGormRepository) Count(ctx context.Context, filter domain.TeachersFilter) (int64, error) {
	var count int64
	err := r.applyFilter(ctx, filter, nil).Model(&dbschema.Teacher{}).Count(&count).Error
	return count, err
}

func (r *TeacherGormRepository) applyFilter(ctx context.Context, filter domain.TeachersFilter, p *query.Pagination) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.TenantID != nil {
		tx = tx.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	if p != nil {
		if p.Limit != nil {
			tx = tx.Limit(*p.Limit)
		}
		if p.Order == "desc" {
			tx = tx.Order("id DESC")
		} else {
			tx = tx.Order("id ASC")
		}
		if p.After != nil {
			tx = tx.Where("id > ?", *p.After)
		}
	}
	return tx
}
