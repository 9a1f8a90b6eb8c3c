package studentrepo

import (
	"context"

	"gorm.io/gorm"

	"campuskit.io/school-api-gateway/app/domain/query"
	domain "campuskit.io/school-api-gateway/app/domain/student"
	"campuskit.io/school-api-gateway/app/infrastructure/database/dbschema"
)

type StudentGormRepository struct {
	db *gorm.DB
}

func NewStudentGormRepository(db *gorm.DB) domain.StudentRepository {
	return &StudentGormRepository{
		db: db,
	}
}

func (r *StudentGormRepository) Create(ctx context.Context, s *domain.Student) error {
	model := dbschema.NewSchemaStudent(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	s.ID = model.ID
	return nil
}

func (r *StudentGormRepository) Update(ctx context.Context, s *domain.Student) error {
	model := dbschema.NewSchemaStudent(s)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *StudentGormRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&dbschema.Student{}, id).Error
}

func (r *StudentGormRepository) FindByFilter(ctx context.Context, filter domain.StudentsFilter, p *query.Pagination) ([]*domain.Student, error) {
	var models []*dbschema.Student
	if err := r.applyFilter(ctx, filter, p).Order("roll_number ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	students := make([]*domain.Student, 0, len(models))
	for _, model := range models {
		students = append(students, model.EtoD())
	}
	return students, nil
}

func (r *StudentGormRepository) Count(ctx context.Context, filter domain.StudentsFilter) (int64, error) {
	var count int64
	err := r.applyFilter(ctx, filter, nil).Model(&dbschema.Student{}).Count(&count).Error
	return count, err
}

func (r *StudentGormRepository) applyFilter(ctx context.Context, filter domain.StudentsFilter, p *query.Pagination) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.TenantID != nil {
		tx = tx.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.ClassID != nil {
		tx = tx.Where("class_id = ?", *filter.ClassID)
	}
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	if p != nil && p.Limit != nil {
		tx = tx.Limit(*p.Limit)
	}
	return tx
}
