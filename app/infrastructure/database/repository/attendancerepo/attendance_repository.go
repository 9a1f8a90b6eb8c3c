package attendancerepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "campuskit.io/school-api-gateway/app/domain/attendance"
	"campuskit.io/school-api-gateway/app/infrastructure/database/dbschema"
)

type StudentAttendanceGormRepository struct {
	db *gorm.DB
}

func NewStudentAttendanceGormRepository(db *gorm.DB) domain.StudentAttendanceRepository {
	return &StudentAttendanceGormRepository{
		db: db,
	}
}

func (r *StudentAttendanceGormRepository) Upsert(ctx context.Context, rows []*domain.StudentAttendance) error {
	models := make([]*dbschema.StudentAttendance, 0, len(rows))
	for _, row := range rows {
		models = append(models, dbschema.NewSchemaStudentAttendance(row))
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "student_id"}, {Name: "class_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
	}).Create(&models).Error
	if err != nil {
		return err
	}

	for i, model := range models {
		rows[i].ID = model.ID
	}
	return nil
}

func (r *StudentAttendanceGormRepository) FindByClassAndDate(ctx context.Context, tenantID, classID string, date time.Time) ([]*domain.StudentAttendance, error) {
	var models []*dbschema.StudentAttendance
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND class_id = ? AND date = ?", tenantID, classID, date.Format(domain.DateLayout)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toStudentRows(models), nil
}

func (r *StudentAttendanceGormRepository) FindByStudentAndRange(ctx context.Context, tenantID, studentID string, from, to time.Time) ([]*domain.StudentAttendance, error) {
	var models []*dbschema.StudentAttendance
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND student_id = ? AND date BETWEEN ? AND ?",
			tenantID, studentID, from.Format(domain.DateLayout), to.Format(domain.DateLayout)).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toStudentRows(models), nil
}

func toStudentRows(models []*dbschema.StudentAttendance) []*domain.StudentAttendance {
	rows := make([]*domain.StudentAttendance, 0, len(models))
	for _, model := range models {
		rows = append(rows, model.EtoD())
	}
	return rows
}

type TeacherAttendanceGormRepository struct {
	db *gorm.DB
}

func NewTeacherAttendanceGormRepository(db *gorm.DB) domain.TeacherAttendanceRepository {
	return &TeacherAttendanceGormRepository{
		db: db,
	}
}

func (r *TeacherAttendanceGormRepository) Upsert(ctx context.Context, rows []*domain.TeacherAttendance) error {
	models := make([]*dbschema.TeacherAttendance, 0, len(rows))
	for _, row := range rows {
		models = append(models, dbschema.NewSchemaTeacherAttendance(row))
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "teacher_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
	}).Create(&models).Error
	if err != nil {
		return err
	}

	for i, model := range models {
		rows[i].ID = model.ID
	}
	return nil
}

func (r *TeacherAttendanceGormRepository) FindByDate(ctx context.Context, tenantID string, date time.Time) ([]*domain.TeacherAttendance, error) {
	var models []*dbschema.TeacherAttendance
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date = ?", tenantID, date.Format(domain.DateLayout)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.TeacherAttendance, 0, len(models))
	for _, model := range models {
		rows = append(rows, model.EtoD())
	}
	return rows, nil
}
