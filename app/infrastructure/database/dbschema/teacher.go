package dbschema

import (
	"campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Teacher{})
}

type Teacher struct {
	BaseModel
	PublicID string `gorm:"uniqueIndex"`
	TenantID string `gorm:"index"`
	Name     string
	Email    string
	Phone    string
	Subject  string
	IsActive bool
}

func NewSchemaTeacher(t *teacher.Teacher) *Teacher {
	return &Teacher{
		BaseModel: BaseModel{
			ID: t.ID,
		},
		PublicID: t.PublicID,
		TenantID: t.TenantID,
		Name:     t.Name,
		Email:    t.Email,
		Phone:    t.Phone,
		Subject:  t.Subject,
		IsActive: t.IsActive,
	}
}

func (t *Teacher) EtoD() *teacher.Teacher {
	return &teacher.Teacher{
		ID:       t.ID,
		PublicID: t.PublicID,
		TenantID: t.TenantID,
		Name:     t.Name,
		Email:    t.Email,
		Phone:    t.Phone,
		Subject:  t.Subject,
		IsActive: t.IsActive,
	}
}
