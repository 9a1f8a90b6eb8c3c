package dbschema

import (
	"campuskit.io/school-api-gateway/app/domain/student"
	"campuskit.io/school-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Student{})
}

type Student struct {
	BaseModel
	PublicID   string `gorm:"uniqueIndex"`
	TenantID   string `gorm:"index"`
	Name       string
	ClassID    string `gorm:"index"`
	RollNumber int
	IsActive   bool
}

func NewSchemaStudent(s *student.Student) *Student {
	return &Student{
		BaseModel: BaseModel{
			ID: s.ID,
		},
		PublicID:   s.PublicID,
		TenantID:   s.TenantID,
		Name:       s.Name,
		ClassID:    s.ClassID,
		RollNumber: s.RollNumber,
		IsActive:   s.IsActive,
	}
}

func (s *Student) EtoD() *student.Student {
	return &student.Student{
		ID:         s.ID,
		PublicID:   s.PublicID,
		TenantID:   s.TenantID,
		Name:       s.Name,
		ClassID:    s.ClassID,
		RollNumber: s.RollNumber,
		IsActive:   s.IsActive,
	}
}
