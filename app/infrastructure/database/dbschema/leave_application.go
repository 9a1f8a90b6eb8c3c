package dbschema

import (
	"time"

	"campuskit.io/school-api-gateway/app/domain/leave"
	"campuskit.io/school-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(LeaveApplication{})
}

type LeaveApplication struct {
	BaseModel
	PublicID             string `gorm:"uniqueIndex"`
	TenantID             string `gorm:"index"`
	TeacherID            string `gorm:"index"`
	ReplacementTeacherID string
	StartDate            time.Time `gorm:"type:date"`
	EndDate              time.Time `gorm:"type:date"`
	TotalDays            int
	Reason               string
	Status               string `gorm:"index"`
	AppliedAt            time.Time
}

func NewSchemaLeaveApplication(l *leave.LeaveApplication) *LeaveApplication {
	return &LeaveApplication{
		BaseModel: BaseModel{
			ID: l.ID,
		},
		PublicID:             l.PublicID,
		TenantID:             l.TenantID,
		TeacherID:            l.TeacherID,
		ReplacementTeacherID: l.ReplacementTeacherID,
		StartDate:            l.StartDate,
		EndDate:              l.EndDate,
		TotalDays:            l.TotalDays,
		Reason:               l.Reason,
		Status:               string(l.Status),
		AppliedAt:            l.AppliedAt,
	}
}

func (l *LeaveApplication) EtoD() *leave.LeaveApplication {
	return &leave.LeaveApplication{
		ID:                   l.ID,
		PublicID:             l.PublicID,
		TenantID:             l.TenantID,
		TeacherID:            l.TeacherID,
		ReplacementTeacherID: l.ReplacementTeacherID,
		StartDate:            l.StartDate,
		EndDate:              l.EndDate,
		TotalDays:            l.TotalDays,
		Reason:               l.Reason,
		Status:               leave.LeaveStatus(l.Status),
		AppliedAt:            l.AppliedAt,
	}
}
