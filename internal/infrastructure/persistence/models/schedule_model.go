package models

import (
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/schedules"
)

// ScheduleModel is the GORM database model for procedure schedules
// (infrastructure concern)
type ScheduleModel struct {
	ID                  string    `gorm:"primaryKey;type:uuid"`
	PatientID           string    `gorm:"not null;index;type:uuid"`
	StudyCode           string    `gorm:"not null;uniqueIndex;type:varchar(20)"`
	ProcedureType       string    `gorm:"not null;type:varchar(20)"`
	Date                time.Time `gorm:"not null;index"`
	StartTime           string    `gorm:"not null;type:varchar(5)"`
	SpecialInstructions string    `gorm:"type:varchar(500)"`
	Status              string    `gorm:"not null;type:varchar(20);index"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (ScheduleModel) TableName() string {
	return "procedure_schedules"
}

// ToDomain converts GORM model to domain entity
func (m *ScheduleModel) ToDomain() *schedules.ProcedureSchedule {
	return &schedules.ProcedureSchedule{
		ID:                  m.ID,
		PatientID:           m.PatientID,
		StudyCode:           m.StudyCode,
		ProcedureType:       m.ProcedureType,
		Date:                m.Date,
		StartTime:           m.StartTime,
		SpecialInstructions: m.SpecialInstructions,
		Status:              m.Status,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ScheduleModel) FromDomain(s *schedules.ProcedureSchedule) {
	m.ID = s.ID
	m.PatientID = s.PatientID
	m.StudyCode = s.StudyCode
	m.ProcedureType = s.ProcedureType
	m.Date = s.Date
	m.StartTime = s.StartTime
	m.SpecialInstructions = s.SpecialInstructions
	m.Status = s.Status
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}
