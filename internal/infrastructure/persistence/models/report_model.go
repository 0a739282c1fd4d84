package models

import (
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
)

// ReportModel is the GORM database model for radiology reports
// (infrastructure concern)
type ReportModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	PatientID   string    `gorm:"not null;index;type:uuid"`
	ScheduleID  string    `gorm:"not null;uniqueIndex;type:uuid"`
	Findings    string    `gorm:"not null;type:text"`
	Impression  string    `gorm:"not null;type:text"`
	PdfKey      string    `gorm:"type:varchar(500)"`
	CreatedByID *string   `gorm:"type:uuid"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ReportModel) TableName() string {
	return "reports"
}

// ToDomain converts GORM model to domain entity
func (m *ReportModel) ToDomain() *reports.Report {
	return &reports.Report{
		ID:          m.ID,
		PatientID:   m.PatientID,
		ScheduleID:  m.ScheduleID,
		Findings:    m.Findings,
		Impression:  m.Impression,
		PdfKey:      m.PdfKey,
		CreatedByID: m.CreatedByID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ReportModel) FromDomain(r *reports.Report) {
	m.ID = r.ID
	m.PatientID = r.PatientID
	m.ScheduleID = r.ScheduleID
	m.Findings = r.Findings
	m.Impression = r.Impression
	m.PdfKey = r.PdfKey
	m.CreatedByID = r.CreatedByID
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}
