package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
)

// StudyModel is the GORM database model for studies (infrastructure concern).
// Header metadata is stored as a serialized JSON object.
type StudyModel struct {
	ID                string    `gorm:"primaryKey;type:uuid"`
	PatientID         string    `gorm:"not null;index;type:uuid"`
	ScheduleID        string    `gorm:"not null;index;type:uuid"`
	ObjectKey         string    `gorm:"not null;type:varchar(500)"`
	FileName          string    `gorm:"not null;type:varchar(255)"`
	FileSize          int64     `gorm:"not null"`
	ExamPriority      string    `gorm:"not null;type:varchar(10);index"`
	ClinicalHistory   string    `gorm:"type:text"`
	UploadTime        time.Time `gorm:"not null;index"`
	MetadataExtracted bool      `gorm:"not null;default:false"`
	Metadata          string    `gorm:"type:text"`
	ReviewedBy        string    `gorm:"type:varchar(150)"`
	ReviewedAt        *time.Time
}

// TableName specifies the table name for GORM
func (StudyModel) TableName() string {
	return "studies"
}

// ToDomain converts GORM model to domain entity
func (m *StudyModel) ToDomain() (*studies.Study, error) {
	var metadata map[string]string
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode study metadata: %w", err)
		}
	}

	return &studies.Study{
		ID:                m.ID,
		PatientID:         m.PatientID,
		ScheduleID:        m.ScheduleID,
		ObjectKey:         m.ObjectKey,
		FileName:          m.FileName,
		FileSize:          m.FileSize,
		ExamPriority:      m.ExamPriority,
		ClinicalHistory:   m.ClinicalHistory,
		UploadTime:        m.UploadTime,
		MetadataExtracted: m.MetadataExtracted,
		Metadata:          metadata,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *StudyModel) FromDomain(s *studies.Study) error {
	metadata := ""
	if len(s.Metadata) > 0 {
		encoded, err := json.Marshal(s.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode study metadata: %w", err)
		}
		metadata = string(encoded)
	}

	m.ID = s.ID
	m.PatientID = s.PatientID
	m.ScheduleID = s.ScheduleID
	m.ObjectKey = s.ObjectKey
	m.FileName = s.FileName
	m.FileSize = s.FileSize
	m.ExamPriority = s.ExamPriority
	m.ClinicalHistory = s.ClinicalHistory
	m.UploadTime = s.UploadTime
	m.MetadataExtracted = s.MetadataExtracted
	m.Metadata = metadata
	m.ReviewedBy = s.ReviewedBy
	m.ReviewedAt = s.ReviewedAt

	return nil
}
