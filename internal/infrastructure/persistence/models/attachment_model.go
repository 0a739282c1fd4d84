package models

import (
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
)

// AttachmentModel is the GORM database model for study attachments
// (infrastructure concern)
type AttachmentModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	StudyID    string    `gorm:"not null;index;type:uuid"`
	ObjectKey  string    `gorm:"not null;type:varchar(500)"`
	FileName   string    `gorm:"not null;type:varchar(255)"`
	FileType   string    `gorm:"not null;type:varchar(10)"`
	FileSize   int64     `gorm:"not null"`
	UploadedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AttachmentModel) TableName() string {
	return "attachments"
}

// ToDomain converts GORM model to domain entity
func (m *AttachmentModel) ToDomain() *studies.Attachment {
	return &studies.Attachment{
		ID:         m.ID,
		StudyID:    m.StudyID,
		ObjectKey:  m.ObjectKey,
		FileName:   m.FileName,
		FileType:   m.FileType,
		FileSize:   m.FileSize,
		UploadedAt: m.UploadedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AttachmentModel) FromDomain(a *studies.Attachment) {
	m.ID = a.ID
	m.StudyID = a.StudyID
	m.ObjectKey = a.ObjectKey
	m.FileName = a.FileName
	m.FileType = a.FileType
	m.FileSize = a.FileSize
	m.UploadedAt = a.UploadedAt
}
