package models

import (
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
)

// PatientModel is the GORM database model for patients (infrastructure concern)
type PatientModel struct {
	ID                     string    `gorm:"primaryKey;type:uuid"`
	PatientCode            string    `gorm:"not null;uniqueIndex;type:varchar(20)"`
	FirstName              string    `gorm:"not null;type:varchar(100)"`
	MiddleName             string    `gorm:"type:varchar(100)"`
	LastName               string    `gorm:"not null;type:varchar(100)"`
	DateOfBirth            time.Time `gorm:"not null"`
	Gender                 string    `gorm:"not null;type:varchar(1)"`
	PhoneNumber            string    `gorm:"not null;type:varchar(20)"`
	EmailAddress           string    `gorm:"type:varchar(254)"`
	EmergencyContact       string    `gorm:"type:varchar(100)"`
	EmergencyContactNumber string    `gorm:"type:varchar(20)"`
	PhysicianName          string    `gorm:"not null;type:varchar(100)"`
	PhysicianEmail         string    `gorm:"type:varchar(254)"`
	PhysicianPhone         string    `gorm:"type:varchar(20)"`
	PaymentMode            string    `gorm:"not null;type:varchar(20)"`
	CreatedAt              time.Time `gorm:"not null;index"`
	UpdatedAt              time.Time
}

// TableName specifies the table name for GORM
func (PatientModel) TableName() string {
	return "patients"
}

// ToDomain converts GORM model to domain entity
func (m *PatientModel) ToDomain() *patients.Patient {
	return &patients.Patient{
		ID:                     m.ID,
		PatientCode:            m.PatientCode,
		FirstName:              m.FirstName,
		MiddleName:             m.MiddleName,
		LastName:               m.LastName,
		DateOfBirth:            m.DateOfBirth,
		Gender:                 m.Gender,
		PhoneNumber:            m.PhoneNumber,
		EmailAddress:           m.EmailAddress,
		EmergencyContact:       m.EmergencyContact,
		EmergencyContactNumber: m.EmergencyContactNumber,
		PhysicianName:          m.PhysicianName,
		PhysicianEmail:         m.PhysicianEmail,
		PhysicianPhone:         m.PhysicianPhone,
		PaymentMode:            m.PaymentMode,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PatientModel) FromDomain(p *patients.Patient) {
	m.ID = p.ID
	m.PatientCode = p.PatientCode
	m.FirstName = p.FirstName
	m.MiddleName = p.MiddleName
	m.LastName = p.LastName
	m.DateOfBirth = p.DateOfBirth
	m.Gender = p.Gender
	m.PhoneNumber = p.PhoneNumber
	m.EmailAddress = p.EmailAddress
	m.EmergencyContact = p.EmergencyContact
	m.EmergencyContactNumber = p.EmergencyContactNumber
	m.PhysicianName = p.PhysicianName
	m.PhysicianEmail = p.PhysicianEmail
	m.PhysicianPhone = p.PhysicianPhone
	m.PaymentMode = p.PaymentMode
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
