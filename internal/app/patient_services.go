package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/google/uuid"
)

// patientService implements the PatientService interface for patient intake
// and lookup
type patientService struct {
	patientRepo patients.PatientRepository
	logger      logger.Logger
}

// NewPatientService creates a new instance of PatientService
func NewPatientService(patientRepo patients.PatientRepository, logger logger.Logger) (patients.PatientService, error) {
	return &patientService{
		patientRepo: patientRepo,
		logger:      logger,
	}, nil
}

// Register creates a patient record. The patient code is left empty so the
// repository assigns the next sequential one inside the insert transaction.
func (s *patientService) Register(ctx context.Context, cmd patients.RegisterPatientCommand) (*patients.Patient, error) {
	now := time.Now()
	patient := &patients.Patient{
		ID:                     uuid.NewString(),
		FirstName:              cmd.FirstName,
		MiddleName:             cmd.MiddleName,
		LastName:               cmd.LastName,
		DateOfBirth:            cmd.DateOfBirth,
		Gender:                 cmd.Gender,
		PhoneNumber:            cmd.PhoneNumber,
		EmailAddress:           cmd.EmailAddress,
		EmergencyContact:       cmd.EmergencyContact,
		EmergencyContactNumber: cmd.EmergencyContactNumber,
		PhysicianName:          cmd.PhysicianName,
		PhysicianEmail:         cmd.PhysicianEmail,
		PhysicianPhone:         cmd.PhysicianPhone,
		PaymentMode:            cmd.PaymentMode,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("Registered patient ", patient.PatientCode)
	return patient, nil
}

// List retrieves patients newest first, honoring the query filters
func (s *patientService) List(ctx context.Context, query *patients.PatientQuery) ([]*patients.Patient, error) {
	if query == nil {
		query = patients.NewPatientQuery()
	}

	records, err := s.patientRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// GetByID retrieves a patient by ID
func (s *patientService) GetByID(ctx context.Context, patientID string) (*patients.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return patient, nil
}
