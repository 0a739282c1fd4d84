package patients

import (
	"context"
	"time"
)

// PatientQuery carries optional filters for listing patients.
type PatientQuery struct {
	Name   string
	Limit  int
	Offset int
}

// NewPatientQuery returns a query with default pagination.
func NewPatientQuery() *PatientQuery {
	return &PatientQuery{
		Limit:  50,
		Offset: 0,
	}
}

// RegisterPatientCommand carries the fields for patient intake. The patient
// code is generated, never supplied.
type RegisterPatientCommand struct {
	FirstName              string
	MiddleName             string
	LastName               string
	DateOfBirth            time.Time
	Gender                 string
	PhoneNumber            string
	EmailAddress           string
	EmergencyContact       string
	EmergencyContactNumber string
	PhysicianName          string
	PhysicianEmail         string
	PhysicianPhone         string
	PaymentMode            string
}

// PatientService defines patient registry operations.
type PatientService interface {
	// Register creates a patient with the next sequential patient code.
	Register(ctx context.Context, cmd RegisterPatientCommand) (*Patient, error)

	// List retrieves patients newest first, honoring the query filters.
	List(ctx context.Context, query *PatientQuery) ([]*Patient, error)

	// GetByID retrieves a patient by ID.
	GetByID(ctx context.Context, patientID string) (*Patient, error)
}

// PatientRepository defines the interface for patient persistence
type PatientRepository interface {
	// Create adds a new Patient to the database. When the patient code is
	// empty the next sequential code is assigned inside the same
	// transaction as the insert.
	Create(ctx context.Context, patient *Patient) error
	// List lists Patients newest first with optional filter
	List(ctx context.Context, query *PatientQuery) ([]*Patient, error)
	// GetByID retrieves a Patient from the database by ID
	GetByID(ctx context.Context, patientID string) (*Patient, error)
	// GetByCode retrieves a Patient from the database by patient code
	GetByCode(ctx context.Context, code string) (*Patient, error)
	// Count returns the total number of patients
	Count(ctx context.Context) (int64, error)
}
