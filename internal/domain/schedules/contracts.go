package schedules

import (
	"context"
	"time"
)

// ScheduleQuery carries optional filters for listing schedules.
type ScheduleQuery struct {
	Status    string
	PatientID string
	Date      *time.Time
}

// ScheduleProcedureCommand carries the fields for booking a procedure.
type ScheduleProcedureCommand struct {
	PatientID           string
	ProcedureType       string
	Date                time.Time
	StartTime           string
	SpecialInstructions string
}

// ScheduleService defines procedure scheduling operations.
type ScheduleService interface {
	// Schedule books a procedure for a patient and assigns its study code.
	Schedule(ctx context.Context, cmd ScheduleProcedureCommand) (*ProcedureSchedule, error)

	// List retrieves schedules ordered by date and start time, honoring the
	// query filters. Filtering on StatusUploaded yields the read worklist.
	List(ctx context.Context, query *ScheduleQuery) ([]*ProcedureSchedule, error)

	// GetByID retrieves a schedule by ID.
	GetByID(ctx context.Context, scheduleID string) (*ProcedureSchedule, error)

	// ListByPatient retrieves all schedules of one patient.
	ListByPatient(ctx context.Context, patientID string) ([]*ProcedureSchedule, error)
}

// ScheduleRepository defines the interface for schedule persistence
type ScheduleRepository interface {
	// Create adds a new ProcedureSchedule to the database
	Create(ctx context.Context, schedule *ProcedureSchedule) error
	// GetByID retrieves a ProcedureSchedule from the database by ID
	GetByID(ctx context.Context, scheduleID string) (*ProcedureSchedule, error)
	// List lists ProcedureSchedules with optional filters
	List(ctx context.Context, query *ScheduleQuery) ([]*ProcedureSchedule, error)
	// ListByPatient lists all ProcedureSchedules of one patient
	ListByPatient(ctx context.Context, patientID string) ([]*ProcedureSchedule, error)
	// ListByDate lists ProcedureSchedules falling on the given day
	ListByDate(ctx context.Context, date time.Time) ([]*ProcedureSchedule, error)
	// CountByStudyCodePrefix returns how many schedules carry a study code
	// with the given initials prefix
	CountByStudyCodePrefix(ctx context.Context, prefix string) (int64, error)
	// CountByStatuses returns how many schedules carry one of the statuses
	CountByStatuses(ctx context.Context, statuses []string) (int64, error)
	// UpdateStatus sets the status of a schedule
	UpdateStatus(ctx context.Context, scheduleID string, status string) error
}
