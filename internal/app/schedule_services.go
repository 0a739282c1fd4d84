package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/google/uuid"
)

// scheduleService implements the ScheduleService interface for booking
// procedures and browsing the worklist
type scheduleService struct {
	scheduleRepo schedules.ScheduleRepository
	patientRepo  patients.PatientRepository
	logger       logger.Logger
}

// NewScheduleService creates a new instance of ScheduleService
func NewScheduleService(
	scheduleRepo schedules.ScheduleRepository,
	patientRepo patients.PatientRepository,
	logger logger.Logger,
) (schedules.ScheduleService, error) {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		patientRepo:  patientRepo,
		logger:       logger,
	}, nil
}

// Schedule books a procedure for a patient and assigns its study code
func (s *scheduleService) Schedule(ctx context.Context, cmd schedules.ScheduleProcedureCommand) (*schedules.ProcedureSchedule, error) {
	// Step 1: Resolve the patient, the study code is built from their initials
	patient, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// Step 2: Number the study within its initials sequence. Scoping the
	// counter to the code prefix keeps codes unique even when two patients
	// share initials.
	prefix := schedules.StudyCodePrefix(patient.Initials())
	count, err := s.scheduleRepo.CountByStudyCodePrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	now := time.Now()
	schedule := &schedules.ProcedureSchedule{
		ID:                  uuid.NewString(),
		PatientID:           patient.ID,
		StudyCode:           schedules.BuildStudyCode(patient.Initials(), count+1),
		ProcedureType:       cmd.ProcedureType,
		Date:                cmd.Date,
		StartTime:           cmd.StartTime,
		SpecialInstructions: cmd.SpecialInstructions,
		Status:              schedules.StatusScheduled,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// Step 3: Persist the booking
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s.logger.Info("Scheduled ", schedule.ProcedureType, " as ", schedule.StudyCode, " for patient ", patient.PatientCode)
	return schedule, nil
}

// List retrieves schedules ordered by date and start time, honoring the
// query filters
func (s *scheduleService) List(ctx context.Context, query *schedules.ScheduleQuery) ([]*schedules.ProcedureSchedule, error) {
	if query == nil {
		query = &schedules.ScheduleQuery{}
	}

	records, err := s.scheduleRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// GetByID retrieves a schedule by ID
func (s *scheduleService) GetByID(ctx context.Context, scheduleID string) (*schedules.ProcedureSchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return schedule, nil
}

// ListByPatient retrieves all schedules of one patient
func (s *scheduleService) ListByPatient(ctx context.Context, patientID string) ([]*schedules.ProcedureSchedule, error) {
	records, err := s.scheduleRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}
