package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/domain/worklist"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"
)

// worklistService implements the worklist Service interface for the dashboard
type worklistService struct {
	patientRepo  patients.PatientRepository
	scheduleRepo schedules.ScheduleRepository
	studyRepo    studies.StudyRepository
	logger       logger.Logger
}

// NewWorklistService creates a new instance of the worklist Service
func NewWorklistService(
	patientRepo patients.PatientRepository,
	scheduleRepo schedules.ScheduleRepository,
	studyRepo studies.StudyRepository,
	logger logger.Logger,
) (worklist.Service, error) {
	return &worklistService{
		patientRepo:  patientRepo,
		scheduleRepo: scheduleRepo,
		studyRepo:    studyRepo,
		logger:       logger,
	}, nil
}

// Summary counts patients, transferred studies, urgent reads and pending
// reads, and lists the schedules of the given day
func (s *worklistService) Summary(ctx context.Context, day time.Time) (*worklist.Summary, error) {
	patientsCount, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// Transferred studies are counted per schedule, not per DICOM file
	studiesCount, err := s.scheduleRepo.CountByStatuses(ctx, []string{schedules.StatusUploaded, schedules.StatusFinalized})
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	urgentCount, err := s.studyRepo.CountUrgentUploaded(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	pendingCount, err := s.scheduleRepo.CountByStatuses(ctx, []string{schedules.StatusUploaded})
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	todays, err := s.scheduleRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &worklist.Summary{
		PatientsCount:      patientsCount,
		StudiesCount:       studiesCount,
		UrgentStudiesCount: urgentCount,
		PendingReadsCount:  pendingCount,
		TodaysSchedules:    todays,
	}, nil
}
