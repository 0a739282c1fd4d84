package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"
	"github.com/jtsigarra/xferdx/internal/pkg/strutil"

	"github.com/google/uuid"
)

// notifyTimeout bounds the background physician notification after sign-off.
const notifyTimeout = 30 * time.Second

// reportingService implements the ReportingService interface for radiologist
// sign-off and report retrieval
type reportingService struct {
	reportRepo   reports.ReportRepository
	scheduleRepo schedules.ScheduleRepository
	patientRepo  patients.PatientRepository
	connector    studies.StorageConnector
	renderer     reports.ReportRenderer
	notifier     reports.Notifier
	logger       logger.Logger
}

// NewReportingService creates a new instance of ReportingService
func NewReportingService(
	reportRepo reports.ReportRepository,
	scheduleRepo schedules.ScheduleRepository,
	patientRepo patients.PatientRepository,
	connector studies.StorageConnector,
	renderer reports.ReportRenderer,
	notifier reports.Notifier,
	logger logger.Logger,
) (reports.ReportingService, error) {
	return &reportingService{
		reportRepo:   reportRepo,
		scheduleRepo: scheduleRepo,
		patientRepo:  patientRepo,
		connector:    connector,
		renderer:     renderer,
		notifier:     notifier,
		logger:       logger,
	}, nil
}

// SignOff upserts the schedule's report, finalizes the schedule, renders and
// stores the PDF and notifies the referring physician in the background
func (s *reportingService) SignOff(ctx context.Context, cmd reports.SignOffCommand) (*reports.SignedReport, error) {
	// Step 1: Flatten the editor markup, a report of empty prose is rejected
	findings := strutil.CleanEditorInput(cmd.Findings)
	impression := strutil.CleanEditorInput(cmd.Impression)
	if findings == "" || impression == "" {
		return nil, reports.ErrEmptyReport
	}

	// Step 2: The schedule must have images before it can be reported on.
	// Finalized schedules stay reportable so corrections can be re-signed.
	schedule, err := s.scheduleRepo.GetByID(ctx, cmd.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if schedule.Status != schedules.StatusUploaded && schedule.Status != schedules.StatusFinalized {
		return nil, fmt.Errorf("schedule %s is %s: %w", schedule.StudyCode, schedule.Status, reports.ErrScheduleNotReady)
	}

	patient, err := s.patientRepo.GetByID(ctx, schedule.PatientID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// Step 3: Upsert the report, one report exists per schedule
	report, err := s.upsertReport(ctx, schedule, patient, cmd, findings, impression)
	if err != nil {
		return nil, err
	}

	// Step 4: Finalize the schedule
	if schedule.Status != schedules.StatusFinalized {
		if err := s.scheduleRepo.UpdateStatus(ctx, schedule.ID, schedules.StatusFinalized); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// Step 5: Render the PDF document and store it next to the studies
	doc := &reports.Document{
		PatientCode:     patient.PatientCode,
		PatientName:     patient.FullName(),
		PatientAge:      patient.Age(time.Now()),
		Gender:          patient.Gender,
		DateOfBirth:     patient.DateOfBirth,
		StudyCode:       schedule.StudyCode,
		ProcedureType:   schedule.ProcedureType,
		ProcedureDate:   schedule.Date,
		ClinicalHistory: schedule.SpecialInstructions,
		Findings:        findings,
		Impression:      impression,
		RadiologistName: cmd.AuthorName,
		SignedAt:        report.UpdatedAt,
	}

	pdf, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render report %s: %w", report.ID, err)
	}

	pdfKey := reports.PdfObjectKey(schedule.ID, patient.PatientCode)
	if err := s.connector.Upload(ctx, pdfKey, pdf); err != nil {
		return nil, fmt.Errorf("failed to store report document: %w", err)
	}

	if report.PdfKey != pdfKey {
		report.PdfKey = pdfKey
		if err := s.reportRepo.UpdateByID(ctx, report); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// Step 6: Tell the referring physician off the request path
	go s.notifyPhysician(patient, schedule, report.UpdatedAt)

	s.logger.Info("Report for ", schedule.StudyCode, " signed off by ", cmd.AuthorName)
	return &reports.SignedReport{Report: report, Pdf: pdf}, nil
}

// upsertReport replaces the findings and impression of the schedule's report
// or creates the report when none exists yet
func (s *reportingService) upsertReport(
	ctx context.Context,
	schedule *schedules.ProcedureSchedule,
	patient *patients.Patient,
	cmd reports.SignOffCommand,
	findings, impression string,
) (*reports.Report, error) {
	now := time.Now()

	var authorID *string
	if cmd.AuthorID != "" {
		authorID = &cmd.AuthorID
	}

	report, err := s.reportRepo.GetBySchedule(ctx, schedule.ID)
	switch {
	case err == nil:
		report.Findings = findings
		report.Impression = impression
		report.CreatedByID = authorID
		report.UpdatedAt = now
		if err := s.reportRepo.UpdateByID(ctx, report); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		return report, nil
	case errors.Is(err, reports.ErrReportNotFound):
		report = &reports.Report{
			ID:          uuid.NewString(),
			PatientID:   patient.ID,
			ScheduleID:  schedule.ID,
			Findings:    findings,
			Impression:  impression,
			CreatedByID: authorID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.reportRepo.Create(ctx, report); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		return report, nil
	default:
		return nil, fmt.Errorf("%w", err)
	}
}

// notifyPhysician sends the report-ready notice with its own deadline so a
// slow mail provider cannot stall a finished sign-off
func (s *reportingService) notifyPhysician(patient *patients.Patient, schedule *schedules.ProcedureSchedule, signedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	notice := &reports.ReportNotice{
		PhysicianName:  patient.PhysicianName,
		PhysicianEmail: patient.PhysicianEmail,
		PatientName:    patient.FullName(),
		PatientCode:    patient.PatientCode,
		StudyCode:      schedule.StudyCode,
		ProcedureType:  schedule.ProcedureType,
		SignedAt:       signedAt,
	}

	if err := s.notifier.ReportReady(ctx, notice); err != nil {
		s.logger.Error("Failed to notify physician for ", schedule.StudyCode, ": ", err)
	}
}

// List retrieves reports newest first, honoring the query filters
func (s *reportingService) List(ctx context.Context, query *reports.ReportQuery) ([]*reports.Report, error) {
	if query == nil {
		query = &reports.ReportQuery{}
	}

	records, err := s.reportRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// GetByID retrieves a report by ID
func (s *reportingService) GetByID(ctx context.Context, reportID string) (*reports.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return report, nil
}

// DownloadPdf retrieves a report and its stored PDF document
func (s *reportingService) DownloadPdf(ctx context.Context, reportID string) (*reports.Report, []byte, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}
	if report.PdfKey == "" {
		return nil, nil, fmt.Errorf("report %s: %w", reportID, reports.ErrPdfNotRendered)
	}

	pdf, err := s.connector.Download(ctx, report.PdfKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch document of report %s: %w", reportID, err)
	}

	return report, pdf, nil
}
