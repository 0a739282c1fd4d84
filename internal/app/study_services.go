package app

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/httputil"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/google/uuid"
)

// studyUploadService implements the StudyUploadService interface for handling
// DICOM intake
type studyUploadService struct {
	connector      studies.StorageConnector
	studyRepo      studies.StudyRepository
	attachmentRepo studies.AttachmentRepository
	scheduleRepo   schedules.ScheduleRepository
	patientRepo    patients.PatientRepository
	extractor      studies.MetadataExtractor
	logger         logger.Logger
}

// NewStudyUploadService creates a new instance of StudyUploadService
func NewStudyUploadService(
	connector studies.StorageConnector,
	studyRepo studies.StudyRepository,
	attachmentRepo studies.AttachmentRepository,
	scheduleRepo schedules.ScheduleRepository,
	patientRepo patients.PatientRepository,
	extractor studies.MetadataExtractor,
	logger logger.Logger,
) (studies.StudyUploadService, error) {
	return &studyUploadService{
		connector:      connector,
		studyRepo:      studyRepo,
		attachmentRepo: attachmentRepo,
		scheduleRepo:   scheduleRepo,
		patientRepo:    patientRepo,
		extractor:      extractor,
		logger:         logger,
	}, nil
}

// Upload stores every DICOM file of the command, attaches supporting files to
// the first stored study, extracts header metadata best-effort and moves the
// schedule to uploaded. It returns the created studies.
func (s *studyUploadService) Upload(ctx context.Context, cmd studies.UploadStudyCommand) ([]*studies.Study, error) {
	// Step 1: Resolve the schedule and make sure images may still land on it
	schedule, err := s.scheduleRepo.GetByID(ctx, cmd.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !schedule.CanTransitionTo(schedules.StatusUploaded) {
		return nil, fmt.Errorf("schedule %s is %s: %w", schedule.StudyCode, schedule.Status, schedules.ErrInvalidTransition)
	}

	// Step 2: Resolve the patient, object keys are grouped by patient code
	patient, err := s.patientRepo.GetByID(ctx, schedule.PatientID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if len(cmd.DicomFiles) == 0 {
		return nil, studies.ErrNoFiles
	}

	priority := cmd.ExamPriority
	if priority == "" {
		priority = studies.PriorityRoutine
	}

	// Step 3: Store each DICOM payload and persist its study record
	var created []*studies.Study
	for _, header := range cmd.DicomFiles {
		data, err := httputil.ReadFormFile(header)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}

		key := studies.NewObjectKey(patient.PatientCode, header.Filename)
		if err := s.connector.Upload(ctx, key, data); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", header.Filename, err)
		}

		study := &studies.Study{
			ID:              uuid.NewString(),
			PatientID:       patient.ID,
			ScheduleID:      schedule.ID,
			ObjectKey:       key,
			FileName:        header.Filename,
			FileSize:        int64(len(data)),
			ExamPriority:    priority,
			ClinicalHistory: cmd.ClinicalHistory,
			UploadTime:      time.Now(),
		}

		// Header parsing failures are not fatal, the raw payload is stored
		// either way
		metadata, err := s.extractor.Extract(data)
		if err != nil {
			s.logger.Warn("Could not parse DICOM header of ", header.Filename, ": ", err)
		} else {
			study.Metadata = metadata
			study.MetadataExtracted = true
		}

		if err := s.studyRepo.Create(ctx, study); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		created = append(created, study)
	}

	// Step 4: Attach supporting files to the first stored study
	if len(cmd.AttachmentFiles) > 0 {
		if err := s.storeAttachments(ctx, created[0].ID, cmd.AttachmentFiles); err != nil {
			return nil, err
		}
	}

	// Step 5: Move the schedule forward, repeat uploads keep it at uploaded
	if schedule.Status != schedules.StatusUploaded {
		if err := s.scheduleRepo.UpdateStatus(ctx, schedule.ID, schedules.StatusUploaded); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	s.logger.Info("Uploaded ", len(created), " DICOM file(s) for ", schedule.StudyCode)
	return created, nil
}

// storeAttachments classifies and stores supporting files under the study's
// attachment directory
func (s *studyUploadService) storeAttachments(ctx context.Context, studyID string, files []*multipart.FileHeader) error {
	for _, header := range files {
		data, err := httputil.ReadFormFile(header)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}

		key := studies.AttachmentObjectKey(studyID, header.Filename)
		if err := s.connector.Upload(ctx, key, data); err != nil {
			return fmt.Errorf("failed to store %s: %w", header.Filename, err)
		}

		attachment := &studies.Attachment{
			ID:         uuid.NewString(),
			StudyID:    studyID,
			ObjectKey:  key,
			FileName:   header.Filename,
			FileType:   studies.ClassifyAttachment(header.Filename),
			FileSize:   int64(len(data)),
			UploadedAt: time.Now(),
		}
		if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// studyMetadataService implements the StudyMetadataService interface for
// querying and updating study records
type studyMetadataService struct {
	studyRepo      studies.StudyRepository
	attachmentRepo studies.AttachmentRepository
	logger         logger.Logger
}

// NewStudyMetadataService creates a new instance of StudyMetadataService
func NewStudyMetadataService(
	studyRepo studies.StudyRepository,
	attachmentRepo studies.AttachmentRepository,
	logger logger.Logger,
) (studies.StudyMetadataService, error) {
	return &studyMetadataService{
		studyRepo:      studyRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}, nil
}

// List retrieves studies newest first, honoring the query filters
func (s *studyMetadataService) List(ctx context.Context, query *studies.StudyQuery) ([]*studies.Study, error) {
	if query == nil {
		query = &studies.StudyQuery{}
	}

	records, err := s.studyRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// GetByID retrieves a study by ID
func (s *studyMetadataService) GetByID(ctx context.Context, studyID string) (*studies.Study, error) {
	study, err := s.studyRepo.GetByID(ctx, studyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return study, nil
}

// ListByPatient retrieves all studies of one patient, newest first
func (s *studyMetadataService) ListByPatient(ctx context.Context, patientID string) ([]*studies.Study, error) {
	records, err := s.studyRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// ListAttachments retrieves a study's attachments
func (s *studyMetadataService) ListAttachments(ctx context.Context, studyID string) ([]*studies.Attachment, error) {
	// The study must exist, an unknown ID is an error rather than an empty list
	if _, err := s.studyRepo.GetByID(ctx, studyID); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	records, err := s.attachmentRepo.ListByStudy(ctx, studyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// Update applies a partial update and returns the stored study
func (s *studyMetadataService) Update(ctx context.Context, cmd studies.UpdateStudyCommand) (*studies.Study, error) {
	study, err := s.studyRepo.GetByID(ctx, cmd.StudyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if cmd.ExamPriority != nil {
		study.ExamPriority = *cmd.ExamPriority
	}
	if cmd.ClinicalHistory != nil {
		study.ClinicalHistory = *cmd.ClinicalHistory
	}
	if cmd.Reviewed {
		now := time.Now()
		study.ReviewedBy = cmd.Reviewer
		study.ReviewedAt = &now
	}

	if err := s.studyRepo.UpdateByID(ctx, study); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return study, nil
}

// studyDownloadService implements the StudyDownloadService interface for
// handling DICOM and attachment retrieval
type studyDownloadService struct {
	connector      studies.StorageConnector
	studyRepo      studies.StudyRepository
	attachmentRepo studies.AttachmentRepository
	logger         logger.Logger
}

// NewStudyDownloadService creates a new instance of StudyDownloadService
func NewStudyDownloadService(
	connector studies.StorageConnector,
	studyRepo studies.StudyRepository,
	attachmentRepo studies.AttachmentRepository,
	logger logger.Logger,
) (studies.StudyDownloadService, error) {
	return &studyDownloadService{
		connector:      connector,
		studyRepo:      studyRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}, nil
}

// DownloadByID retrieves a study and its raw DICOM payload
func (s *studyDownloadService) DownloadByID(ctx context.Context, studyID string) (*studies.Study, []byte, error) {
	study, err := s.studyRepo.GetByID(ctx, studyID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	data, err := s.connector.Download(ctx, study.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch payload of study %s: %w", studyID, err)
	}

	s.logger.Info("Downloaded study ", studyID, " (", len(data), " bytes)")
	return study, data, nil
}

// DownloadAttachment retrieves an attachment of the study and its content.
// The attachment must belong to the study.
func (s *studyDownloadService) DownloadAttachment(ctx context.Context, studyID, attachmentID string) (*studies.Attachment, []byte, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}
	if attachment.StudyID != studyID {
		return nil, nil, fmt.Errorf("attachment %s does not belong to study %s: %w", attachmentID, studyID, studies.ErrAttachmentNotFound)
	}

	data, err := s.connector.Download(ctx, attachment.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch attachment %s: %w", attachmentID, err)
	}

	return attachment, data, nil
}
