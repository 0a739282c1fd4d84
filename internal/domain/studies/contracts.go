package studies

import (
	"context"
	"mime/multipart"
)

// StudyQuery carries optional filters for listing studies.
type StudyQuery struct {
	ScheduleStatus string
	Priority       string
	PatientID      string
}

// UploadStudyCommand carries one multipart intake: DICOM payloads plus
// supporting attachments for a schedule.
type UploadStudyCommand struct {
	ScheduleID      string
	ExamPriority    string
	ClinicalHistory string
	DicomFiles      []*multipart.FileHeader
	AttachmentFiles []*multipart.FileHeader
}

// UpdateStudyCommand carries a partial study update. Nil pointers leave the
// field untouched; Reviewed stamps the reviewer and review time.
type UpdateStudyCommand struct {
	StudyID         string
	ExamPriority    *string
	ClinicalHistory *string
	Reviewed        bool
	Reviewer        string
}

// StudyUploadService defines methods for transferring studies in.
type StudyUploadService interface {
	// Upload stores every DICOM file of the command, attaches supporting
	// files to the first stored study, extracts header metadata best-effort
	// and moves the schedule to uploaded. It returns the created studies.
	Upload(ctx context.Context, cmd UploadStudyCommand) ([]*Study, error)
}

// StudyMetadataService defines methods for querying and updating studies.
type StudyMetadataService interface {
	// List retrieves studies newest first, honoring the query filters.
	List(ctx context.Context, query *StudyQuery) ([]*Study, error)

	// GetByID retrieves a study by ID.
	GetByID(ctx context.Context, studyID string) (*Study, error)

	// ListByPatient retrieves all studies of one patient, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]*Study, error)

	// ListAttachments retrieves a study's attachments.
	ListAttachments(ctx context.Context, studyID string) ([]*Attachment, error)

	// Update applies a partial update and returns the stored study.
	Update(ctx context.Context, cmd UpdateStudyCommand) (*Study, error)
}

// StudyDownloadService defines methods for transferring studies out.
type StudyDownloadService interface {
	// DownloadByID retrieves a study and its raw DICOM payload.
	DownloadByID(ctx context.Context, studyID string) (*Study, []byte, error)

	// DownloadAttachment retrieves an attachment of the study and its
	// content. The attachment must belong to the study.
	DownloadAttachment(ctx context.Context, studyID, attachmentID string) (*Attachment, []byte, error)
}

// StudyRepository defines the interface for study persistence
type StudyRepository interface {
	// Create adds a new Study to the database
	Create(ctx context.Context, study *Study) error
	// GetByID retrieves a Study from the database by ID
	GetByID(ctx context.Context, studyID string) (*Study, error)
	// List lists Studies newest first with optional filters
	List(ctx context.Context, query *StudyQuery) ([]*Study, error)
	// ListByPatient lists all Studies of one patient, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*Study, error)
	// ListBySchedule lists all Studies of one schedule
	ListBySchedule(ctx context.Context, scheduleID string) ([]*Study, error)
	// UpdateByID updates a Study in the database by ID
	UpdateByID(ctx context.Context, study *Study) error
	// CountUrgentUploaded counts distinct uploaded schedules having at least
	// one study with urgent or stat priority
	CountUrgentUploaded(ctx context.Context) (int64, error)
}

// AttachmentRepository defines the interface for attachment persistence
type AttachmentRepository interface {
	// Create adds a new Attachment to the database
	Create(ctx context.Context, attachment *Attachment) error
	// GetByID retrieves an Attachment from the database by ID
	GetByID(ctx context.Context, attachmentID string) (*Attachment, error)
	// ListByStudy lists all Attachments of one study
	ListByStudy(ctx context.Context, studyID string) ([]*Attachment, error)
}

// StorageConnector is an interface for interacting with object storage.
// Keys are slash separated paths produced by NewObjectKey and friends.
type StorageConnector interface {
	// Upload stores data under key.
	Upload(ctx context.Context, key string, data []byte) error

	// Download retrieves the content stored under key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}

// MetadataExtractor parses DICOM headers into a flat tag map.
type MetadataExtractor interface {
	// Extract returns header tags of interest from a DICOM payload. A
	// non-DICOM payload yields an error, not a partial map.
	Extract(data []byte) (map[string]string, error)
}
