package studies

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Exam priority constants
const (
	PriorityRoutine = "routine"
	PriorityUrgent  = "urgent"
	PriorityStat    = "stat"
)

var (
	// ErrStudyNotFound indicates the requested study does not exist.
	ErrStudyNotFound = errors.New("study not found")
	// ErrNoFiles indicates an upload request without any DICOM files.
	ErrNoFiles = errors.New("no DICOM files in upload")
)

// Study entity. ObjectKey addresses the stored DICOM payload in the storage
// connector; Metadata holds tags parsed from the DICOM header.
type Study struct {
	ID                string    `validate:"required,uuid4"`
	PatientID         string    `validate:"required,uuid4"`
	ScheduleID        string    `validate:"required,uuid4"`
	ObjectKey         string    `validate:"required,max=500"`
	FileName          string    `validate:"required,max=255"`
	FileSize          int64     `validate:"required,min=1"`
	ExamPriority      string    `validate:"required,oneof=routine urgent stat"`
	ClinicalHistory   string    `validate:"max=2000"`
	UploadTime        time.Time `validate:"required"`
	MetadataExtracted bool
	Metadata          map[string]string
	ReviewedBy        string `validate:"max=150"`
	ReviewedAt        *time.Time
}

// Validate for validating the Study struct
func (s *Study) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// NewObjectKey builds the storage key for a DICOM payload: a random 16 hex
// character name under the patient's directory, keeping the upload's file
// extension.
func NewObjectKey(patientCode, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".dcm"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return fmt.Sprintf("dicom_files/patient_%s/%s%s", patientCode, name, ext)
}
