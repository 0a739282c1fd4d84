package schedules

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Procedure type constants
const (
	ProcedureXray        = "xray"
	ProcedureCT          = "ct"
	ProcedureMRI         = "mri"
	ProcedureUltrasound  = "ultrasound"
	ProcedureMammography = "mammography"
)

// Schedule status constants. Status moves one way only:
// scheduled -> uploaded -> finalized.
const (
	StatusScheduled = "scheduled"
	StatusUploaded  = "uploaded"
	StatusFinalized = "finalized"
)

// fallbackInitials is used in study codes for patients without a usable name.
const fallbackInitials = "PAT"

var (
	// ErrScheduleNotFound indicates the requested schedule does not exist.
	ErrScheduleNotFound = errors.New("procedure schedule not found")
	// ErrInvalidTransition indicates a status change against the one-way
	// schedule lifecycle.
	ErrInvalidTransition = errors.New("invalid schedule status transition")
)

// ProcedureSchedule entity. StudyCode is the human identifier radiologists
// refer to (patient initials plus a counter scoped to those initials,
// e.g. JDC-0003).
type ProcedureSchedule struct {
	ID                  string    `validate:"required,uuid4"`
	PatientID           string    `validate:"required,uuid4"`
	StudyCode           string    `validate:"required,min=3,max=20"`
	ProcedureType       string    `validate:"required,oneof=xray ct mri ultrasound mammography"`
	Date                time.Time `validate:"required"`
	StartTime           string    `validate:"required"`
	SpecialInstructions string    `validate:"max=500"`
	Status              string    `validate:"required,oneof=scheduled uploaded finalized"`
	CreatedAt           time.Time `validate:"required"`
	UpdatedAt           time.Time
}

// Validate for validating the ProcedureSchedule struct
func (s *ProcedureSchedule) Validate() error {
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

	if _, err := time.Parse("15:04", s.StartTime); err != nil {
		return fmt.Errorf("start time must be HH:MM, got %q", s.StartTime)
	}

	return nil
}

// CanTransitionTo reports whether moving to status respects the one-way
// lifecycle. Re-asserting the current status is allowed so repeat uploads
// and report corrections stay idempotent.
func (s *ProcedureSchedule) CanTransitionTo(status string) bool {
	if s.Status == status {
		return true
	}
	switch s.Status {
	case StatusScheduled:
		return status == StatusUploaded
	case StatusUploaded:
		return status == StatusFinalized
	default:
		return false
	}
}

// StudyCodePrefix normalizes patient initials into the study code prefix.
// Empty initials fall back to a generic prefix.
func StudyCodePrefix(initials string) string {
	if initials == "" {
		return fallbackInitials
	}
	return initials
}

// BuildStudyCode composes a study code from patient initials and the
// sequence number within that prefix. The sequence is scoped to the prefix
// rather than the patient, so two patients sharing initials never receive
// the same code.
func BuildStudyCode(initials string, seq int64) string {
	return fmt.Sprintf("%s-%04d", StudyCodePrefix(initials), seq)
}
