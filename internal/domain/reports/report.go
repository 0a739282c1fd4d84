package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrReportNotFound indicates the requested report does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrScheduleNotReady indicates a sign-off attempt on a schedule that
	// has no uploaded study yet.
	ErrScheduleNotReady = errors.New("schedule has no uploaded study to report on")
	// ErrEmptyReport indicates findings or impression were empty after
	// editor cleanup.
	ErrEmptyReport = errors.New("findings and impression must not be empty")
	// ErrPdfNotRendered indicates the report has no stored PDF yet.
	ErrPdfNotRendered = errors.New("report has no rendered PDF")
)

// Report entity. One report exists per schedule; re-signing replaces the
// findings and impression in place. CreatedByID survives as nil when the
// authoring account is deleted.
type Report struct {
	ID          string    `validate:"required,uuid4"`
	PatientID   string    `validate:"required,uuid4"`
	ScheduleID  string    `validate:"required,uuid4"`
	Findings    string    `validate:"required"`
	Impression  string    `validate:"required"`
	PdfKey      string    `validate:"max=500"`
	CreatedByID *string   `validate:"omitempty,uuid4"`
	CreatedAt   time.Time `validate:"required"`
	UpdatedAt   time.Time
}

// Validate for validating the Report struct
func (r *Report) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
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

// PdfObjectKey builds the storage key for a signed report document. Keying
// by schedule lets re-signs overwrite in place without clashing across a
// patient's other reports.
func PdfObjectKey(scheduleID, patientCode string) string {
	return fmt.Sprintf("reports/schedule_%s/Report_%s.pdf", scheduleID, patientCode)
}

// PdfFileName is the download name presented for a signed report document.
func PdfFileName(patientCode string) string {
	return fmt.Sprintf("Report_%s.pdf", patientCode)
}
