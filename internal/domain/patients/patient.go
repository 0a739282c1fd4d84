package patients

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jtsigarra/xferdx/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Payment mode constants
const (
	PaymentCash       = "cash"
	PaymentPhilhealth = "philhealth"
	PaymentHMO        = "hmo"
)

// codePrefix is the prefix of every generated patient code.
const codePrefix = "PAT"

// ErrPatientNotFound indicates the requested patient does not exist.
var ErrPatientNotFound = errors.New("patient not found")

// Patient entity
type Patient struct {
	ID                     string    `validate:"required,uuid4"`
	PatientCode            string    `validate:"required,patientcode"`
	FirstName              string    `validate:"required,max=100"`
	MiddleName             string    `validate:"max=100"`
	LastName               string    `validate:"required,max=100"`
	DateOfBirth            time.Time `validate:"required"`
	Gender                 string    `validate:"required,oneof=M F O"`
	PhoneNumber            string    `validate:"required,max=20"`
	EmailAddress           string    `validate:"omitempty,email"`
	EmergencyContact       string    `validate:"max=100"`
	EmergencyContactNumber string    `validate:"max=20"`
	PhysicianName          string    `validate:"required,max=100"`
	PhysicianEmail         string    `validate:"omitempty,email"`
	PhysicianPhone         string    `validate:"max=20"`
	PaymentMode            string    `validate:"required,oneof=cash philhealth hmo"`
	CreatedAt              time.Time `validate:"required"`
	UpdatedAt              time.Time
}

// Validate for validating the Patient struct
func (p *Patient) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("patientcode", validators.PatientCodeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(p)
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

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	parts := []string{p.FirstName, p.MiddleName, p.LastName}
	var nonEmpty []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(part))
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Initials returns the uppercased first letters of the patient's name parts.
// An empty result means no usable name and callers fall back to the generic
// prefix when building study codes.
func (p *Patient) Initials() string {
	var b strings.Builder
	for _, part := range []string{p.FirstName, p.MiddleName, p.LastName} {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		// Decode the leading rune so multi-byte names keep their letter.
		first, _ := utf8.DecodeRuneInString(trimmed)
		b.WriteRune(unicode.ToUpper(first))
	}
	return b.String()
}

// Age returns full years elapsed since the date of birth, counting one less
// until the birthday has occurred in the current year.
func (p *Patient) Age(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// NextCode returns the patient code following lastCode. Codes are sequential
// and zero padded to four digits (PAT-0001, PAT-0002, ...); an unparsable or
// empty lastCode restarts the sequence.
func NextCode(lastCode string) string {
	seq := 1
	if suffix, found := strings.CutPrefix(lastCode, codePrefix+"-"); found {
		if n, err := strconv.Atoi(suffix); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%04d", codePrefix, seq)
}
