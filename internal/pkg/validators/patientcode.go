package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var patientCodePattern = regexp.MustCompile(`^PAT-\d{4,}$`)

// PatientCodeValidation validates the sequential patient code format
// (PAT- followed by a zero padded counter, e.g. PAT-0042).
func PatientCodeValidation(fl validator.FieldLevel) bool {
	return patientCodePattern.MatchString(fl.Field().String())
}
