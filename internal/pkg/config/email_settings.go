package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EmailSettings holds the outbound email configuration. An empty API key
// disables sending entirely.
type EmailSettings struct {
	SendgridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromAddress    string `mapstructure:"from_address" validate:"omitempty,email"`
	FromName       string `mapstructure:"from_name"`
}

// Validate checks that all fields in EmailSettings are valid
func (s *EmailSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EmailSettings: %w", err)
	}

	if s.SendgridAPIKey != "" && s.FromAddress == "" {
		return fmt.Errorf("from_address is required when sendgrid_api_key is set")
	}

	return nil
}

// Enabled reports whether outbound email is configured.
func (s *EmailSettings) Enabled() bool {
	return s.SendgridAPIKey != ""
}
