package config

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ServerSettings holds the HTTP listener configuration. Port may be
// overridden by the PORT environment variable at load time.
type ServerSettings struct {
	Port      string `mapstructure:"port" validate:"required"`
	StaticDir string `mapstructure:"static_dir"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}

	port, err := strconv.Atoi(s.Port)
	if err != nil {
		return fmt.Errorf("port must be numeric, got %q", s.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}

	return nil
}
