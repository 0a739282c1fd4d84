package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DatabaseSettings holds the database connection configuration. For sqlite an
// empty DSN falls back to an in-memory database.
type DatabaseSettings struct {
	Type        string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN         string `mapstructure:"dsn"`
	DBName      string `mapstructure:"db_name"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	if s.Type == PostgresDbType && s.DSN == "" {
		return fmt.Errorf("dsn is required for postgres")
	}

	return nil
}
