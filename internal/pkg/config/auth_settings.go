package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AuthSettings holds token signing and login throttling configuration.
type AuthSettings struct {
	JWTSecret              string `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTLMinutes        int    `mapstructure:"token_ttl_minutes"`
	LoginRateLimit         int    `mapstructure:"login_rate_limit"`
	LoginRateWindowSeconds int    `mapstructure:"login_rate_window_seconds"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}

	if s.TokenTTLMinutes < 1 || s.TokenTTLMinutes > 1440 {
		return fmt.Errorf("token_ttl_minutes must be between 1 and 1440, got %d", s.TokenTTLMinutes)
	}
	if s.LoginRateLimit < 1 {
		return fmt.Errorf("login_rate_limit must be at least 1, got %d", s.LoginRateLimit)
	}
	if s.LoginRateWindowSeconds < 1 {
		return fmt.Errorf("login_rate_window_seconds must be at least 1, got %d", s.LoginRateWindowSeconds)
	}

	return nil
}
