package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RestConfig aggregates every settings section of the REST service.
type RestConfig struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Storage  StorageSettings  `mapstructure:"storage"`
	Auth     AuthSettings     `mapstructure:"auth"`
	Email    EmailSettings    `mapstructure:"email"`
	Logger   LoggerSettings   `mapstructure:"logger"`
}

// InitializeRestConfig loads the REST service configuration from the YAML
// file at configPath, applying defaults and environment overrides. PORT takes
// precedence over server.port so the container contract holds regardless of
// what the file says.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	// A .env file is optional and only used for local runs.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(configPath)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("storage.provider", FsStorageProvider)
	v.SetDefault("storage.root", "./media")
	v.SetDefault("storage.connection_string", "")
	v.SetDefault("storage.encryption_key", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_minutes", 60)
	v.SetDefault("auth.login_rate_limit", 5)
	v.SetDefault("auth.login_rate_window_seconds", 300)
	v.SetDefault("email.sendgrid_api_key", "")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)

	envBindings := map[string]string{
		"server.port":               "PORT",
		"database.dsn":              "DATABASE_DSN",
		"storage.connection_string": "AZURE_STORAGE_CONNECTION_STRING",
		"storage.encryption_key":    "STORAGE_ENCRYPTION_KEY",
		"auth.jwt_secret":           "JWT_SECRET",
		"email.sendgrid_api_key":    "SENDGRID_API_KEY",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every settings section.
func (c *RestConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return nil
}
