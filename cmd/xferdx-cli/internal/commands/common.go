package commands

import (
	"fmt"
	"os"

	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// defaultConfigPath matches the cmd/ layout the binaries are built under.
const defaultConfigPath = "../../configs/rest-app.yaml"

// resolveConfigPath picks the configuration file from the --config flag, the
// CONFIG_PATH environment variable or the default path, in that order.
func resolveConfigPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return path
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadConfig reads and validates the service configuration for a command.
func loadConfig(cmd *cobra.Command) (*config.RestConfig, error) {
	configPath := resolveConfigPath(cmd)

	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config from %s: %w", configPath, err)
	}
	return cfg, nil
}

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
