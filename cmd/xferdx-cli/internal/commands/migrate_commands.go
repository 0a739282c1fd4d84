package commands

import (
	"fmt"

	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// MigrateCommandHandler encapsulates logic for running schema migrations via CLI.
type MigrateCommandHandler struct{}

// NewMigrateCommandHandler initializes and returns a MigrateCommandHandler instance.
func NewMigrateCommandHandler() (*MigrateCommandHandler, error) {
	return &MigrateCommandHandler{}, nil
}

// MigrateCmd connects to the configured database and applies the schema.
// Unlike the server's tolerant boot, a migration failure here exits non-zero.
func (commandHandler *MigrateCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger()
	if err != nil {
		return err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	loggerInstance.Info("Schema migration completed successfully")
	return nil
}

// InitMigrateCommands registers the migrate command with the root command.
func InitMigrateCommands(rootCmd *cobra.Command) error {
	handler, err := NewMigrateCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate command handler: %w", err)
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Long:  "Connect to the configured database and auto-migrate every persistence model. Fails loudly when the database is unreachable.",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	return nil
}
