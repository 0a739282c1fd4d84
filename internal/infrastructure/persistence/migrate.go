package persistence

import (
	"fmt"

	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for all persistence models. It is idempotent
// and safe to run on every startup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.UserModel{},
		&models.PatientModel{},
		&models.ScheduleModel{},
		&models.StudyModel{},
		&models.AttachmentModel{},
		&models.ReportModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
