package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/infrastructure/connector"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// SeedCommandHandler encapsulates logic for inserting a demo dataset via CLI.
type SeedCommandHandler struct{}

// NewSeedCommandHandler initializes and returns a SeedCommandHandler instance.
func NewSeedCommandHandler() (*SeedCommandHandler, error) {
	return &SeedCommandHandler{}, nil
}

// seedPatients is the demo registry inserted by the seed command.
var seedPatients = []patients.Patient{
	{
		FirstName:     "Juan",
		MiddleName:    "Dela",
		LastName:      "Cruz",
		DateOfBirth:   time.Date(1985, time.March, 14, 0, 0, 0, 0, time.UTC),
		Gender:        "M",
		PhoneNumber:   "+63-917-000-0001",
		PhysicianName: "Dr. Reyes",
		PaymentMode:   "philhealth",
	},
	{
		FirstName:     "Maria",
		LastName:      "Santos",
		DateOfBirth:   time.Date(1992, time.November, 2, 0, 0, 0, 0, time.UTC),
		Gender:        "F",
		PhoneNumber:   "+63-917-000-0002",
		PhysicianName: "Dr. Lim",
		PaymentMode:   "cash",
	},
	{
		FirstName:     "Pedro",
		LastName:      "Ramos",
		DateOfBirth:   time.Date(1978, time.June, 30, 0, 0, 0, 0, time.UTC),
		Gender:        "M",
		PhoneNumber:   "+63-917-000-0003",
		PhysicianName: "Dr. Reyes",
		PaymentMode:   "hmo",
	},
}

// SeedCmd inserts the demo dataset for local development
func (commandHandler *SeedCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("invalid force flag: %w", err)
	}

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

	ctx := cmd.Context()

	patientRepo, err := persistence.NewGormPatientRepository(db, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create patient repository: %w", err)
	}

	existing, err := patientRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count patients: %w", err)
	}
	if existing > 0 && !force {
		return fmt.Errorf("database already holds %d patients, use --force to seed anyway", existing)
	}

	storageConnector, err := connector.NewStorageConnector(ctx, &cfg.Storage, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to initialize storage connector: %w", err)
	}

	if err := commandHandler.seed(ctx, db, storageConnector, loggerInstance); err != nil {
		return err
	}

	loggerInstance.Info("Demo dataset seeded successfully")
	return nil
}

// seed inserts the demo patients, schedules one procedure each and marks the
// first schedule as uploaded with a small synthetic payload
func (commandHandler *SeedCommandHandler) seed(ctx context.Context, db *gorm.DB, storageConnector studies.StorageConnector, loggerInstance logger.Logger) error {
	patientRepo, err := persistence.NewGormPatientRepository(db, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create patient repository: %w", err)
	}
	scheduleRepo, err := persistence.NewGormScheduleRepository(db, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create schedule repository: %w", err)
	}
	studyRepo, err := persistence.NewGormStudyRepository(db, loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create study repository: %w", err)
	}

	procedureTypes := []string{"xray", "ct", "ultrasound"}
	now := time.Now()

	for i := range seedPatients {
		patient := seedPatients[i]
		patient.ID = uuid.NewString()
		patient.CreatedAt = now
		patient.UpdatedAt = now
		if err := patientRepo.Create(ctx, &patient); err != nil {
			return fmt.Errorf("failed to seed patient %s: %w", patient.FullName(), err)
		}

		schedule := &schedules.ProcedureSchedule{
			ID:            uuid.NewString(),
			PatientID:     patient.ID,
			StudyCode:     schedules.BuildStudyCode(patient.Initials(), 1),
			ProcedureType: procedureTypes[i%len(procedureTypes)],
			Date:          now.AddDate(0, 0, i),
			StartTime:     "09:00",
			Status:        schedules.StatusScheduled,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := scheduleRepo.Create(ctx, schedule); err != nil {
			return fmt.Errorf("failed to seed schedule %s: %w", schedule.StudyCode, err)
		}

		// The first patient gets an uploaded study so the review worklist
		// is not empty on a fresh install.
		if i == 0 {
			payload := []byte("xferdx demo payload, not a DICOM file")
			objectKey := studies.NewObjectKey(patient.PatientCode, "demo.dcm")
			if err := storageConnector.Upload(ctx, objectKey, payload); err != nil {
				return fmt.Errorf("failed to store demo payload: %w", err)
			}

			study := &studies.Study{
				ID:           uuid.NewString(),
				PatientID:    patient.ID,
				ScheduleID:   schedule.ID,
				ObjectKey:    objectKey,
				FileName:     "demo.dcm",
				FileSize:     int64(len(payload)),
				ExamPriority: studies.PriorityRoutine,
				UploadTime:   now,
			}
			if err := studyRepo.Create(ctx, study); err != nil {
				return fmt.Errorf("failed to seed study: %w", err)
			}

			if err := scheduleRepo.UpdateStatus(ctx, schedule.ID, schedules.StatusUploaded); err != nil {
				return fmt.Errorf("failed to mark schedule uploaded: %w", err)
			}
		}

		loggerInstance.Info("Seeded patient ", patient.PatientCode, " with schedule ", schedule.StudyCode)
	}

	return nil
}

// InitSeedCommands registers the seed command with the root command.
func InitSeedCommands(rootCmd *cobra.Command) error {
	handler, err := NewSeedCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize seed command handler: %w", err)
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo dataset",
		Long:  "Insert a few demo patients and schedules, one with an uploaded study, for local development. Refuses to run against a non-empty registry unless --force is given.",
		RunE:  handler.SeedCmd,
	}
	seedCmd.Flags().Bool("force", false, "Seed even when patients already exist")
	rootCmd.AddCommand(seedCmd)

	return nil
}
