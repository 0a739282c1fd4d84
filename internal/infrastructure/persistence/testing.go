//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB             *gorm.DB
	UserRepo       users.UserRepository
	PatientRepo    patients.PatientRepository
	ScheduleRepo   schedules.ScheduleRepository
	StudyRepo      studies.StudyRepository
	AttachmentRepo studies.AttachmentRepository
	ReportRepo     reports.ReportRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = Migrate(db)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserRepository(db, logger)
	require.NoError(t, err, "Failed to create user repository")

	patientRepo, err := NewGormPatientRepository(db, logger)
	require.NoError(t, err, "Failed to create patient repository")

	scheduleRepo, err := NewGormScheduleRepository(db, logger)
	require.NoError(t, err, "Failed to create schedule repository")

	studyRepo, err := NewGormStudyRepository(db, logger)
	require.NoError(t, err, "Failed to create study repository")

	attachmentRepo, err := NewGormAttachmentRepository(db, logger)
	require.NoError(t, err, "Failed to create attachment repository")

	reportRepo, err := NewGormReportRepository(db, logger)
	require.NoError(t, err, "Failed to create report repository")

	return &TestContext{
		DB:             db,
		UserRepo:       userRepo,
		PatientRepo:    patientRepo,
		ScheduleRepo:   scheduleRepo,
		StudyRepo:      studyRepo,
		AttachmentRepo: attachmentRepo,
		ReportRepo:     reportRepo,
	}
}

// CreateTestUser creates a test account with default values
func CreateTestUser(t *testing.T, username, role string) *users.User {
	t.Helper()

	return &users.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
		CreatedAt:    time.Now(),
	}
}

// CreateTestPatient creates a test patient with default values. Pass an empty
// code to exercise sequential code assignment.
func CreateTestPatient(t *testing.T, code string) *patients.Patient {
	t.Helper()

	return &patients.Patient{
		ID:            uuid.NewString(),
		PatientCode:   code,
		FirstName:     "Juan",
		MiddleName:    "Dela",
		LastName:      "Cruz",
		DateOfBirth:   time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:        "M",
		PhoneNumber:   "09171234567",
		PhysicianName: "Dr. Reyes",
		PaymentMode:   "cash",
		CreatedAt:     time.Now(),
	}
}

// CreateTestSchedule creates a test procedure schedule with default values
func CreateTestSchedule(t *testing.T, patientID, studyCode string) *schedules.ProcedureSchedule {
	t.Helper()

	return &schedules.ProcedureSchedule{
		ID:            uuid.NewString(),
		PatientID:     patientID,
		StudyCode:     studyCode,
		ProcedureType: schedules.ProcedureXray,
		Date:          time.Now().AddDate(0, 0, 1),
		StartTime:     "09:30",
		Status:        schedules.StatusScheduled,
		CreatedAt:     time.Now(),
	}
}

// CreateTestStudy creates a test study with default values
func CreateTestStudy(t *testing.T, patientID, scheduleID string) *studies.Study {
	t.Helper()

	return &studies.Study{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		ScheduleID:   scheduleID,
		ObjectKey:    "dicom_files/patient_PAT-0001/" + uuid.NewString() + ".dcm",
		FileName:     "scan.dcm",
		FileSize:     2048,
		ExamPriority: studies.PriorityRoutine,
		UploadTime:   time.Now(),
	}
}

// CreateTestAttachment creates a test attachment with default values
func CreateTestAttachment(t *testing.T, studyID string) *studies.Attachment {
	t.Helper()

	return &studies.Attachment{
		ID:         uuid.NewString(),
		StudyID:    studyID,
		ObjectKey:  "attachments/study_" + studyID + "/request.pdf",
		FileName:   "request.pdf",
		FileType:   studies.AttachmentDocument,
		FileSize:   512,
		UploadedAt: time.Now(),
	}
}

// CreateTestReport creates a test report with default values
func CreateTestReport(t *testing.T, patientID, scheduleID string) *reports.Report {
	t.Helper()

	return &reports.Report{
		ID:         uuid.NewString(),
		PatientID:  patientID,
		ScheduleID: scheduleID,
		Findings:   "Lungs are clear. No acute osseous abnormality.",
		Impression: "Normal chest radiograph.",
		CreatedAt:  time.Now(),
	}
}
