//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/domain/worklist"
	"github.com/jtsigarra/xferdx/internal/infrastructure/connector"
	"github.com/jtsigarra/xferdx/internal/infrastructure/dicommeta"
	"github.com/jtsigarra/xferdx/internal/infrastructure/identity"
	"github.com/jtsigarra/xferdx/internal/infrastructure/notify"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence"
	"github.com/jtsigarra/xferdx/internal/infrastructure/render"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// Test constants for token issuing and login throttling
const (
	TestJWTSecret       = "integration-test-secret-0123456789"
	TestTokenTTLMinutes = 60
	TestLoginRateLimit  = 5
	TestLoginRateWindow = 300
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService          users.AuthService
	PatientService       patients.PatientService
	ScheduleService      schedules.ScheduleService
	StudyUploadService   studies.StudyUploadService
	StudyMetadataService studies.StudyMetadataService
	StudyDownloadService studies.StudyDownloadService
	ReportingService     reports.ReportingService
	WorklistService      worklist.Service

	// Infrastructure
	Connector studies.StorageConnector
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration
// tests. Studies land on a per-test temporary directory and notifications go
// to the no-op notifier.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	// Setup database
	dbContext := persistence.SetupTestDB(t, dbType)

	// Setup storage connector
	storageSettings := &config.StorageSettings{
		Provider: "fs",
		Root:     t.TempDir(),
	}
	storageConnector, err := connector.NewFsConnector(storageSettings, logger)
	require.NoError(t, err, "Failed to create storage connector")

	// Setup identity components
	authSettings := &config.AuthSettings{
		JWTSecret:              TestJWTSecret,
		TokenTTLMinutes:        TestTokenTTLMinutes,
		LoginRateLimit:         TestLoginRateLimit,
		LoginRateWindowSeconds: TestLoginRateWindow,
	}
	tokenManager, err := identity.NewJwtTokenManager(authSettings)
	require.NoError(t, err, "Failed to create token manager")

	hasher := identity.NewBcryptHasher()
	limiter := identity.NewLoginLimiter(authSettings)

	// Setup document pipeline
	extractor := dicommeta.NewDicomExtractor(logger)
	renderer := render.NewPdfRenderer("", logger)
	notifier := notify.NewNoopNotifier(logger)

	// Initialize services
	authService, err := NewAuthService(dbContext.UserRepo, tokenManager, hasher, limiter, logger)
	require.NoError(t, err, "Failed to create AuthService")

	patientService, err := NewPatientService(dbContext.PatientRepo, logger)
	require.NoError(t, err, "Failed to create PatientService")

	scheduleService, err := NewScheduleService(dbContext.ScheduleRepo, dbContext.PatientRepo, logger)
	require.NoError(t, err, "Failed to create ScheduleService")

	studyUploadService, err := NewStudyUploadService(
		storageConnector,
		dbContext.StudyRepo,
		dbContext.AttachmentRepo,
		dbContext.ScheduleRepo,
		dbContext.PatientRepo,
		extractor,
		logger,
	)
	require.NoError(t, err, "Failed to create StudyUploadService")

	studyMetadataService, err := NewStudyMetadataService(
		dbContext.StudyRepo,
		dbContext.AttachmentRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create StudyMetadataService")

	studyDownloadService, err := NewStudyDownloadService(
		storageConnector,
		dbContext.StudyRepo,
		dbContext.AttachmentRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create StudyDownloadService")

	reportingService, err := NewReportingService(
		dbContext.ReportRepo,
		dbContext.ScheduleRepo,
		dbContext.PatientRepo,
		storageConnector,
		renderer,
		notifier,
		logger,
	)
	require.NoError(t, err, "Failed to create ReportingService")

	worklistService, err := NewWorklistService(
		dbContext.PatientRepo,
		dbContext.ScheduleRepo,
		dbContext.StudyRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create WorklistService")

	return &TestServices{
		AuthService:          authService,
		PatientService:       patientService,
		ScheduleService:      scheduleService,
		StudyUploadService:   studyUploadService,
		StudyMetadataService: studyMetadataService,
		StudyDownloadService: studyDownloadService,
		ReportingService:     reportingService,
		WorklistService:      worklistService,
		Connector:            storageConnector,
		DBContext:            dbContext,
	}
}
