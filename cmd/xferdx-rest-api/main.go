// cmd/xferdx-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	v1 "github.com/jtsigarra/xferdx/internal/api/rest/v1"
	"github.com/jtsigarra/xferdx/internal/app"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/infrastructure/connector"
	"github.com/jtsigarra/xferdx/internal/infrastructure/dicommeta"
	"github.com/jtsigarra/xferdx/internal/infrastructure/identity"
	"github.com/jtsigarra/xferdx/internal/infrastructure/notify"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence"
	"github.com/jtsigarra/xferdx/internal/infrastructure/render"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// facilityName appears in the header of every rendered report.
const facilityName = "xferDx Imaging Center"

// maxMultipartMemory caps the in-memory portion of study uploads.
const maxMultipartMemory = 32 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	services, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, services, log)
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*v1.Services, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations. The database may be unreachable or migrated
	// out-of-band at boot, so a failure is a warning, not a fatal error.
	if cfg.Database.AutoMigrate {
		if err := persistence.Migrate(db); err != nil {
			log.Warn("Schema migration failed, continuing startup: ", err)
		} else {
			log.Info("Database migrations completed successfully")
		}
	}

	// Initialize repositories
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	patientRepo, err := persistence.NewGormPatientRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient repository: %w", err)
	}

	scheduleRepo, err := persistence.NewGormScheduleRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule repository: %w", err)
	}

	studyRepo, err := persistence.NewGormStudyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create study repository: %w", err)
	}

	attachmentRepo, err := persistence.NewGormAttachmentRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment repository: %w", err)
	}

	reportRepo, err := persistence.NewGormReportRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create report repository: %w", err)
	}

	// Initialize storage connector
	storageConnector, err := connector.NewStorageConnector(context.Background(), &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage connector: %w", err)
	}

	// Initialize identity components
	tokenManager, err := identity.NewJwtTokenManager(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}
	hasher := identity.NewBcryptHasher()
	limiter := identity.NewLoginLimiter(&cfg.Auth)

	// Initialize the document pipeline
	extractor := dicommeta.NewDicomExtractor(log)
	renderer := render.NewPdfRenderer(facilityName, log)
	notifier, err := initializeNotifier(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Initialize services
	authService, err := app.NewAuthService(userRepo, tokenManager, hasher, limiter, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	patientService, err := app.NewPatientService(patientRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient service: %w", err)
	}

	scheduleService, err := app.NewScheduleService(scheduleRepo, patientRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %w", err)
	}

	studyUploadService, err := app.NewStudyUploadService(
		storageConnector, studyRepo, attachmentRepo, scheduleRepo, patientRepo, extractor, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create study upload service: %w", err)
	}

	studyMetadataService, err := app.NewStudyMetadataService(studyRepo, attachmentRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create study metadata service: %w", err)
	}

	studyDownloadService, err := app.NewStudyDownloadService(storageConnector, studyRepo, attachmentRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create study download service: %w", err)
	}

	reportingService, err := app.NewReportingService(
		reportRepo, scheduleRepo, patientRepo, storageConnector, renderer, notifier, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reporting service: %w", err)
	}

	worklistService, err := app.NewWorklistService(patientRepo, scheduleRepo, studyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create worklist service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.Services{
		Auth:          authService,
		Patient:       patientService,
		Schedule:      scheduleService,
		StudyUpload:   studyUploadService,
		StudyMetadata: studyMetadataService,
		StudyDownload: studyDownloadService,
		Reporting:     reportingService,
		Worklist:      worklistService,
		TokenManager:  tokenManager,
	}, nil
}

// initializeNotifier picks the SendGrid sender when email is configured and
// the logging no-op otherwise
func initializeNotifier(cfg *config.RestConfig, log logger.Logger) (notifier reports.Notifier, err error) {
	if cfg.Email.Enabled() {
		return notify.NewSendgridNotifier(&cfg.Email, log)
	}
	return notify.NewNoopNotifier(log), nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, services *v1.Services, log logger.Logger) error {
	// Setup router
	r := gin.Default()
	r.MaxMultipartMemory = maxMultipartMemory

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, services)

	// Serve collected static assets when the directory exists; its absence
	// only costs the /static prefix, never the boot.
	if cfg.Server.StaticDir != "" {
		if _, err := os.Stat(cfg.Server.StaticDir); err == nil {
			r.Static("/static", cfg.Server.StaticDir)
		} else {
			log.Warn("Static directory ", cfg.Server.StaticDir, " not found, /static disabled")
		}
	}

	// Create HTTP server. The listener binds all interfaces so the
	// containerized process is reachable from outside.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
