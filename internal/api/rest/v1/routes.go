package v1

import (
	"net/http"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/domain/worklist"

	"github.com/gin-gonic/gin"
)

// Services bundles the application services the v1 routes are built over.
type Services struct {
	Auth          users.AuthService
	Patient       patients.PatientService
	Schedule      schedules.ScheduleService
	StudyUpload   studies.StudyUploadService
	StudyMetadata studies.StudyMetadataService
	StudyDownload studies.StudyDownloadService
	Reporting     reports.ReportingService
	Worklist      worklist.Service
	TokenManager  users.TokenManager
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services) {
	// The health probe stays outside the versioned prefix so container
	// smoke tests need no token.
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group(BasePath) // lookup in version file

	authenticated := Authentication(services.TokenManager)
	intakeRoles := RequireRole(users.RoleRadTech, users.RoleStaff, users.RoleAdmin)

	// Auth Routes
	authHandler := NewAuthHandler(services.Auth)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authenticated, authHandler.Me)

	// User Routes
	userHandler := NewUserHandler(services.Auth)
	v1.POST("/users", authenticated, RequireRole(users.RoleAdmin), userHandler.Create)
	v1.GET("/users", authenticated, RequireRole(users.RoleAdmin), userHandler.List)

	// Dashboard Routes
	worklistHandler := NewWorklistHandler(services.Worklist)
	v1.GET("/dashboard", authenticated, worklistHandler.Summary)

	// Patient Routes
	patientHandler := NewPatientHandler(services.Patient, services.Schedule, services.StudyMetadata, services.Reporting)
	v1.POST("/patients", authenticated, intakeRoles, patientHandler.Create)
	v1.GET("/patients", authenticated, intakeRoles, patientHandler.List)
	v1.GET("/patients/:id", authenticated, patientHandler.GetByID)
	v1.GET("/patients/:id/schedules", authenticated, patientHandler.ListSchedules)

	// Schedule Routes
	scheduleHandler := NewScheduleHandler(services.Schedule)
	v1.POST("/schedules", authenticated, intakeRoles, scheduleHandler.Create)
	v1.GET("/schedules", authenticated, scheduleHandler.List)

	// Report Routes
	reportHandler := NewReportHandler(services.Reporting)
	v1.POST("/schedules/:id/report", authenticated, RequireRole(users.RoleRadiologist), reportHandler.SignOff)
	v1.GET("/reports", authenticated, reportHandler.List)
	v1.GET("/reports/:id/pdf", authenticated, reportHandler.DownloadPdf)

	// Study Routes
	studyHandler := NewStudyHandler(
		services.StudyUpload,
		services.StudyMetadata,
		services.StudyDownload,
		services.Patient,
		services.Schedule,
	)
	v1.POST("/studies", authenticated, intakeRoles, studyHandler.Upload)
	v1.GET("/studies", authenticated, studyHandler.List)
	v1.GET("/studies/:id", authenticated, studyHandler.GetByID)
	v1.GET("/studies/:id/file", authenticated, studyHandler.DownloadByID)
	v1.GET("/studies/:id/attachments/:attachment_id/file", authenticated, studyHandler.DownloadAttachment)
	v1.PATCH("/studies/:id", authenticated, RequireRole(users.RoleRadiologist, users.RoleAdmin), studyHandler.Update)
}
