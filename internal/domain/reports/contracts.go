package reports

import (
	"context"
	"time"
)

// ReportQuery carries optional filters for listing reports.
type ReportQuery struct {
	PatientID string
}

// SignOffCommand carries a radiologist's findings for one schedule. Findings
// and Impression arrive as raw editor markup and are cleaned before storage.
type SignOffCommand struct {
	ScheduleID string
	Findings   string
	Impression string
	AuthorID   string
	AuthorName string
}

// SignedReport is the result of a sign-off: the stored report plus the
// rendered PDF document.
type SignedReport struct {
	Report *Report
	Pdf    []byte
}

// ReportingService defines radiologist reporting operations.
type ReportingService interface {
	// SignOff upserts the schedule's report, finalizes the schedule,
	// renders and stores the PDF and notifies the referring physician in
	// the background.
	SignOff(ctx context.Context, cmd SignOffCommand) (*SignedReport, error)

	// List retrieves reports newest first, honoring the query filters.
	List(ctx context.Context, query *ReportQuery) ([]*Report, error)

	// GetByID retrieves a report by ID.
	GetByID(ctx context.Context, reportID string) (*Report, error)

	// DownloadPdf retrieves a report and its stored PDF document.
	DownloadPdf(ctx context.Context, reportID string) (*Report, []byte, error)
}

// ReportRepository defines the interface for report persistence
type ReportRepository interface {
	// Create adds a new Report to the database
	Create(ctx context.Context, report *Report) error
	// GetByID retrieves a Report from the database by ID
	GetByID(ctx context.Context, reportID string) (*Report, error)
	// GetBySchedule retrieves the Report of one schedule
	GetBySchedule(ctx context.Context, scheduleID string) (*Report, error)
	// List lists Reports newest first with optional filters
	List(ctx context.Context, query *ReportQuery) ([]*Report, error)
	// ListByPatient lists all Reports of one patient, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*Report, error)
	// UpdateByID updates a Report in the database by ID
	UpdateByID(ctx context.Context, report *Report) error
}

// Document is the renderable content of a signed report.
type Document struct {
	PatientCode     string
	PatientName     string
	PatientAge      int
	Gender          string
	DateOfBirth     time.Time
	StudyCode       string
	ProcedureType   string
	ProcedureDate   time.Time
	ClinicalHistory string
	Findings        string
	Impression      string
	RadiologistName string
	SignedAt        time.Time
}

// ReportRenderer produces the PDF document for a signed report.
type ReportRenderer interface {
	Render(doc *Document) ([]byte, error)
}

// ReportNotice is the content of a report-ready notification.
type ReportNotice struct {
	PhysicianName  string
	PhysicianEmail string
	PatientName    string
	PatientCode    string
	StudyCode      string
	ProcedureType  string
	SignedAt       time.Time
}

// Notifier sends report-ready notices to referring physicians.
type Notifier interface {
	ReportReady(ctx context.Context, notice *ReportNotice) error
}
