package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormReportRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReportRepository creates a new GORM-based ReportRepository implementation
func NewGormReportRepository(db *gorm.DB, logger logger.Logger) (reports.ReportRepository, error) {
	return &gormReportRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormReportRepository) Create(ctx context.Context, report *reports.Report) error {
	// Validate domain entity (business rules)
	if err := report.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.ReportModel{}
	model.FromDomain(report)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	r.logger.Info("Created report with id ", report.ID)
	return nil
}

func (r *gormReportRepository) GetByID(ctx context.Context, reportID string) (*reports.Report, error) {
	var model models.ReportModel
	if err := r.db.WithContext(ctx).Where("id = ?", reportID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report with ID %s: %w", reportID, reports.ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormReportRepository) GetBySchedule(ctx context.Context, scheduleID string) (*reports.Report, error) {
	var model models.ReportModel
	if err := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report for schedule %s: %w", scheduleID, reports.ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormReportRepository) List(ctx context.Context, query *reports.ReportQuery) ([]*reports.Report, error) {
	var modelList []*models.ReportModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ReportModel{})

	// Apply filters
	if query != nil && query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}

	if err := dbQuery.Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	return toDomainReports(modelList), nil
}

func (r *gormReportRepository) ListByPatient(ctx context.Context, patientID string) ([]*reports.Report, error) {
	var modelList []*models.ReportModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	return toDomainReports(modelList), nil
}

func (r *gormReportRepository) UpdateByID(ctx context.Context, report *reports.Report) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ReportModel{}
	model.FromDomain(report)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	r.logger.Info("Updated report with id ", report.ID)
	return nil
}

func toDomainReports(modelList []*models.ReportModel) []*reports.Report {
	domainList := make([]*reports.Report, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
