package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormScheduleRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormScheduleRepository creates a new GORM-based ScheduleRepository implementation
func NewGormScheduleRepository(db *gorm.DB, logger logger.Logger) (schedules.ScheduleRepository, error) {
	return &gormScheduleRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormScheduleRepository) Create(ctx context.Context, schedule *schedules.ProcedureSchedule) error {
	// Validate domain entity (business rules)
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.ScheduleModel{}
	model.FromDomain(schedule)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	r.logger.Info("Created schedule with study code ", schedule.StudyCode)
	return nil
}

func (r *gormScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*schedules.ProcedureSchedule, error) {
	var model models.ScheduleModel
	if err := r.db.WithContext(ctx).Where("id = ?", scheduleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("schedule with ID %s: %w", scheduleID, schedules.ErrScheduleNotFound)
		}
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormScheduleRepository) List(ctx context.Context, query *schedules.ScheduleQuery) ([]*schedules.ProcedureSchedule, error) {
	var modelList []*models.ScheduleModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ScheduleModel{})

	// Apply filters
	if query != nil {
		if query.Status != "" {
			dbQuery = dbQuery.Where("status = ?", query.Status)
		}
		if query.PatientID != "" {
			dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
		}
		if query.Date != nil {
			start, end := dayBounds(*query.Date)
			dbQuery = dbQuery.Where("date >= ? AND date < ?", start, end)
		}
	}

	if err := dbQuery.Order("date asc, start_time asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	return toDomainSchedules(modelList), nil
}

func (r *gormScheduleRepository) ListByPatient(ctx context.Context, patientID string) ([]*schedules.ProcedureSchedule, error) {
	var modelList []*models.ScheduleModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date desc, start_time desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	return toDomainSchedules(modelList), nil
}

func (r *gormScheduleRepository) ListByDate(ctx context.Context, date time.Time) ([]*schedules.ProcedureSchedule, error) {
	var modelList []*models.ScheduleModel
	start, end := dayBounds(date)
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("start_time asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	return toDomainSchedules(modelList), nil
}

// CountByStudyCodePrefix counts schedules whose study code starts with the
// given initials prefix. The count seeds the next sequence number, keeping
// study codes unique across patients who happen to share initials.
func (r *gormScheduleRepository) CountByStudyCodePrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScheduleModel{}).
		Where("study_code LIKE ?", prefix+"-%").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return count, nil
}

func (r *gormScheduleRepository) CountByStatuses(ctx context.Context, statuses []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScheduleModel{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return count, nil
}

func (r *gormScheduleRepository) UpdateStatus(ctx context.Context, scheduleID string, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.ScheduleModel{}).
		Where("id = ?", scheduleID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update schedule status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("schedule with ID %s: %w", scheduleID, schedules.ErrScheduleNotFound)
	}

	r.logger.Info("Updated schedule ", scheduleID, " to status ", status)
	return nil
}

// dayBounds returns the half open [midnight, next midnight) range of the day
// containing t, in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func toDomainSchedules(modelList []*models.ScheduleModel) []*schedules.ProcedureSchedule {
	domainList := make([]*schedules.ProcedureSchedule, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
