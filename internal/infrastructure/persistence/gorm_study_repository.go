package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormStudyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStudyRepository creates a new GORM-based StudyRepository implementation
func NewGormStudyRepository(db *gorm.DB, logger logger.Logger) (studies.StudyRepository, error) {
	return &gormStudyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormStudyRepository) Create(ctx context.Context, study *studies.Study) error {
	// Validate domain entity (business rules)
	if err := study.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.StudyModel{}
	if err := model.FromDomain(study); err != nil {
		return err
	}

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create study: %w", err)
	}

	r.logger.Info("Created study with id ", study.ID)
	return nil
}

func (r *gormStudyRepository) GetByID(ctx context.Context, studyID string) (*studies.Study, error) {
	var model models.StudyModel
	if err := r.db.WithContext(ctx).Where("id = ?", studyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("study with ID %s: %w", studyID, studies.ErrStudyNotFound)
		}
		return nil, fmt.Errorf("failed to fetch study: %w", err)
	}
	return model.ToDomain()
}

func (r *gormStudyRepository) List(ctx context.Context, query *studies.StudyQuery) ([]*studies.Study, error) {
	var modelList []*models.StudyModel
	dbQuery := r.db.WithContext(ctx).Model(&models.StudyModel{})

	// Apply filters
	if query != nil {
		if query.ScheduleStatus != "" {
			dbQuery = dbQuery.
				Joins("JOIN procedure_schedules ON procedure_schedules.id = studies.schedule_id").
				Where("procedure_schedules.status = ?", query.ScheduleStatus)
		}
		if query.Priority != "" {
			dbQuery = dbQuery.Where("studies.exam_priority = ?", query.Priority)
		}
		if query.PatientID != "" {
			dbQuery = dbQuery.Where("studies.patient_id = ?", query.PatientID)
		}
	}

	if err := dbQuery.Order("studies.upload_time desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch studies: %w", err)
	}

	return toDomainStudies(modelList)
}

func (r *gormStudyRepository) ListByPatient(ctx context.Context, patientID string) ([]*studies.Study, error) {
	var modelList []*models.StudyModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("upload_time desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch studies: %w", err)
	}

	return toDomainStudies(modelList)
}

func (r *gormStudyRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]*studies.Study, error) {
	var modelList []*models.StudyModel
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("upload_time asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch studies: %w", err)
	}

	return toDomainStudies(modelList)
}

func (r *gormStudyRepository) UpdateByID(ctx context.Context, study *studies.Study) error {
	if err := study.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.StudyModel{}
	if err := model.FromDomain(study); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update study: %w", err)
	}

	r.logger.Info("Updated study with id ", study.ID)
	return nil
}

func (r *gormStudyRepository) CountUrgentUploaded(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StudyModel{}).
		Joins("JOIN procedure_schedules ON procedure_schedules.id = studies.schedule_id").
		Where("procedure_schedules.status = ?", schedules.StatusUploaded).
		Where("studies.exam_priority IN ?", []string{studies.PriorityUrgent, studies.PriorityStat}).
		Distinct("studies.schedule_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count urgent studies: %w", err)
	}
	return count, nil
}

func toDomainStudies(modelList []*models.StudyModel) ([]*studies.Study, error) {
	domainList := make([]*studies.Study, len(modelList))
	for i, model := range modelList {
		study, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		domainList[i] = study
	}
	return domainList, nil
}
