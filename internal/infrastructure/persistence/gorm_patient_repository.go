package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPatientRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPatientRepository creates a new GORM-based PatientRepository implementation
func NewGormPatientRepository(db *gorm.DB, logger logger.Logger) (patients.PatientRepository, error) {
	return &gormPatientRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPatientRepository) Create(ctx context.Context, patient *patients.Patient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Assign the next sequential code in the same transaction as the
		// insert so concurrent registrations cannot share a code.
		if patient.PatientCode == "" {
			lastCode, err := lastPatientCode(tx)
			if err != nil {
				return err
			}
			patient.PatientCode = patients.NextCode(lastCode)
		}

		// Validate domain entity (business rules)
		if err := patient.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Convert to GORM model
		model := &models.PatientModel{}
		model.FromDomain(patient)

		// Persist to database
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Created patient with code ", patient.PatientCode)
	return nil
}

// lastPatientCode returns the highest assigned patient code, ordering by
// length first so codes beyond four digits still sort numerically.
func lastPatientCode(tx *gorm.DB) (string, error) {
	var model models.PatientModel
	err := tx.Model(&models.PatientModel{}).
		Order("LENGTH(patient_code) DESC, patient_code DESC").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch last patient code: %w", err)
	}
	return model.PatientCode, nil
}

func (r *gormPatientRepository) List(ctx context.Context, query *patients.PatientQuery) ([]*patients.Patient, error) {
	var modelList []*models.PatientModel
	dbQuery := r.db.WithContext(ctx).Model(&models.PatientModel{})

	// Apply filters
	if query != nil && query.Name != "" {
		pattern := "%" + strings.ToLower(query.Name) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(patient_code) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	// Newest first
	dbQuery = dbQuery.Order("created_at desc")

	// Pagination
	if query != nil && query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query != nil && query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}

	// Convert to domain models
	domainList := make([]*patients.Patient, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPatientRepository) GetByID(ctx context.Context, patientID string) (*patients.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).Where("id = ?", patientID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with ID %s: %w", patientID, patients.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPatientRepository) GetByCode(ctx context.Context, code string) (*patients.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).Where("patient_code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient %s: %w", code, patients.ErrPatientNotFound)
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPatientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PatientModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}
