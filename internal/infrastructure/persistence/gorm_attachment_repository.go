package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/infrastructure/persistence/models"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAttachmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAttachmentRepository creates a new GORM-based AttachmentRepository implementation
func NewGormAttachmentRepository(db *gorm.DB, logger logger.Logger) (studies.AttachmentRepository, error) {
	return &gormAttachmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAttachmentRepository) Create(ctx context.Context, attachment *studies.Attachment) error {
	// Validate domain entity (business rules)
	if err := attachment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.AttachmentModel{}
	model.FromDomain(attachment)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	r.logger.Info("Created attachment with id ", attachment.ID)
	return nil
}

func (r *gormAttachmentRepository) GetByID(ctx context.Context, attachmentID string) (*studies.Attachment, error) {
	var model models.AttachmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", attachmentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attachment with ID %s: %w", attachmentID, studies.ErrAttachmentNotFound)
		}
		return nil, fmt.Errorf("failed to fetch attachment: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormAttachmentRepository) ListByStudy(ctx context.Context, studyID string) ([]*studies.Attachment, error) {
	var modelList []*models.AttachmentModel
	err := r.db.WithContext(ctx).
		Where("study_id = ?", studyID).
		Order("uploaded_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachments: %w", err)
	}

	// Convert to domain models
	domainList := make([]*studies.Attachment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
