package studies

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Attachment file type constants
const (
	AttachmentImage    = "image"
	AttachmentDocument = "document"
	AttachmentVideo    = "video"
)

// ErrAttachmentNotFound indicates the requested attachment does not exist.
var ErrAttachmentNotFound = errors.New("attachment not found")

// Attachment entity holds a supporting file uploaded alongside a study
// (referrals, prior reports, photos).
type Attachment struct {
	ID         string    `validate:"required,uuid4"`
	StudyID    string    `validate:"required,uuid4"`
	ObjectKey  string    `validate:"required,max=500"`
	FileName   string    `validate:"required,max=255"`
	FileType   string    `validate:"required,oneof=image document video"`
	FileSize   int64     `validate:"required,min=1"`
	UploadedAt time.Time `validate:"required"`
}

// Validate for validating the Attachment struct
func (a *Attachment) Validate() error {
	validate := validator.New()

	err := validate.Struct(a)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// ClassifyAttachment maps a file name to an attachment type by extension.
func ClassifyAttachment(fileName string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "jpg", "jpeg", "png", "gif", "bmp":
		return AttachmentImage
	case "mp4", "avi", "mov", "mkv":
		return AttachmentVideo
	default:
		return AttachmentDocument
	}
}

// AttachmentObjectKey builds the storage key for an attachment under its
// study's directory. The original file name is kept.
func AttachmentObjectKey(studyID, fileName string) string {
	return fmt.Sprintf("attachments/study_%s/%s", studyID, filepath.Base(fileName))
}
