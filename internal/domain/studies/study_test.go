//go:build unit
// +build unit

package studies

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudy() *Study {
	return &Study{
		ID:           uuid.NewString(),
		PatientID:    uuid.NewString(),
		ScheduleID:   uuid.NewString(),
		ObjectKey:    "dicom_files/patient_PAT-0001/0123456789abcdef.dcm",
		FileName:     "chest_pa.dcm",
		FileSize:     2048,
		ExamPriority: PriorityRoutine,
		UploadTime:   time.Now(),
	}
}

func TestStudy_Validate(t *testing.T) {
	t.Run("valid study", func(t *testing.T) {
		require.NoError(t, validStudy().Validate())
	})

	t.Run("unknown priority", func(t *testing.T) {
		s := validStudy()
		s.ExamPriority = "asap"
		require.Error(t, s.Validate())
	})

	t.Run("zero file size", func(t *testing.T) {
		s := validStudy()
		s.FileSize = 0
		require.Error(t, s.Validate())
	})

	t.Run("missing object key", func(t *testing.T) {
		s := validStudy()
		s.ObjectKey = ""
		require.Error(t, s.Validate())
	})
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("PAT-0007", "chest_pa.DCM")

	assert.True(t, strings.HasPrefix(key, "dicom_files/patient_PAT-0007/"), key)
	assert.True(t, strings.HasSuffix(key, ".dcm"), key)

	name := strings.TrimSuffix(strings.TrimPrefix(key, "dicom_files/patient_PAT-0007/"), ".dcm")
	assert.Len(t, name, 16)

	t.Run("unique per call", func(t *testing.T) {
		assert.NotEqual(t, key, NewObjectKey("PAT-0007", "chest_pa.DCM"))
	})

	t.Run("extensionless defaults to dcm", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(NewObjectKey("PAT-0001", "IMAGE0001"), ".dcm"))
	})
}

func TestClassifyAttachment(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"referral.jpg", AttachmentImage},
		{"photo.PNG", AttachmentImage},
		{"scan.bmp", AttachmentImage},
		{"walkthrough.mp4", AttachmentVideo},
		{"capture.MOV", AttachmentVideo},
		{"request.pdf", AttachmentDocument},
		{"notes.txt", AttachmentDocument},
		{"no_extension", AttachmentDocument},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAttachment(tt.fileName))
		})
	}
}

func TestAttachmentObjectKey(t *testing.T) {
	key := AttachmentObjectKey("study-123", "referral.pdf")
	assert.Equal(t, "attachments/study_study-123/referral.pdf", key)

	t.Run("strips directories from the name", func(t *testing.T) {
		key := AttachmentObjectKey("study-123", "../../etc/passwd")
		assert.Equal(t, "attachments/study_study-123/passwd", key)
	})
}

func TestAttachment_Validate(t *testing.T) {
	valid := &Attachment{
		ID:         uuid.NewString(),
		StudyID:    uuid.NewString(),
		ObjectKey:  "attachments/study_1/referral.pdf",
		FileName:   "referral.pdf",
		FileType:   AttachmentDocument,
		FileSize:   100,
		UploadedAt: time.Now(),
	}
	require.NoError(t, valid.Validate())

	invalid := *valid
	invalid.FileType = "spreadsheet"
	require.Error(t, invalid.Validate())
}
