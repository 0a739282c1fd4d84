//go:build integration
// +build integration

package app

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookSchedule registers a patient and books a procedure for them
func bookSchedule(t *testing.T, services *TestServices) (*patients.Patient, *schedules.ProcedureSchedule) {
	t.Helper()
	ctx := context.Background()

	patient, err := services.PatientService.Register(ctx, registerCommand())
	require.NoError(t, err)

	schedule, err := services.ScheduleService.Schedule(ctx, scheduleCommand(patient.ID))
	require.NoError(t, err)

	return patient, schedule
}

// formFiles builds multipart file headers for the named field
func formFiles(t *testing.T, field string, names []string, content []byte) []*multipart.FileHeader {
	t.Helper()

	parts := make([]httputil.FilePart, 0, len(names))
	for _, name := range names {
		parts = append(parts, httputil.FilePart{Field: field, FileName: name, Content: content})
	}

	form, err := httputil.CreateMultiForm(nil, parts)
	require.NoError(t, err)
	return form.File[field]
}

func TestStudyUploadService_Upload_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	patient, schedule := bookSchedule(t, services)
	payload := []byte("synthetic pixel data, not a real DICOM header")

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID:      schedule.ID,
		ClinicalHistory: "Chronic cough, 3 weeks",
		DicomFiles:      formFiles(t, "dicom_files", []string{"scan1.dcm"}, payload),
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	study := created[0]
	assert.Equal(t, patient.ID, study.PatientID)
	assert.Equal(t, schedule.ID, study.ScheduleID)
	assert.Equal(t, "scan1.dcm", study.FileName)
	assert.Equal(t, int64(len(payload)), study.FileSize)
	assert.Equal(t, studies.PriorityRoutine, study.ExamPriority)
	assert.Equal(t, "Chronic cough, 3 weeks", study.ClinicalHistory)

	// Synthetic payloads carry no parseable header, the raw bytes are kept anyway
	assert.False(t, study.MetadataExtracted)
	stored, err := services.Connector.Download(ctx, study.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	// The schedule moved to uploaded
	updated, err := services.ScheduleService.GetByID(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, schedules.StatusUploaded, updated.Status)
}

func TestStudyUploadService_Upload_AttachmentsLandOnFirstStudy(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)
	payload := []byte("synthetic pixel data")

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID:      schedule.ID,
		DicomFiles:      formFiles(t, "dicom_files", []string{"scan1.dcm", "scan2.dcm"}, payload),
		AttachmentFiles: formFiles(t, "attachments", []string{"referral.jpg", "request.pdf"}, []byte("supporting file")),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	first, err := services.StudyMetadataService.ListAttachments(ctx, created[0].ID)
	require.NoError(t, err)
	require.Len(t, first, 2)

	typesByName := map[string]string{}
	for _, attachment := range first {
		typesByName[attachment.FileName] = attachment.FileType
	}
	assert.Equal(t, studies.AttachmentImage, typesByName["referral.jpg"])
	assert.Equal(t, studies.AttachmentDocument, typesByName["request.pdf"])

	second, err := services.StudyMetadataService.ListAttachments(ctx, created[1].ID)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestStudyUploadService_Upload_RepeatKeepsScheduleUploaded(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)
	payload := []byte("synthetic pixel data")

	_, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan1.dcm"}, payload),
	})
	require.NoError(t, err)

	_, err = services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan2.dcm"}, payload),
	})
	require.NoError(t, err)

	updated, err := services.ScheduleService.GetByID(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, schedules.StatusUploaded, updated.Status)

	records, err := services.StudyMetadataService.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStudyUploadService_Upload_Fail_NoFiles(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, schedule := bookSchedule(t, services)

	created, err := services.StudyUploadService.Upload(context.Background(), studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
	})
	require.ErrorIs(t, err, studies.ErrNoFiles)
	require.Nil(t, created)
}

func TestStudyUploadService_Upload_Fail_FinalizedSchedule(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)
	require.NoError(t, services.DBContext.ScheduleRepo.UpdateStatus(ctx, schedule.ID, schedules.StatusUploaded))
	require.NoError(t, services.DBContext.ScheduleRepo.UpdateStatus(ctx, schedule.ID, schedules.StatusFinalized))

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan1.dcm"}, []byte("late arrival")),
	})
	require.ErrorIs(t, err, schedules.ErrInvalidTransition)
	require.Nil(t, created)
}

func TestStudyUploadService_Upload_HonorsPriority(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID:   schedule.ID,
		ExamPriority: studies.PriorityStat,
		DicomFiles:   formFiles(t, "dicom_files", []string{"scan1.dcm"}, []byte("synthetic pixel data")),
	})
	require.NoError(t, err)
	assert.Equal(t, studies.PriorityStat, created[0].ExamPriority)
}

func TestStudyDownloadService_DownloadByID_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)
	payload := []byte("synthetic pixel data")

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan1.dcm"}, payload),
	})
	require.NoError(t, err)

	study, data, err := services.StudyDownloadService.DownloadByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created[0].ID, study.ID)
	assert.Equal(t, payload, data)
}

func TestStudyDownloadService_DownloadAttachment_Fail_WrongStudy(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID:      schedule.ID,
		DicomFiles:      formFiles(t, "dicom_files", []string{"scan1.dcm", "scan2.dcm"}, []byte("synthetic pixel data")),
		AttachmentFiles: formFiles(t, "attachments", []string{"request.pdf"}, []byte("supporting file")),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	attachments, err := services.StudyMetadataService.ListAttachments(ctx, created[0].ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)

	// The attachment belongs to the first study, fetching it through the
	// second must fail
	_, _, err = services.StudyDownloadService.DownloadAttachment(ctx, created[1].ID, attachments[0].ID)
	require.ErrorIs(t, err, studies.ErrAttachmentNotFound)

	attachment, data, err := services.StudyDownloadService.DownloadAttachment(ctx, created[0].ID, attachments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "request.pdf", attachment.FileName)
	assert.Equal(t, []byte("supporting file"), data)
}

func TestStudyMetadataService_Update_StampsReview(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)

	created, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan1.dcm"}, []byte("synthetic pixel data")),
	})
	require.NoError(t, err)

	urgent := studies.PriorityUrgent
	updated, err := services.StudyMetadataService.Update(ctx, studies.UpdateStudyCommand{
		StudyID:      created[0].ID,
		ExamPriority: &urgent,
		Reviewed:     true,
		Reviewer:     "Dr. Maria Santos",
	})
	require.NoError(t, err)
	assert.Equal(t, studies.PriorityUrgent, updated.ExamPriority)
	assert.Equal(t, "Dr. Maria Santos", updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)

	// Untouched fields survive a partial update
	fetched, err := services.StudyMetadataService.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "scan1.dcm", fetched.FileName)
	assert.Equal(t, studies.PriorityUrgent, fetched.ExamPriority)
}

func TestStudyMetadataService_List_FiltersByPriority(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, schedule := bookSchedule(t, services)

	_, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID:   schedule.ID,
		ExamPriority: studies.PriorityStat,
		DicomFiles:   formFiles(t, "dicom_files", []string{"scan1.dcm"}, []byte("synthetic pixel data")),
	})
	require.NoError(t, err)
	_, err = services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: schedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan2.dcm"}, []byte("synthetic pixel data")),
	})
	require.NoError(t, err)

	records, err := services.StudyMetadataService.List(ctx, &studies.StudyQuery{Priority: studies.PriorityStat})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "scan1.dcm", records[0].FileName)
}

func TestStudyMetadataService_ListAttachments_Fail_UnknownStudy(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	attachments, err := services.StudyMetadataService.ListAttachments(context.Background(), "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b")
	require.ErrorIs(t, err, studies.ErrStudyNotFound)
	require.Nil(t, attachments)
}
