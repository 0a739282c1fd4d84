//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklistService_Summary_Empty(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	summary, err := services.WorklistService.Summary(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, summary.PatientsCount)
	assert.Zero(t, summary.StudiesCount)
	assert.Zero(t, summary.UrgentStudiesCount)
	assert.Zero(t, summary.PendingReadsCount)
	assert.Empty(t, summary.TodaysSchedules)
}

func TestWorklistService_Summary_CountsWork(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	// One stat upload pending a read, two DICOM files on the same schedule
	_, statSchedule := bookSchedule(t, services)
	_, err := services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID:   statSchedule.ID,
		ExamPriority: studies.PriorityStat,
		DicomFiles:   formFiles(t, "dicom_files", []string{"scan1.dcm", "scan1b.dcm"}, []byte("synthetic pixel data")),
	})
	require.NoError(t, err)

	// One routine upload already reported on
	_, routineSchedule := bookSchedule(t, services)
	_, err = services.StudyUploadService.Upload(ctx, studies.UploadStudyCommand{
		ScheduleID: routineSchedule.ID,
		DicomFiles: formFiles(t, "dicom_files", []string{"scan2.dcm"}, []byte("synthetic pixel data")),
	})
	require.NoError(t, err)
	_, err = services.ReportingService.SignOff(ctx, signOffCommand(routineSchedule.ID))
	require.NoError(t, err)

	// One booking for later today
	patient, err := services.PatientService.Register(ctx, registerCommand())
	require.NoError(t, err)
	todayCmd := scheduleCommand(patient.ID)
	todayCmd.Date = time.Now()
	today, err := services.ScheduleService.Schedule(ctx, todayCmd)
	require.NoError(t, err)

	summary, err := services.WorklistService.Summary(ctx, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.PatientsCount)
	// Studies are counted per transferred schedule, not per DICOM file
	assert.Equal(t, int64(2), summary.StudiesCount)
	assert.Equal(t, int64(1), summary.UrgentStudiesCount)
	assert.Equal(t, int64(1), summary.PendingReadsCount)
	require.Len(t, summary.TodaysSchedules, 1)
	assert.Equal(t, today.ID, summary.TodaysSchedules[0].ID)
}
