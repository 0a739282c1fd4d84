//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSqliteRepository_CreateAndGetBySchedule(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	patient := CreateTestPatient(t, "")
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), patient))
	schedule := CreateTestSchedule(t, patient.ID, "JDC-0001")
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	report := CreateTestReport(t, patient.ID, schedule.ID)
	require.NoError(t, ctx.ReportRepo.Create(context.Background(), report))

	fetchedReport, err := ctx.ReportRepo.GetBySchedule(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, fetchedReport.ID)
	assert.Equal(t, report.Findings, fetchedReport.Findings)
}

func TestReportSqliteRepository_Create_InvalidReport(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	report := &reports.Report{} // Invalid - missing required fields

	err := ctx.ReportRepo.Create(context.Background(), report)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestReportSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.ReportRepo.GetByID(context.Background(), "non-existent-id")
	assert.Error(t, err)
	assert.ErrorIs(t, err, reports.ErrReportNotFound)
}

func TestReportSqliteRepository_GetBySchedule_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.ReportRepo.GetBySchedule(context.Background(), "non-existent-id")
	assert.Error(t, err)
	assert.ErrorIs(t, err, reports.ErrReportNotFound)
}

func TestReportSqliteRepository_List_FilterByPatient(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	first := CreateTestPatient(t, "")
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), first))
	second := CreateTestPatient(t, "")
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), second))

	firstSchedule := CreateTestSchedule(t, first.ID, "JDC-0001")
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), firstSchedule))
	secondSchedule := CreateTestSchedule(t, second.ID, "JDC-0002")
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), secondSchedule))

	require.NoError(t, ctx.ReportRepo.Create(context.Background(), CreateTestReport(t, first.ID, firstSchedule.ID)))
	require.NoError(t, ctx.ReportRepo.Create(context.Background(), CreateTestReport(t, second.ID, secondSchedule.ID)))

	list, err := ctx.ReportRepo.List(context.Background(), &reports.ReportQuery{PatientID: first.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].PatientID)
}

func TestReportSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	patient := CreateTestPatient(t, "")
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), patient))
	schedule := CreateTestSchedule(t, patient.ID, "JDC-0001")
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	report := CreateTestReport(t, patient.ID, schedule.ID)
	require.NoError(t, ctx.ReportRepo.Create(context.Background(), report))

	report.Impression = "Amended: minimal left pleural effusion."
	report.PdfKey = "reports/Report_JDC-0001.pdf"
	require.NoError(t, ctx.ReportRepo.UpdateByID(context.Background(), report))

	fetchedReport, err := ctx.ReportRepo.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Impression, fetchedReport.Impression)
	assert.Equal(t, report.PdfKey, fetchedReport.PdfKey)
}
