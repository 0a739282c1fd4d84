//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientPostgresRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	patient := CreateTestPatient(t, "")

	err := ctx.PatientRepo.Create(context.Background(), patient)
	require.NoError(t, err)
	assert.Equal(t, "PAT-0001", patient.PatientCode)

	// Verify by fetching
	fetchedPatient, err := ctx.PatientRepo.GetByID(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, fetchedPatient.ID)
	assert.Equal(t, patient.PatientCode, fetchedPatient.PatientCode)
}

func TestPatientPostgresRepository_SequentialCodes(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	first := CreateTestPatient(t, "")
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), first))

	second := CreateTestPatient(t, "")
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), second))

	assert.Equal(t, "PAT-0001", first.PatientCode)
	assert.Equal(t, "PAT-0002", second.PatientCode)
}

func TestPatientPostgresRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	require.NoError(t, ctx.PatientRepo.Create(context.Background(), CreateTestPatient(t, "")))

	santos := CreateTestPatient(t, "")
	santos.FirstName = "Maria"
	santos.LastName = "Santos"
	require.NoError(t, ctx.PatientRepo.Create(context.Background(), santos))

	// Case-insensitive name search
	query := patients.NewPatientQuery()
	query.Name = "SANTOS"
	list, err := ctx.PatientRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Santos", list[0].LastName)
}

func TestPatientPostgresRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	_, err := ctx.PatientRepo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
	assert.ErrorIs(t, err, patients.ErrPatientNotFound)
}
