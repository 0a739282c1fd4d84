//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/stretchr/testify/require"
)

func registerCommand() patients.RegisterPatientCommand {
	return patients.RegisterPatientCommand{
		FirstName:     "Juan",
		MiddleName:    "Dela",
		LastName:      "Cruz",
		DateOfBirth:   time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:        "M",
		PhoneNumber:   "09171234567",
		PhysicianName: "Dr. Reyes",
		PaymentMode:   "cash",
	}
}

func TestPatientService_Register_AssignsSequentialCodes(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	first, err := services.PatientService.Register(ctx, registerCommand())
	require.NoError(t, err)
	require.Equal(t, "PAT-0001", first.PatientCode)

	second, err := services.PatientService.Register(ctx, registerCommand())
	require.NoError(t, err)
	require.Equal(t, "PAT-0002", second.PatientCode)
}

func TestPatientService_Register_Fail_MissingFields(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	cmd := registerCommand()
	cmd.PhoneNumber = ""

	patient, err := services.PatientService.Register(context.Background(), cmd)
	require.Error(t, err)
	require.Nil(t, patient)
}

func TestPatientService_GetByID_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	created, err := services.PatientService.Register(ctx, registerCommand())
	require.NoError(t, err)

	fetched, err := services.PatientService.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.PatientCode, fetched.PatientCode)
	require.Equal(t, "Juan Dela Cruz", fetched.FullName())
}

func TestPatientService_GetByID_Fail_Unknown(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	patient, err := services.PatientService.GetByID(context.Background(), "b2cda76c-4a31-4f3a-8e50-3c9f26d1a111")
	require.ErrorIs(t, err, patients.ErrPatientNotFound)
	require.Nil(t, patient)
}

func TestPatientService_List_FiltersByName(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, err := services.PatientService.Register(ctx, registerCommand())
	require.NoError(t, err)

	other := registerCommand()
	other.FirstName = "Liza"
	other.LastName = "Santos"
	_, err = services.PatientService.Register(ctx, other)
	require.NoError(t, err)

	query := patients.NewPatientQuery()
	query.Name = "santos"
	records, err := services.PatientService.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Santos", records[0].LastName)

	// A nil query falls back to defaults and returns everyone
	records, err = services.PatientService.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
}
