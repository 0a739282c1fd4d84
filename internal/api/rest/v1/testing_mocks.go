//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/domain/worklist"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password, clientAddr string) (*users.Session, error) {
	args := m.Called(ctx, username, password, clientAddr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Session), args.Error(1)
}

func (m *MockAuthService) GetByID(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) Create(ctx context.Context, cmd users.CreateUserCommand) (*users.User, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) List(ctx context.Context) ([]*users.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

// MockTokenManager is a mock implementation of TokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Issue(user *users.User) (string, int64, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTokenManager) Verify(token string) (*users.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.TokenClaims), args.Error(1)
}

// MockPatientService is a mock implementation of PatientService
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) Register(ctx context.Context, cmd patients.RegisterPatientCommand) (*patients.Patient, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patients.Patient), args.Error(1)
}

func (m *MockPatientService) List(ctx context.Context, query *patients.PatientQuery) ([]*patients.Patient, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*patients.Patient), args.Error(1)
}

func (m *MockPatientService) GetByID(ctx context.Context, patientID string) (*patients.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patients.Patient), args.Error(1)
}

// MockScheduleService is a mock implementation of ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Schedule(ctx context.Context, cmd schedules.ScheduleProcedureCommand) (*schedules.ProcedureSchedule, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedules.ProcedureSchedule), args.Error(1)
}

func (m *MockScheduleService) List(ctx context.Context, query *schedules.ScheduleQuery) ([]*schedules.ProcedureSchedule, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedules.ProcedureSchedule), args.Error(1)
}

func (m *MockScheduleService) GetByID(ctx context.Context, scheduleID string) (*schedules.ProcedureSchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedules.ProcedureSchedule), args.Error(1)
}

func (m *MockScheduleService) ListByPatient(ctx context.Context, patientID string) ([]*schedules.ProcedureSchedule, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedules.ProcedureSchedule), args.Error(1)
}

// MockStudyUploadService is a mock implementation of StudyUploadService
type MockStudyUploadService struct {
	mock.Mock
}

func (m *MockStudyUploadService) Upload(ctx context.Context, cmd studies.UploadStudyCommand) ([]*studies.Study, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*studies.Study), args.Error(1)
}

// MockStudyMetadataService is a mock implementation of StudyMetadataService
type MockStudyMetadataService struct {
	mock.Mock
}

func (m *MockStudyMetadataService) List(ctx context.Context, query *studies.StudyQuery) ([]*studies.Study, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*studies.Study), args.Error(1)
}

func (m *MockStudyMetadataService) GetByID(ctx context.Context, studyID string) (*studies.Study, error) {
	args := m.Called(ctx, studyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studies.Study), args.Error(1)
}

func (m *MockStudyMetadataService) ListByPatient(ctx context.Context, patientID string) ([]*studies.Study, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*studies.Study), args.Error(1)
}

func (m *MockStudyMetadataService) ListAttachments(ctx context.Context, studyID string) ([]*studies.Attachment, error) {
	args := m.Called(ctx, studyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*studies.Attachment), args.Error(1)
}

func (m *MockStudyMetadataService) Update(ctx context.Context, cmd studies.UpdateStudyCommand) (*studies.Study, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*studies.Study), args.Error(1)
}

// MockStudyDownloadService is a mock implementation of StudyDownloadService
type MockStudyDownloadService struct {
	mock.Mock
}

func (m *MockStudyDownloadService) DownloadByID(ctx context.Context, studyID string) (*studies.Study, []byte, error) {
	args := m.Called(ctx, studyID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*studies.Study), args.Get(1).([]byte), args.Error(2)
}

func (m *MockStudyDownloadService) DownloadAttachment(ctx context.Context, studyID, attachmentID string) (*studies.Attachment, []byte, error) {
	args := m.Called(ctx, studyID, attachmentID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*studies.Attachment), args.Get(1).([]byte), args.Error(2)
}

// MockReportingService is a mock implementation of ReportingService
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) SignOff(ctx context.Context, cmd reports.SignOffCommand) (*reports.SignedReport, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.SignedReport), args.Error(1)
}

func (m *MockReportingService) List(ctx context.Context, query *reports.ReportQuery) ([]*reports.Report, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reports.Report), args.Error(1)
}

func (m *MockReportingService) GetByID(ctx context.Context, reportID string) (*reports.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.Report), args.Error(1)
}

func (m *MockReportingService) DownloadPdf(ctx context.Context, reportID string) (*reports.Report, []byte, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*reports.Report), args.Get(1).([]byte), args.Error(2)
}

// MockWorklistService is a mock implementation of the worklist Service
type MockWorklistService struct {
	mock.Mock
}

func (m *MockWorklistService) Summary(ctx context.Context, day time.Time) (*worklist.Summary, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worklist.Summary), args.Error(1)
}
