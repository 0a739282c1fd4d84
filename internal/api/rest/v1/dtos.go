package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/domain/worklist"
)

// dateLayout is the wire format of date-only fields.
const dateLayout = "2006-01-02"

// timeLayout is the wire format of clock-time fields.
const timeLayout = "15:04"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse carries a human readable outcome message.
type InfoResponse struct {
	Message string `json:"message"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the account summary returned by auth and user endpoints.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse returns the issued token together with its owner.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest carries the fields for account creation.
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Password  string `json:"password" binding:"required"`
}

// Validate checks the fields gin binding cannot express.
func (r *CreateUserRequest) Validate() error {
	if r.Role != "" && !users.ValidRole(r.Role) {
		return fmt.Errorf("role must be one of %s", strings.Join(users.Roles, ", "))
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// RegisterPatientRequest carries the fields for patient intake.
type RegisterPatientRequest struct {
	FirstName              string `json:"first_name" binding:"required"`
	MiddleName             string `json:"middle_name"`
	LastName               string `json:"last_name" binding:"required"`
	DateOfBirth            string `json:"date_of_birth" binding:"required"`
	Gender                 string `json:"gender"`
	PhoneNumber            string `json:"phone_number" binding:"required"`
	EmailAddress           string `json:"email_address"`
	EmergencyContact       string `json:"emergency_contact"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	PhysicianName          string `json:"physician_name" binding:"required"`
	PhysicianEmail         string `json:"physician_email"`
	PhysicianPhone         string `json:"physician_phone"`
	PaymentMode            string `json:"payment_mode"`
}

// Validate checks the fields gin binding cannot express.
func (r *RegisterPatientRequest) Validate() error {
	if _, err := time.Parse(dateLayout, r.DateOfBirth); err != nil {
		return fmt.Errorf("date_of_birth must be YYYY-MM-DD")
	}
	return nil
}

// Command maps the request onto the intake command, applying the gender and
// payment mode defaults.
func (r *RegisterPatientRequest) Command() patients.RegisterPatientCommand {
	dateOfBirth, _ := time.Parse(dateLayout, r.DateOfBirth)

	gender := r.Gender
	if gender == "" {
		gender = patients.GenderOther
	}
	paymentMode := r.PaymentMode
	if paymentMode == "" {
		paymentMode = patients.PaymentCash
	}

	return patients.RegisterPatientCommand{
		FirstName:              r.FirstName,
		MiddleName:             r.MiddleName,
		LastName:               r.LastName,
		DateOfBirth:            dateOfBirth,
		Gender:                 gender,
		PhoneNumber:            r.PhoneNumber,
		EmailAddress:           r.EmailAddress,
		EmergencyContact:       r.EmergencyContact,
		EmergencyContactNumber: r.EmergencyContactNumber,
		PhysicianName:          r.PhysicianName,
		PhysicianEmail:         r.PhysicianEmail,
		PhysicianPhone:         r.PhysicianPhone,
		PaymentMode:            paymentMode,
	}
}

// PatientResponse is the patient summary returned by registry endpoints.
type PatientResponse struct {
	ID                     string    `json:"id"`
	PatientCode            string    `json:"patient_code"`
	FirstName              string    `json:"first_name"`
	MiddleName             string    `json:"middle_name,omitempty"`
	LastName               string    `json:"last_name"`
	FullName               string    `json:"full_name"`
	DateOfBirth            string    `json:"date_of_birth"`
	Age                    int       `json:"age"`
	Gender                 string    `json:"gender"`
	PhoneNumber            string    `json:"phone_number"`
	EmailAddress           string    `json:"email_address,omitempty"`
	EmergencyContact       string    `json:"emergency_contact,omitempty"`
	EmergencyContactNumber string    `json:"emergency_contact_number,omitempty"`
	PhysicianName          string    `json:"physician_name"`
	PhysicianEmail         string    `json:"physician_email,omitempty"`
	PhysicianPhone         string    `json:"physician_phone,omitempty"`
	PaymentMode            string    `json:"payment_mode"`
	CreatedAt              time.Time `json:"created_at"`
}

// PatientDetailResponse is the patient plus their imaging history.
type PatientDetailResponse struct {
	PatientResponse
	Studies []StudyResponse  `json:"studies"`
	Reports []ReportResponse `json:"reports"`
}

// ScheduleProcedureRequest carries the fields for booking a procedure.
type ScheduleProcedureRequest struct {
	PatientID           string `json:"patient_id" binding:"required"`
	ProcedureType       string `json:"procedure_type" binding:"required"`
	Date                string `json:"date" binding:"required"`
	StartTime           string `json:"time" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
}

// Validate checks the fields gin binding cannot express.
func (r *ScheduleProcedureRequest) Validate() error {
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, r.StartTime); err != nil {
		return fmt.Errorf("time must be HH:MM")
	}
	return nil
}

// Command maps the request onto the booking command.
func (r *ScheduleProcedureRequest) Command() schedules.ScheduleProcedureCommand {
	date, _ := time.Parse(dateLayout, r.Date)

	return schedules.ScheduleProcedureCommand{
		PatientID:           r.PatientID,
		ProcedureType:       r.ProcedureType,
		Date:                date,
		StartTime:           r.StartTime,
		SpecialInstructions: r.SpecialInstructions,
	}
}

// ScheduleResponse is the schedule summary returned by booking endpoints.
type ScheduleResponse struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patient_id"`
	StudyCode           string    `json:"study_code"`
	ProcedureType       string    `json:"procedure_type"`
	Date                string    `json:"date"`
	StartTime           string    `json:"time"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

// StudyResponse is the study summary returned by transfer endpoints. The
// storage key stays internal.
type StudyResponse struct {
	ID                string            `json:"id"`
	PatientID         string            `json:"patient_id"`
	ScheduleID        string            `json:"schedule_id"`
	FileName          string            `json:"file_name"`
	FileSize          int64             `json:"file_size"`
	ExamPriority      string            `json:"exam_priority"`
	ClinicalHistory   string            `json:"clinical_history,omitempty"`
	UploadTime        time.Time         `json:"upload_time"`
	MetadataExtracted bool              `json:"metadata_extracted"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	ReviewedBy        string            `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time        `json:"reviewed_at,omitempty"`
}

// AttachmentResponse is the attachment summary returned alongside studies.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	StudyID    string    `json:"study_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// StudyDetailResponse is the study plus its attachments and context.
type StudyDetailResponse struct {
	StudyResponse
	Attachments []AttachmentResponse `json:"attachments"`
	Patient     PatientResponse      `json:"patient"`
	Schedule    ScheduleResponse     `json:"schedule"`
}

// UpdateStudyRequest carries a partial study update. Absent fields stay
// untouched.
type UpdateStudyRequest struct {
	ExamPriority    *string `json:"exam_priority"`
	ClinicalHistory *string `json:"clinical_history"`
	Reviewed        bool    `json:"reviewed"`
}

// Validate checks the fields gin binding cannot express.
func (r *UpdateStudyRequest) Validate() error {
	if r.ExamPriority != nil {
		switch *r.ExamPriority {
		case studies.PriorityRoutine, studies.PriorityUrgent, studies.PriorityStat:
		default:
			return fmt.Errorf("exam_priority must be routine, urgent or stat")
		}
	}
	return nil
}

// SignOffRequest carries a radiologist's findings for one schedule.
type SignOffRequest struct {
	Findings   string `json:"findings" binding:"required"`
	Impression string `json:"impression" binding:"required"`
}

// ReportResponse is the report summary returned by reporting endpoints.
type ReportResponse struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	ScheduleID  string    `json:"schedule_id"`
	Findings    string    `json:"findings"`
	Impression  string    `json:"impression"`
	HasPdf      bool      `json:"has_pdf"`
	CreatedByID *string   `json:"created_by_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorklistSummaryResponse is the dashboard payload.
type WorklistSummaryResponse struct {
	PatientsCount      int64              `json:"patients_count"`
	StudiesCount       int64              `json:"studies_count"`
	UrgentStudiesCount int64              `json:"urgent_studies_count"`
	PendingReadsCount  int64              `json:"pending_reads_count"`
	TodaysSchedules    []ScheduleResponse `json:"todays_schedules"`
}

func newUserResponse(user *users.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func newPatientResponse(patient *patients.Patient) PatientResponse {
	return PatientResponse{
		ID:                     patient.ID,
		PatientCode:            patient.PatientCode,
		FirstName:              patient.FirstName,
		MiddleName:             patient.MiddleName,
		LastName:               patient.LastName,
		FullName:               patient.FullName(),
		DateOfBirth:            patient.DateOfBirth.Format(dateLayout),
		Age:                    patient.Age(time.Now()),
		Gender:                 patient.Gender,
		PhoneNumber:            patient.PhoneNumber,
		EmailAddress:           patient.EmailAddress,
		EmergencyContact:       patient.EmergencyContact,
		EmergencyContactNumber: patient.EmergencyContactNumber,
		PhysicianName:          patient.PhysicianName,
		PhysicianEmail:         patient.PhysicianEmail,
		PhysicianPhone:         patient.PhysicianPhone,
		PaymentMode:            patient.PaymentMode,
		CreatedAt:              patient.CreatedAt,
	}
}

func newScheduleResponse(schedule *schedules.ProcedureSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:                  schedule.ID,
		PatientID:           schedule.PatientID,
		StudyCode:           schedule.StudyCode,
		ProcedureType:       schedule.ProcedureType,
		Date:                schedule.Date.Format(dateLayout),
		StartTime:           schedule.StartTime,
		SpecialInstructions: schedule.SpecialInstructions,
		Status:              schedule.Status,
		CreatedAt:           schedule.CreatedAt,
	}
}

func newScheduleResponses(records []*schedules.ProcedureSchedule) []ScheduleResponse {
	responses := []ScheduleResponse{}
	for _, schedule := range records {
		responses = append(responses, newScheduleResponse(schedule))
	}
	return responses
}

func newStudyResponse(study *studies.Study) StudyResponse {
	return StudyResponse{
		ID:                study.ID,
		PatientID:         study.PatientID,
		ScheduleID:        study.ScheduleID,
		FileName:          study.FileName,
		FileSize:          study.FileSize,
		ExamPriority:      study.ExamPriority,
		ClinicalHistory:   study.ClinicalHistory,
		UploadTime:        study.UploadTime,
		MetadataExtracted: study.MetadataExtracted,
		Metadata:          study.Metadata,
		ReviewedBy:        study.ReviewedBy,
		ReviewedAt:        study.ReviewedAt,
	}
}

func newStudyResponses(records []*studies.Study) []StudyResponse {
	responses := []StudyResponse{}
	for _, study := range records {
		responses = append(responses, newStudyResponse(study))
	}
	return responses
}

func newAttachmentResponse(attachment *studies.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         attachment.ID,
		StudyID:    attachment.StudyID,
		FileName:   attachment.FileName,
		FileType:   attachment.FileType,
		FileSize:   attachment.FileSize,
		UploadedAt: attachment.UploadedAt,
	}
}

func newAttachmentResponses(records []*studies.Attachment) []AttachmentResponse {
	responses := []AttachmentResponse{}
	for _, attachment := range records {
		responses = append(responses, newAttachmentResponse(attachment))
	}
	return responses
}

func newReportResponse(report *reports.Report) ReportResponse {
	return ReportResponse{
		ID:          report.ID,
		PatientID:   report.PatientID,
		ScheduleID:  report.ScheduleID,
		Findings:    report.Findings,
		Impression:  report.Impression,
		HasPdf:      report.PdfKey != "",
		CreatedByID: report.CreatedByID,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

func newReportResponses(records []*reports.Report) []ReportResponse {
	responses := []ReportResponse{}
	for _, report := range records {
		responses = append(responses, newReportResponse(report))
	}
	return responses
}

func newWorklistSummaryResponse(summary *worklist.Summary) WorklistSummaryResponse {
	return WorklistSummaryResponse{
		PatientsCount:      summary.PatientsCount,
		StudiesCount:       summary.StudiesCount,
		UrgentStudiesCount: summary.UrgentStudiesCount,
		PendingReadsCount:  summary.PendingReadsCount,
		TodaysSchedules:    newScheduleResponses(summary.TodaysSchedules),
	}
}
