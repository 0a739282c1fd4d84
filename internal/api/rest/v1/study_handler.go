package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"

	"github.com/gin-gonic/gin"
)

// StudyHandler defines the interface for handling DICOM transfer operations
type StudyHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DownloadAttachment(ctx *gin.Context)
	Update(ctx *gin.Context)
}

// studyHandler struct holds the services
type studyHandler struct {
	studyUploadService   studies.StudyUploadService
	studyMetadataService studies.StudyMetadataService
	studyDownloadService studies.StudyDownloadService
	patientService       patients.PatientService
	scheduleService      schedules.ScheduleService
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(
	studyUploadService studies.StudyUploadService,
	studyMetadataService studies.StudyMetadataService,
	studyDownloadService studies.StudyDownloadService,
	patientService patients.PatientService,
	scheduleService schedules.ScheduleService,
) StudyHandler {
	return &studyHandler{
		studyUploadService:   studyUploadService,
		studyMetadataService: studyMetadataService,
		studyDownloadService: studyDownloadService,
		patientService:       patientService,
		scheduleService:      scheduleService,
	}
}

// Upload handles the POST request to transfer DICOM files in
// @Summary Upload DICOM files for a schedule
// @Description Store one or more DICOM files plus supporting attachments for a schedule. Header metadata is extracted best-effort and the schedule moves to uploaded.
// @Tags Study
// @Accept multipart/form-data
// @Produce json
// @Param schedule_id formData string true "Schedule ID"
// @Param exam_priority formData string false "Exam priority (routine, urgent, stat)"
// @Param clinical_history formData string false "Clinical history"
// @Param dicom_files formData file true "DICOM files"
// @Param attachment_files formData file false "Supporting attachments"
// @Success 201 {array} StudyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /studies [post]
func (handler *studyHandler) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "invalid form data"
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	cmd := studies.UploadStudyCommand{
		DicomFiles:      form.File["dicom_files"],
		AttachmentFiles: form.File["attachment_files"],
	}

	if scheduleIDs := form.Value["schedule_id"]; len(scheduleIDs) > 0 {
		cmd.ScheduleID = scheduleIDs[0]
	}
	if priorities := form.Value["exam_priority"]; len(priorities) > 0 {
		cmd.ExamPriority = priorities[0]
	}
	if histories := form.Value["clinical_history"]; len(histories) > 0 {
		cmd.ClinicalHistory = histories[0]
	}

	if cmd.ScheduleID == "" {
		var errorResponse ErrorResponse
		errorResponse.Message = "schedule_id is required"
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	created, err := handler.studyUploadService.Upload(ctx, cmd)
	if err != nil {
		var errorResponse ErrorResponse
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			errorResponse.Message = fmt.Sprintf("schedule with id %s not found", cmd.ScheduleID)
			ctx.JSON(http.StatusNotFound, errorResponse)
		case errors.Is(err, schedules.ErrInvalidTransition):
			errorResponse.Message = "schedule is already finalized"
			ctx.JSON(http.StatusConflict, errorResponse)
		case errors.Is(err, studies.ErrNoFiles):
			errorResponse.Message = "at least one DICOM file is required"
			ctx.JSON(http.StatusBadRequest, errorResponse)
		default:
			errorResponse.Message = fmt.Sprintf("error uploading study: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
		}
		return
	}

	ctx.JSON(http.StatusCreated, newStudyResponses(created))
}

// List handles the GET request to list studies with optional query parameters
// @Summary List studies
// @Description Fetch studies newest first. Filtering on status uploaded yields the review worklist.
// @Tags Study
// @Produce json
// @Param status query string false "Schedule status (scheduled, uploaded, finalized)"
// @Param priority query string false "Exam priority (routine, urgent, stat)"
// @Param patient_id query string false "Patient ID"
// @Success 200 {array} StudyResponse
// @Failure 500 {object} ErrorResponse
// @Router /studies [get]
func (handler *studyHandler) List(ctx *gin.Context) {
	query := &studies.StudyQuery{}

	if status := ctx.Query("status"); len(status) > 0 {
		query.ScheduleStatus = status
	}

	if priority := ctx.Query("priority"); len(priority) > 0 {
		query.Priority = priority
	}

	if patientID := ctx.Query("patient_id"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	records, err := handler.studyMetadataService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list studies"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newStudyResponses(records))
}

// GetByID handles the GET request for one study with its context
// @Summary Retrieve a study by ID
// @Description Fetch the study together with its attachments and the patient and schedule it belongs to.
// @Tags Study
// @Produce json
// @Param id path string true "Study ID"
// @Success 200 {object} StudyDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /studies/{id} [get]
func (handler *studyHandler) GetByID(ctx *gin.Context) {
	studyID := ctx.Param("id")

	study, err := handler.studyMetadataService.GetByID(ctx, studyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("study with id %s not found", studyID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	attachments, err := handler.studyMetadataService.ListAttachments(ctx, studyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list the study's attachments"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	patient, err := handler.patientService.GetByID(ctx, study.PatientID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not fetch the study's patient"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	schedule, err := handler.scheduleService.GetByID(ctx, study.ScheduleID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not fetch the study's schedule"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, StudyDetailResponse{
		StudyResponse: newStudyResponse(study),
		Attachments:   newAttachmentResponses(attachments),
		Patient:       newPatientResponse(patient),
		Schedule:      newScheduleResponse(schedule),
	})
}

// DownloadByID handles the GET request for a study's DICOM payload
// @Summary Download a study's DICOM file
// @Description Fetch the raw DICOM payload of the study.
// @Tags Study
// @Produce application/dicom
// @Param id path string true "Study ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /studies/{id}/file [get]
func (handler *studyHandler) DownloadByID(ctx *gin.Context) {
	studyID := ctx.Param("id")

	study, data, err := handler.studyDownloadService.DownloadByID(ctx, studyID)
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, studies.ErrStudyNotFound) {
			errorResponse.Message = fmt.Sprintf("study with id %s not found", studyID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("could not download study with id %s", studyID)
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+study.FileName)
	ctx.Data(http.StatusOK, "application/dicom", data)
}

// DownloadAttachment handles the GET request for an attachment's content
// @Summary Download a study attachment
// @Description Fetch the content of an attachment belonging to the study.
// @Tags Study
// @Produce application/octet-stream
// @Param id path string true "Study ID"
// @Param attachment_id path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /studies/{id}/attachments/{attachment_id}/file [get]
func (handler *studyHandler) DownloadAttachment(ctx *gin.Context) {
	studyID := ctx.Param("id")
	attachmentID := ctx.Param("attachment_id")

	attachment, data, err := handler.studyDownloadService.DownloadAttachment(ctx, studyID, attachmentID)
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, studies.ErrAttachmentNotFound) {
			errorResponse.Message = fmt.Sprintf("attachment with id %s not found", attachmentID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("could not download attachment with id %s", attachmentID)
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+attachment.FileName)
	ctx.Data(http.StatusOK, "application/octet-stream", data)
}

// Update handles the PATCH request to update a study
// @Summary Update a study
// @Description Apply a partial update. Setting reviewed stamps the caller as the reviewer.
// @Tags Study
// @Accept json
// @Produce json
// @Param id path string true "Study ID"
// @Param requestBody body UpdateStudyRequest true "Fields to update"
// @Success 200 {object} StudyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /studies/{id} [patch]
func (handler *studyHandler) Update(ctx *gin.Context) {
	studyID := ctx.Param("id")

	var request UpdateStudyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid update data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	study, err := handler.studyMetadataService.Update(ctx, studies.UpdateStudyCommand{
		StudyID:         studyID,
		ExamPriority:    request.ExamPriority,
		ClinicalHistory: request.ClinicalHistory,
		Reviewed:        request.Reviewed,
		Reviewer:        ctx.GetString(ContextUsername),
	})
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, studies.ErrStudyNotFound) {
			errorResponse.Message = fmt.Sprintf("study with id %s not found", studyID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("error updating study: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newStudyResponse(study))
}
