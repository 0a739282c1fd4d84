package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/studies"
	"github.com/jtsigarra/xferdx/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// PatientHandler defines the interface for handling patient registry operations
type PatientHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	ListSchedules(ctx *gin.Context)
}

// patientHandler struct holds the services
type patientHandler struct {
	patientService       patients.PatientService
	scheduleService      schedules.ScheduleService
	studyMetadataService studies.StudyMetadataService
	reportingService     reports.ReportingService
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(
	patientService patients.PatientService,
	scheduleService schedules.ScheduleService,
	studyMetadataService studies.StudyMetadataService,
	reportingService reports.ReportingService,
) PatientHandler {
	return &patientHandler{
		patientService:       patientService,
		scheduleService:      scheduleService,
		studyMetadataService: studyMetadataService,
		reportingService:     reportingService,
	}
}

// Create handles the POST request to register a patient
// @Summary Register a patient
// @Description Register a patient. The patient code is assigned sequentially and returned in the response.
// @Tags Patient
// @Accept json
// @Produce json
// @Param requestBody body RegisterPatientRequest true "Patient data"
// @Success 201 {object} PatientResponse
// @Failure 400 {object} ErrorResponse
// @Router /patients [post]
func (handler *patientHandler) Create(ctx *gin.Context) {
	var request RegisterPatientRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid patient data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	patient, err := handler.patientService.Register(ctx, request.Command())
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error registering patient: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, newPatientResponse(patient))
}

// List handles the GET request to list patients with optional query parameters
// @Summary List patients
// @Description Fetch patients newest first, optionally filtered by a name or code fragment.
// @Tags Patient
// @Produce json
// @Param name query string false "Name or patient code fragment"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} PatientResponse
// @Failure 400 {object} ErrorResponse
// @Router /patients [get]
func (handler *patientHandler) List(ctx *gin.Context) {
	query := patients.NewPatientQuery()

	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		value, err := strutil.ConvertToInt(limit)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "limit must be an integer"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		query.Limit = value
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		value, err := strutil.ConvertToInt(offset)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "offset must be an integer"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		query.Offset = value
	}

	records, err := handler.patientService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list patients"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	listResponse := []PatientResponse{}
	for _, patient := range records {
		listResponse = append(listResponse, newPatientResponse(patient))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request for one patient with their imaging history
// @Summary Retrieve a patient by ID
// @Description Fetch the patient together with their studies and reports, newest first.
// @Tags Patient
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} PatientDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /patients/{id} [get]
func (handler *patientHandler) GetByID(ctx *gin.Context) {
	patientID := ctx.Param("id")

	patient, err := handler.patientService.GetByID(ctx, patientID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("patient with id %s not found", patientID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	patientStudies, err := handler.studyMetadataService.ListByPatient(ctx, patientID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list the patient's studies"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	patientReports, err := handler.reportingService.List(ctx, &reports.ReportQuery{PatientID: patientID})
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list the patient's reports"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, PatientDetailResponse{
		PatientResponse: newPatientResponse(patient),
		Studies:         newStudyResponses(patientStudies),
		Reports:         newReportResponses(patientReports),
	})
}

// ListSchedules handles the GET request for one patient's schedules
// @Summary List a patient's procedure schedules
// @Description Fetch all schedules of the patient, newest first. Upload pickers use this.
// @Tags Patient
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {array} ScheduleResponse
// @Failure 404 {object} ErrorResponse
// @Router /patients/{id}/schedules [get]
func (handler *patientHandler) ListSchedules(ctx *gin.Context) {
	patientID := ctx.Param("id")

	if _, err := handler.patientService.GetByID(ctx, patientID); err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, patients.ErrPatientNotFound) {
			errorResponse.Message = fmt.Sprintf("patient with id %s not found", patientID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = "could not fetch patient"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	records, err := handler.scheduleService.ListByPatient(ctx, patientID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list the patient's schedules"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newScheduleResponses(records))
}
