package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/patients"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler defines the interface for handling procedure scheduling
type ScheduleHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
}

// scheduleHandler struct holds the services
type scheduleHandler struct {
	scheduleService schedules.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService schedules.ScheduleService) ScheduleHandler {
	return &scheduleHandler{
		scheduleService: scheduleService,
	}
}

// Create handles the POST request to book a procedure
// @Summary Book a procedure
// @Description Book a procedure for a patient. The study code is assigned from the patient's initials and sequence.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param requestBody body ScheduleProcedureRequest true "Booking data"
// @Success 201 {object} ScheduleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /schedules [post]
func (handler *scheduleHandler) Create(ctx *gin.Context) {
	var request ScheduleProcedureRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid booking data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	schedule, err := handler.scheduleService.Schedule(ctx, request.Command())
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, patients.ErrPatientNotFound) {
			errorResponse.Message = fmt.Sprintf("patient with id %s not found", request.PatientID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("error booking procedure: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, newScheduleResponse(schedule))
}

// List handles the GET request to list schedules with optional query parameters
// @Summary List procedure schedules
// @Description Fetch schedules ordered by date and start time. Filtering on status uploaded yields the read worklist.
// @Tags Schedule
// @Produce json
// @Param status query string false "Schedule status (scheduled, uploaded, finalized)"
// @Param patient_id query string false "Patient ID"
// @Param date query string false "Exact day (YYYY-MM-DD)"
// @Success 200 {array} ScheduleResponse
// @Failure 400 {object} ErrorResponse
// @Router /schedules [get]
func (handler *scheduleHandler) List(ctx *gin.Context) {
	query := &schedules.ScheduleQuery{}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if patientID := ctx.Query("patient_id"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	if date := ctx.Query("date"); len(date) > 0 {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = "date must be YYYY-MM-DD"
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		query.Date = &parsed
	}

	records, err := handler.scheduleService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list schedules"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newScheduleResponses(records))
}
