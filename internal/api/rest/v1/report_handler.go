package v1

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/domain/schedules"

	"github.com/gin-gonic/gin"
)

// ReportHandler defines the interface for handling radiologist reporting
type ReportHandler interface {
	SignOff(ctx *gin.Context)
	List(ctx *gin.Context)
	DownloadPdf(ctx *gin.Context)
}

// reportHandler struct holds the services
type reportHandler struct {
	reportingService reports.ReportingService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportingService reports.ReportingService) ReportHandler {
	return &reportHandler{
		reportingService: reportingService,
	}
}

// SignOff handles the POST request to sign off a schedule's report
// @Summary Sign off a report
// @Description Upsert the schedule's report, finalize the schedule and respond with the rendered PDF document.
// @Tags Report
// @Accept json
// @Produce application/pdf
// @Param id path string true "Schedule ID"
// @Param requestBody body SignOffRequest true "Findings and impression"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /schedules/{id}/report [post]
func (handler *reportHandler) SignOff(ctx *gin.Context) {
	scheduleID := ctx.Param("id")

	var request SignOffRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid report data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	signed, err := handler.reportingService.SignOff(ctx, reports.SignOffCommand{
		ScheduleID: scheduleID,
		Findings:   request.Findings,
		Impression: request.Impression,
		AuthorID:   ctx.GetString(ContextUserID),
		AuthorName: ctx.GetString(ContextUsername),
	})
	if err != nil {
		var errorResponse ErrorResponse
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			errorResponse.Message = fmt.Sprintf("schedule with id %s not found", scheduleID)
			ctx.JSON(http.StatusNotFound, errorResponse)
		case errors.Is(err, reports.ErrScheduleNotReady):
			errorResponse.Message = "schedule has no uploaded study to report on"
			ctx.JSON(http.StatusConflict, errorResponse)
		case errors.Is(err, reports.ErrEmptyReport):
			errorResponse.Message = "findings and impression must not be empty"
			ctx.JSON(http.StatusBadRequest, errorResponse)
		default:
			errorResponse.Message = "error signing off report"
			ctx.JSON(http.StatusInternalServerError, errorResponse)
		}
		return
	}

	ctx.Header("Content-Disposition", "inline; filename="+pdfFileName(signed.Report))
	ctx.Data(http.StatusOK, "application/pdf", signed.Pdf)
}

// List handles the GET request to list reports with optional query parameters
// @Summary List reports
// @Description Fetch reports newest first, optionally scoped to one patient.
// @Tags Report
// @Produce json
// @Param patient_id query string false "Patient ID"
// @Success 200 {array} ReportResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports [get]
func (handler *reportHandler) List(ctx *gin.Context) {
	query := &reports.ReportQuery{}

	if patientID := ctx.Query("patient_id"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	records, err := handler.reportingService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list reports"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newReportResponses(records))
}

// DownloadPdf handles the GET request for a report's PDF document
// @Summary Download a report PDF
// @Description Fetch the stored PDF document of a signed report.
// @Tags Report
// @Produce application/pdf
// @Param id path string true "Report ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /reports/{id}/pdf [get]
func (handler *reportHandler) DownloadPdf(ctx *gin.Context) {
	reportID := ctx.Param("id")

	report, data, err := handler.reportingService.DownloadPdf(ctx, reportID)
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, reports.ErrReportNotFound) || errors.Is(err, reports.ErrPdfNotRendered) {
			errorResponse.Message = fmt.Sprintf("no PDF available for report with id %s", reportID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("could not download report with id %s", reportID)
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.Header("Content-Disposition", "inline; filename="+pdfFileName(report))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// pdfFileName derives the download name from the stored object key.
func pdfFileName(report *reports.Report) string {
	return path.Base(report.PdfKey)
}
