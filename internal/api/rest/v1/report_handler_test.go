//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/reports"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportHandler_SignOff_Success(t *testing.T) {
	mockReportingService := new(MockReportingService)

	handler := NewReportHandler(mockReportingService)

	signed := &reports.SignedReport{
		Report: &reports.Report{
			ID:         "report-1",
			ScheduleID: "schedule-1",
			PdfKey:     "reports/schedule_schedule-1/Report_PAT-0001.pdf",
		},
		Pdf: []byte("%PDF-1.4 fake"),
	}

	mockReportingService.On("SignOff", mock.Anything, mock.MatchedBy(func(cmd reports.SignOffCommand) bool {
		return cmd.ScheduleID == "schedule-1" && cmd.AuthorName == "drcruz"
	})).Return(signed, nil)

	body := bytes.NewBufferString(`{"findings":"Clear lung fields.","impression":"Normal chest."}`)
	req, _ := http.NewRequest("POST", "/schedules/schedule-1/report", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "schedule-1"}}
	c.Set(ContextUserID, "user-1")
	c.Set(ContextUsername, "drcruz")

	handler.SignOff(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Report_PAT-0001.pdf")
	mockReportingService.AssertExpectations(t)
}

func TestReportHandler_SignOff_ScheduleNotReady_Error(t *testing.T) {
	mockReportingService := new(MockReportingService)

	handler := NewReportHandler(mockReportingService)

	mockReportingService.On("SignOff", mock.Anything, mock.Anything).
		Return(nil, reports.ErrScheduleNotReady)

	body := bytes.NewBufferString(`{"findings":"f","impression":"i"}`)
	req, _ := http.NewRequest("POST", "/schedules/schedule-1/report", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "schedule-1"}}

	handler.SignOff(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no uploaded study")
}

func TestReportHandler_SignOff_EmptyProse_Error(t *testing.T) {
	mockReportingService := new(MockReportingService)

	handler := NewReportHandler(mockReportingService)

	mockReportingService.On("SignOff", mock.Anything, mock.Anything).
		Return(nil, reports.ErrEmptyReport)

	body := bytes.NewBufferString(`{"findings":"<br>","impression":"<div></div>"}`)
	req, _ := http.NewRequest("POST", "/schedules/schedule-1/report", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "schedule-1"}}

	handler.SignOff(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_List_Success(t *testing.T) {
	mockReportingService := new(MockReportingService)

	handler := NewReportHandler(mockReportingService)

	report := &reports.Report{
		ID:         "report-1",
		PatientID:  "patient-1",
		ScheduleID: "schedule-1",
		Findings:   "Clear lung fields.",
		Impression: "Normal chest.",
		CreatedAt:  time.Now(),
	}

	mockReportingService.On("List", mock.Anything, mock.Anything).
		Return([]*reports.Report{report}, nil)

	req, _ := http.NewRequest("GET", "/reports", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "report-1")
	mockReportingService.AssertExpectations(t)
}

func TestReportHandler_DownloadPdf_Success(t *testing.T) {
	mockReportingService := new(MockReportingService)

	handler := NewReportHandler(mockReportingService)

	report := &reports.Report{
		ID:     "report-1",
		PdfKey: "reports/schedule_schedule-1/Report_PAT-0001.pdf",
	}

	mockReportingService.On("DownloadPdf", mock.Anything, "report-1").
		Return(report, []byte("%PDF-1.4 fake"), nil)

	req, _ := http.NewRequest("GET", "/reports/report-1/pdf", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "report-1"}}

	handler.DownloadPdf(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	mockReportingService.AssertExpectations(t)
}

func TestReportHandler_DownloadPdf_NotRendered_Error(t *testing.T) {
	mockReportingService := new(MockReportingService)

	handler := NewReportHandler(mockReportingService)

	mockReportingService.On("DownloadPdf", mock.Anything, "report-1").
		Return(nil, nil, reports.ErrPdfNotRendered)

	req, _ := http.NewRequest("GET", "/reports/report-1/pdf", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "report-1"}}

	handler.DownloadPdf(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no PDF available")
}
