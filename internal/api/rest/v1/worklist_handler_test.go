//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/schedules"
	"github.com/jtsigarra/xferdx/internal/domain/worklist"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWorklistHandler_Summary_Success(t *testing.T) {
	mockWorklistService := new(MockWorklistService)

	handler := NewWorklistHandler(mockWorklistService)

	summary := &worklist.Summary{
		PatientsCount:      12,
		StudiesCount:       7,
		UrgentStudiesCount: 2,
		PendingReadsCount:  4,
		TodaysSchedules:    []*schedules.ProcedureSchedule{},
	}

	mockWorklistService.On("Summary", mock.Anything, mock.Anything).Return(summary, nil)

	req, _ := http.NewRequest("GET", "/dashboard", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"patients_count":12`)
	assert.Contains(t, w.Body.String(), `"pending_reads_count":4`)
	mockWorklistService.AssertExpectations(t)
}

func TestWorklistHandler_Summary_ServiceFailure_Error(t *testing.T) {
	mockWorklistService := new(MockWorklistService)

	handler := NewWorklistHandler(mockWorklistService)

	mockWorklistService.On("Summary", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	req, _ := http.NewRequest("GET", "/dashboard", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "could not compute")
}
