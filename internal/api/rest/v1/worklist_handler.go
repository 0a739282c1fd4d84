package v1

import (
	"net/http"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/worklist"

	"github.com/gin-gonic/gin"
)

// WorklistHandler defines the interface for the dashboard summary
type WorklistHandler interface {
	Summary(ctx *gin.Context)
}

// worklistHandler struct holds the services
type worklistHandler struct {
	worklistService worklist.Service
}

// NewWorklistHandler creates a new WorklistHandler
func NewWorklistHandler(worklistService worklist.Service) WorklistHandler {
	return &worklistHandler{
		worklistService: worklistService,
	}
}

// Summary handles the GET request for the dashboard counters and day view
// @Summary Get the dashboard summary
// @Description Fetch patient, transfer and pending-read counters plus the current day's schedules.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} WorklistSummaryResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (handler *worklistHandler) Summary(ctx *gin.Context) {
	summary, err := handler.worklistService.Summary(ctx, time.Now())
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not compute the dashboard summary"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newWorklistSummaryResponse(summary))
}
