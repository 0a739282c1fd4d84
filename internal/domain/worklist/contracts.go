// Package worklist aggregates the counters and day view shown on the
// dashboard.
package worklist

import (
	"context"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/schedules"
)

// Summary holds the dashboard counters plus the current day's schedules.
type Summary struct {
	PatientsCount      int64
	StudiesCount       int64
	UrgentStudiesCount int64
	PendingReadsCount  int64
	TodaysSchedules    []*schedules.ProcedureSchedule
}

// Service computes the dashboard summary.
type Service interface {
	// Summary counts patients, transferred studies, urgent reads and
	// pending reads, and lists the schedules of the given day.
	Summary(ctx context.Context, day time.Time) (*Summary, error)
}
