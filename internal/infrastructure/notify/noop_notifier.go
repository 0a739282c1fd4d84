package notify

import (
	"context"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"
)

type noopNotifier struct {
	logger logger.Logger
}

// NewNoopNotifier creates a Notifier that only logs. Used when outbound
// email is not configured.
func NewNoopNotifier(logger logger.Logger) reports.Notifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) ReportReady(ctx context.Context, notice *reports.ReportNotice) error {
	n.logger.Info("Email disabled, skipping report notice for study ", notice.StudyCode)
	return nil
}
