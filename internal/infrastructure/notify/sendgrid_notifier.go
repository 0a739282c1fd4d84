// Package notify delivers report-ready notices to referring physicians.
package notify

import (
	"context"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridNotifier struct {
	client      *sendgrid.Client
	fromAddress string
	fromName    string
	logger      logger.Logger
}

// NewSendgridNotifier creates a Notifier delivering notices through SendGrid.
func NewSendgridNotifier(settings *config.EmailSettings, logger logger.Logger) (reports.Notifier, error) {
	if !settings.Enabled() {
		return nil, fmt.Errorf("sendgrid api key is required")
	}

	return &sendgridNotifier{
		client:      sendgrid.NewSendClient(settings.SendgridAPIKey),
		fromAddress: settings.FromAddress,
		fromName:    settings.FromName,
		logger:      logger,
	}, nil
}

func (n *sendgridNotifier) ReportReady(ctx context.Context, notice *reports.ReportNotice) error {
	if notice.PhysicianEmail == "" {
		n.logger.Info("No physician email on record for patient ", notice.PatientCode, ", skipping notice")
		return nil
	}

	from := mail.NewEmail(n.fromName, n.fromAddress)
	to := mail.NewEmail(notice.PhysicianName, notice.PhysicianEmail)
	subject := fmt.Sprintf("Radiology report ready for %s (%s)", notice.PatientName, notice.StudyCode)

	plainText := fmt.Sprintf(
		"Dear %s,\n\nThe radiology report for your patient %s (%s) is ready.\n\nStudy: %s\nProcedure: %s\nSigned: %s\n\nPlease log in to review the report.\n",
		notice.PhysicianName,
		notice.PatientName,
		notice.PatientCode,
		notice.StudyCode,
		notice.ProcedureType,
		notice.SignedAt.Format("January 2, 2006 15:04"),
	)
	htmlContent := fmt.Sprintf(
		"<p>Dear %s,</p><p>The radiology report for your patient <strong>%s</strong> (%s) is ready.</p><ul><li>Study: %s</li><li>Procedure: %s</li><li>Signed: %s</li></ul><p>Please log in to review the report.</p>",
		notice.PhysicianName,
		notice.PatientName,
		notice.PatientCode,
		notice.StudyCode,
		notice.ProcedureType,
		notice.SignedAt.Format("January 2, 2006 15:04"),
	)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send report notice: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected report notice with status %d: %s", resp.StatusCode, resp.Body)
	}

	n.logger.Info("Sent report notice for study ", notice.StudyCode, " to ", notice.PhysicianEmail)
	return nil
}
