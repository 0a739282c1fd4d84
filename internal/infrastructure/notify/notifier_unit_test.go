//go:build unit
// +build unit

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/pkg/config"
	"github.com/jtsigarra/xferdx/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotice() *reports.ReportNotice {
	return &reports.ReportNotice{
		PhysicianName:  "Dr. Reyes",
		PhysicianEmail: "reyes@example.com",
		PatientName:    "Juan Dela Cruz",
		PatientCode:    "PAT-0001",
		StudyCode:      "JDC-0001",
		ProcedureType:  "xray",
		SignedAt:       time.Now(),
	}
}

func TestNewSendgridNotifier_MissingKey(t *testing.T) {
	settings := &config.EmailSettings{}

	_, err := NewSendgridNotifier(settings, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestSendgridNotifier_SkipsWithoutPhysicianEmail(t *testing.T) {
	settings := &config.EmailSettings{
		SendgridAPIKey: "SG.unit-test-key",
		FromAddress:    "reports@example.com",
		FromName:       "xferDx Reports",
	}
	notifier, err := NewSendgridNotifier(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	notice := testNotice()
	notice.PhysicianEmail = ""

	// No outbound call is made when there is no recipient
	assert.NoError(t, notifier.ReportReady(context.Background(), notice))
}

func TestNoopNotifier_ReportReady(t *testing.T) {
	notifier := NewNoopNotifier(testutil.SetupTestLogger(t))

	assert.NoError(t, notifier.ReportReady(context.Background(), testNotice()))
}
