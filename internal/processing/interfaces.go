package processing

import (
	"context"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/app"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/domain/mtta"
)

// AnalyticsClientInterface defines what the report processor needs from the
// PagerDuty analytics client
type AnalyticsClientInterface interface {
	FetchMTTA(ctx context.Context, policyID string, rng mtta.DateRange) (*float64, error)
	GetAPICallCount() int64
	ResetAPICallCount()
}

// PolicySheetInterface defines what the report processor needs from the
// policy tracking sheet
type PolicySheetInterface interface {
	Load(ctx context.Context, month string) ([]app.PolicyRow, error)
	WriteMinutes(ctx context.Context, rowNum int, minutes float64) error
}
