package pagerduty

import (
	"context"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/domain/mtta"
)

// AnalyticsAPI defines the interface for fetching incident analytics.
// This separates infrastructure concerns from business logic.
type AnalyticsAPI interface {
	// FetchMTTA returns mean seconds to first ack for one escalation policy
	// over a date range. A nil value with nil error means no data in range.
	FetchMTTA(ctx context.Context, policyID string, rng mtta.DateRange) (*float64, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
