package mocks

import (
	"context"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/domain/mtta"
)

// MockAnalyticsClient is a test double for the pagerduty.Client
type MockAnalyticsClient struct {
	// Responses keyed by policy ID; nil entry means "no data"
	FetchMTTAResponses map[string]*float64

	// Errors keyed by policy ID
	FetchMTTAErrors map[string]error

	// Call tracking
	FetchMTTACalled   bool
	FetchMTTACalls    int
	FetchedPolicyIDs  []string
	FetchedDateRanges []mtta.DateRange

	apiCallCount int64
}

// FetchMTTA returns the configured response or error for the given policy ID
func (m *MockAnalyticsClient) FetchMTTA(ctx context.Context, policyID string, rng mtta.DateRange) (*float64, error) {
	m.FetchMTTACalled = true
	m.FetchMTTACalls++
	m.FetchedPolicyIDs = append(m.FetchedPolicyIDs, policyID)
	m.FetchedDateRanges = append(m.FetchedDateRanges, rng)
	m.apiCallCount++

	if err, ok := m.FetchMTTAErrors[policyID]; ok {
		return nil, err
	}
	if resp, ok := m.FetchMTTAResponses[policyID]; ok {
		return resp, nil
	}
	return nil, nil
}

func (m *MockAnalyticsClient) GetAPICallCount() int64 {
	return m.apiCallCount
}

func (m *MockAnalyticsClient) IncrementAPICall() {
	m.apiCallCount++
}

func (m *MockAnalyticsClient) ResetAPICallCount() {
	m.apiCallCount = 0
}
