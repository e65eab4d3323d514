package mocks

import (
	"context"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/app"
)

// MockPolicySheet is a test double for the sheets.PolicySheet
type MockPolicySheet struct {
	// Responses to return
	LoadResponse []app.PolicyRow

	// Errors to return
	LoadError         error
	WriteMinutesError error

	// Call tracking
	LoadCalled         bool
	LoadMonth          string
	WriteMinutesCalled bool
	WrittenRows        []int
	WrittenMinutes     map[int]float64
}

// Load returns the configured rows
func (m *MockPolicySheet) Load(ctx context.Context, month string) ([]app.PolicyRow, error) {
	m.LoadCalled = true
	m.LoadMonth = month
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.LoadResponse, nil
}

// WriteMinutes records the write instead of touching a real sheet
func (m *MockPolicySheet) WriteMinutes(ctx context.Context, rowNum int, minutes float64) error {
	m.WriteMinutesCalled = true
	if m.WriteMinutesError != nil {
		return m.WriteMinutesError
	}
	if m.WrittenMinutes == nil {
		m.WrittenMinutes = make(map[int]float64)
	}
	m.WrittenRows = append(m.WrittenRows, rowNum)
	m.WrittenMinutes[rowNum] = minutes
	return nil
}
