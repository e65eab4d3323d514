package app

// AnalyticsRequest is the body sent to /analytics/metrics/incidents/all
type AnalyticsRequest struct {
	Filters AnalyticsFilters `json:"filters"`
}

// AnalyticsFilters scopes an analytics query to a set of escalation
// policies and a creation-time window
type AnalyticsFilters struct {
	EscalationPolicyIDs []string `json:"escalation_policy_ids"`
	CreatedAtStart      string   `json:"created_at_start"`
	CreatedAtEnd        string   `json:"created_at_end"`
}

// AnalyticsResponse represents the response from /analytics/metrics/incidents/all
type AnalyticsResponse struct {
	Data []AnalyticsDatum `json:"data"`
}

// AnalyticsDatum is one aggregated metrics row in an analytics response.
// MeanSecondsToFirstAck is a pointer because the API omits or nulls the
// field when no incident in the window was ever acknowledged.
type AnalyticsDatum struct {
	MeanSecondsToFirstAck *float64 `json:"mean_seconds_to_first_ack"`
	TotalIncidentCount    int      `json:"total_incident_count"`
}

// PolicyRow is one escalation policy row read from the tracking sheet.
// Row is the 1-based spreadsheet row number, Existing the current content
// of the target month cell.
type PolicyRow struct {
	Row      int
	Name     string
	PolicyID string
	Existing string
}

// RowStatus is the terminal outcome of processing one policy row
type RowStatus int

const (
	RowUpdated RowStatus = iota
	RowSkipped
	RowFailed
)

func (s RowStatus) String() string {
	switch s {
	case RowUpdated:
		return "updated"
	case RowSkipped:
		return "skipped"
	case RowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RowOutcome records what happened to a single row during a run
type RowOutcome struct {
	Row     int
	Name    string
	Status  RowStatus
	Minutes float64 // only meaningful when Status == RowUpdated
	Reason  string  // skip reason or failure cause
}

// RunSummary aggregates per-row outcomes for the whole batch
type RunSummary struct {
	Processed int
	Updated   int
	Skipped   int
	Failed    int
	APICalls  int64
	Outcomes  []RowOutcome
}
