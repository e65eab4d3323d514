package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/app"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/domain/mtta"

	"github.com/rs/zerolog/log"
)

// ReportProcessor runs one MTTA update batch: it walks the policy rows in
// sheet order, fetches the metric for each row that needs one, and writes
// converted minutes back. Rows are strictly sequential; a failure in one row
// never aborts the batch.
type ReportProcessor struct {
	analytics AnalyticsClientInterface
	sheet     PolicySheetInterface
	config    *app.Config

	// injectable for tests
	sleep func(time.Duration)
}

// NewReportProcessor creates a ReportProcessor with interface dependencies
// for testability
func NewReportProcessor(analytics AnalyticsClientInterface, sheet PolicySheetInterface, config *app.Config) *ReportProcessor {
	return &ReportProcessor{
		analytics: analytics,
		sheet:     sheet,
		config:    config,
		sleep:     time.Sleep,
	}
}

// Run processes every in-bounds policy row once and returns the batch
// summary. Only configuration-level problems (bad month, unreadable sheet,
// missing columns) return an error; per-row failures are recorded in the
// summary and the batch continues.
func (rp *ReportProcessor) Run(ctx context.Context) (*app.RunSummary, error) {
	rng, err := mtta.MonthRange(rp.config.Month, rp.config.Year)
	if err != nil {
		return nil, err
	}

	rows, err := rp.sheet.Load(ctx, rp.config.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy rows: %w", err)
	}

	rp.analytics.ResetAPICallCount()

	log.Info().
		Str("month", rp.config.Month).
		Int("year", rp.config.Year).
		Int("rows", len(rows)).
		Bool("force", rp.config.Force).
		Bool("mock", rp.config.Mock).
		Msg("Starting MTTA update run")

	summary := &app.RunSummary{}

	for _, row := range rows {
		if !rp.inBounds(row.Row) {
			continue
		}

		outcome := rp.processRow(ctx, row, rng)

		summary.Processed++
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch outcome.Status {
		case app.RowUpdated:
			summary.Updated++
		case app.RowSkipped:
			summary.Skipped++
		case app.RowFailed:
			summary.Failed++
		}
	}

	summary.APICalls = rp.analytics.GetAPICallCount()

	log.Info().
		Int("processed", summary.Processed).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int64("api_calls", summary.APICalls).
		Msg("Completed MTTA update run")

	return summary, nil
}

// inBounds applies the optional start/end row limits (1-based, inclusive);
// zero means unbounded
func (rp *ReportProcessor) inBounds(rowNum int) bool {
	if rp.config.StartRow > 0 && rowNum < rp.config.StartRow {
		return false
	}
	if rp.config.EndRow > 0 && rowNum > rp.config.EndRow {
		return false
	}
	return true
}

// processRow takes one row from Pending to its terminal state.
// No API call is issued for rows that are skipped.
func (rp *ReportProcessor) processRow(ctx context.Context, row app.PolicyRow, rng mtta.DateRange) app.RowOutcome {
	if row.PolicyID == "" {
		log.Info().
			Int("row", row.Row).
			Msg("Skipping row: no policy ID")
		return app.RowOutcome{Row: row.Row, Name: row.Name, Status: app.RowSkipped, Reason: "no policy id"}
	}

	if row.Existing != "" && !rp.config.Force {
		log.Info().
			Int("row", row.Row).
			Str("policy", row.Name).
			Str("existing", row.Existing).
			Msg("Skipping row: month value already present")
		return app.RowOutcome{Row: row.Row, Name: row.Name, Status: app.RowSkipped, Reason: "already has value"}
	}

	log.Info().
		Int("row", row.Row).
		Str("policy", row.Name).
		Str("policy_id", row.PolicyID).
		Msg("Processing policy row")

	// Pace requests across the batch, separately from intra-request backoff
	rp.sleep(rp.config.Delay)

	seconds, err := rp.analytics.FetchMTTA(ctx, row.PolicyID, rng)
	if err != nil {
		log.Error().
			Err(err).
			Int("row", row.Row).
			Str("policy", row.Name).
			Msg("Failed to fetch MTTA for policy")
		return app.RowOutcome{Row: row.Row, Name: row.Name, Status: app.RowFailed, Reason: err.Error()}
	}

	if seconds == nil {
		log.Info().
			Int("row", row.Row).
			Str("policy", row.Name).
			Msg("Skipping row: no incidents acknowledged in range")
		return app.RowOutcome{Row: row.Row, Name: row.Name, Status: app.RowSkipped, Reason: "no data"}
	}

	minutes := mtta.SecondsToMinutes(*seconds)

	if err := rp.sheet.WriteMinutes(ctx, row.Row, minutes); err != nil {
		log.Error().
			Err(err).
			Int("row", row.Row).
			Str("policy", row.Name).
			Msg("Failed to write minutes to sheet")
		return app.RowOutcome{Row: row.Row, Name: row.Name, Status: app.RowFailed, Reason: err.Error()}
	}

	log.Info().
		Int("row", row.Row).
		Str("policy", row.Name).
		Float64("minutes", minutes).
		Msg("Updated month cell")

	return app.RowOutcome{Row: row.Row, Name: row.Name, Status: app.RowUpdated, Minutes: minutes}
}
