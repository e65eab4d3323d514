package sheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/app"

	"github.com/rs/zerolog/log"
)

// ErrColumnNotFound indicates a required header is missing from the tracking
// sheet. This is a configuration problem and aborts the run.
var ErrColumnNotFound = errors.New("required column not found")

// PolicySheet manages the escalation policy tracking sheet. The layout is
// one header row, policy display names in column A, a column headed "id"
// with escalation policy IDs, and one column per month abbreviation
// (Jan..Dec) holding MTTA minutes.
type PolicySheet struct {
	api           SheetsAPI
	spreadsheetID string
	sheetName     string

	// 0-based column indices, resolved by Load from the header row
	idCol    int
	monthCol int
	loaded   bool
}

// NewPolicySheet creates a manager for the policy tracking sheet
func NewPolicySheet(api SheetsAPI, spreadsheetID, sheetName string) *PolicySheet {
	return &PolicySheet{
		api:           api,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// Load reads the whole tracking sheet, resolves the id and month columns
// from the header row, and materializes one PolicyRow per data row.
// Row numbers in the result are 1-based spreadsheet rows (data starts at 2).
func (s *PolicySheet) Load(ctx context.Context, month string) ([]app.PolicyRow, error) {
	range_ := fmt.Sprintf("'%s'!A1:ZZ", s.sheetName)

	values, err := s.api.ReadSheet(ctx, s.spreadsheetID, range_)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy sheet: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("policy sheet %q is empty", s.sheetName)
	}

	headers := values[0]
	s.idCol = -1
	s.monthCol = -1
	for i, h := range headers {
		switch NewCell(h).String() {
		case "id":
			s.idCol = i
		case month:
			s.monthCol = i
		}
	}

	if s.idCol < 0 {
		return nil, fmt.Errorf("%w: %q (headers: %v)", ErrColumnNotFound, "id", headerStrings(headers))
	}
	if s.monthCol < 0 {
		return nil, fmt.Errorf("%w: %q (headers: %v)", ErrColumnNotFound, month, headerStrings(headers))
	}
	s.loaded = true

	rows := make([]app.PolicyRow, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		row := values[i]
		rows = append(rows, app.PolicyRow{
			Row:      i + 1,
			Name:     cellAt(row, 0).String(),
			PolicyID: cellAt(row, s.idCol).String(),
			Existing: cellAt(row, s.monthCol).String(),
		})
	}

	log.Debug().
		Str("sheet_name", s.sheetName).
		Str("month", month).
		Int("rows", len(rows)).
		Int("id_col", s.idCol).
		Int("month_col", s.monthCol).
		Msg("Loaded policy tracking sheet")

	return rows, nil
}

// WriteMinutes writes an MTTA minutes value into the month cell of one row.
// Each write persists immediately, so an interrupted run keeps the updates
// made so far.
func (s *PolicySheet) WriteMinutes(ctx context.Context, rowNum int, minutes float64) error {
	if !s.loaded {
		return fmt.Errorf("policy sheet not loaded")
	}

	range_ := fmt.Sprintf("'%s'!%s%d", s.sheetName, columnLetter(s.monthCol), rowNum)
	values := [][]interface{}{{minutes}}

	if err := s.api.UpdateRange(ctx, s.spreadsheetID, range_, values); err != nil {
		return fmt.Errorf("failed to write minutes to %s: %w", range_, err)
	}

	log.Debug().
		Str("range", range_).
		Float64("minutes", minutes).
		Msg("Wrote MTTA value to sheet")

	return nil
}

// columnLetter converts a 0-based column index to A1-notation letters
// (0 -> A, 25 -> Z, 26 -> AA)
func columnLetter(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}

func cellAt(row []interface{}, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return NewCell(nil)
	}
	return NewCell(row[idx])
}

func headerStrings(headers []interface{}) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NewCell(h).String()
	}
	return out
}
