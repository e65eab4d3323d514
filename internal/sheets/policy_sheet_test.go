package sheets

import (
	"context"
	"errors"
	"testing"
)

// fakeSheetsAPI is an in-memory SheetsAPI for testing the policy sheet
// manager without the Google API
type fakeSheetsAPI struct {
	values [][]interface{}

	readError   error
	updateError error

	readRanges    []string
	updatedRanges []string
	updatedValues [][][]interface{}
}

func (f *fakeSheetsAPI) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	f.readRanges = append(f.readRanges, range_)
	if f.readError != nil {
		return nil, f.readError
	}
	return f.values, nil
}

func (f *fakeSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	f.updatedRanges = append(f.updatedRanges, range_)
	f.updatedValues = append(f.updatedValues, values)
	return f.updateError
}

func trackingSheetValues() [][]interface{} {
	return [][]interface{}{
		{"Escalation Policy", "id", "Jan", "Feb", "Mar"},
		{"Payments On-Call", "P11111", 4.2, 7.5, ""},
		{"Platform On-Call", "P22222", "", "", ""},
		{"Orphan Row", "", "", "", ""},
	}
}

func TestPolicySheetLoad(t *testing.T) {
	api := &fakeSheetsAPI{values: trackingSheetValues()}
	sheet := NewPolicySheet(api, "spreadsheet-id", "MTTA")

	rows, err := sheet.Load(context.Background(), "Feb")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if rows[0].Row != 2 || rows[0].Name != "Payments On-Call" || rows[0].PolicyID != "P11111" {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}

	if rows[0].Existing != "7.5" {
		t.Errorf("Expected existing Feb value '7.5', got '%s'", rows[0].Existing)
	}

	if rows[1].Existing != "" {
		t.Errorf("Expected empty Feb value for row 3, got '%s'", rows[1].Existing)
	}

	if rows[2].PolicyID != "" {
		t.Errorf("Expected empty policy ID for orphan row, got '%s'", rows[2].PolicyID)
	}

	if len(api.readRanges) != 1 || api.readRanges[0] != "'MTTA'!A1:ZZ" {
		t.Errorf("Unexpected read ranges: %v", api.readRanges)
	}
}

func TestPolicySheetLoadMissingColumns(t *testing.T) {
	t.Run("MissingIDColumn", func(t *testing.T) {
		api := &fakeSheetsAPI{values: [][]interface{}{
			{"Escalation Policy", "Jan", "Feb"},
		}}
		sheet := NewPolicySheet(api, "spreadsheet-id", "MTTA")

		_, err := sheet.Load(context.Background(), "Feb")
		if !errors.Is(err, ErrColumnNotFound) {
			t.Fatalf("Expected ErrColumnNotFound, got %v", err)
		}
	})

	t.Run("MissingMonthColumn", func(t *testing.T) {
		api := &fakeSheetsAPI{values: [][]interface{}{
			{"Escalation Policy", "id", "Jan"},
		}}
		sheet := NewPolicySheet(api, "spreadsheet-id", "MTTA")

		_, err := sheet.Load(context.Background(), "Sep")
		if !errors.Is(err, ErrColumnNotFound) {
			t.Fatalf("Expected ErrColumnNotFound, got %v", err)
		}
	})

	t.Run("EmptySheet", func(t *testing.T) {
		api := &fakeSheetsAPI{values: [][]interface{}{}}
		sheet := NewPolicySheet(api, "spreadsheet-id", "MTTA")

		if _, err := sheet.Load(context.Background(), "Feb"); err == nil {
			t.Fatal("Expected error for empty sheet, got nil")
		}
	})
}

func TestPolicySheetWriteMinutes(t *testing.T) {
	api := &fakeSheetsAPI{values: trackingSheetValues()}
	sheet := NewPolicySheet(api, "spreadsheet-id", "MTTA")

	if _, err := sheet.Load(context.Background(), "Feb"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := sheet.WriteMinutes(context.Background(), 3, 5.0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Feb is the fourth column: D3
	if len(api.updatedRanges) != 1 || api.updatedRanges[0] != "'MTTA'!D3" {
		t.Errorf("Unexpected updated ranges: %v", api.updatedRanges)
	}

	values := api.updatedValues[0]
	if len(values) != 1 || len(values[0]) != 1 || values[0][0] != 5.0 {
		t.Errorf("Unexpected written values: %v", values)
	}
}

func TestPolicySheetWriteBeforeLoad(t *testing.T) {
	api := &fakeSheetsAPI{}
	sheet := NewPolicySheet(api, "spreadsheet-id", "MTTA")

	if err := sheet.WriteMinutes(context.Background(), 2, 5.0); err == nil {
		t.Fatal("Expected error when writing before Load, got nil")
	}
}

func TestColumnLetter(t *testing.T) {
	testCases := []struct {
		col      int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{13, "N"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tc := range testCases {
		if got := columnLetter(tc.col); got != tc.expected {
			t.Errorf("columnLetter(%d): expected %s, got %s", tc.col, tc.expected, got)
		}
	}
}
