package pagerduty

import (
	"context"
	"testing"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/domain/mtta"
)

func TestMockClientValueRange(t *testing.T) {
	client := NewMockClient(42)

	rng, err := mtta.MonthRange("Feb", 2025)
	if err != nil {
		t.Fatalf("Failed to build date range: %v", err)
	}

	for i := 0; i < 200; i++ {
		seconds, err := client.FetchMTTA(context.Background(), "PMOCK01", rng)
		if err != nil {
			t.Fatalf("Mock fetch %d failed: %v", i, err)
		}

		if seconds == nil {
			t.Fatalf("Mock fetch %d returned no data", i)
		}

		if *seconds < 120 || *seconds > 7200 {
			t.Fatalf("Mock fetch %d returned %v seconds, outside [120, 7200]", i, *seconds)
		}

		minutes := mtta.SecondsToMinutes(*seconds)
		if minutes < 2.0 || minutes > 120.0 {
			t.Fatalf("Mock fetch %d converted to %v minutes, outside [2, 120]", i, minutes)
		}
	}
}

func TestMockClientDeterministicWithSeed(t *testing.T) {
	rng, err := mtta.MonthRange("Mar", 2025)
	if err != nil {
		t.Fatalf("Failed to build date range: %v", err)
	}

	a := NewMockClient(7)
	b := NewMockClient(7)

	for i := 0; i < 10; i++ {
		av, err := a.FetchMTTA(context.Background(), "P1", rng)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		bv, err := b.FetchMTTA(context.Background(), "P1", rng)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if *av != *bv {
			t.Fatalf("Same seed diverged at draw %d: %v vs %v", i, *av, *bv)
		}
	}
}

func TestMockClientCountsCalls(t *testing.T) {
	client := NewMockClient(1)

	rng, err := mtta.MonthRange("Jan", 2025)
	if err != nil {
		t.Fatalf("Failed to build date range: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := client.FetchMTTA(context.Background(), "P1", rng); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}

	if count := client.GetAPICallCount(); count != 3 {
		t.Errorf("Expected 3 counted calls, got %d", count)
	}
}
