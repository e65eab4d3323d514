package mtta

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestConversionProperties uses property-based testing to verify invariants
// of the seconds-to-minutes conversion
func TestConversionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: result has at most two decimal places
	properties.Property("two decimal precision", prop.ForAll(
		func(seconds float64) bool {
			minutes := SecondsToMinutes(seconds)
			scaled := minutes * 100
			return math.Abs(scaled-math.Round(scaled)) < 1e-9
		},
		gen.Float64Range(0, 1e8),
	))

	// Property: conversion never drifts more than half a rounding step
	// from the exact quotient
	properties.Property("close to exact quotient", prop.ForAll(
		func(seconds float64) bool {
			minutes := SecondsToMinutes(seconds)
			return math.Abs(minutes-seconds/60) <= 0.005+1e-9
		},
		gen.Float64Range(0, 1e8),
	))

	// Property: mock-mode seconds in [120, 7200] always land in [2, 120] minutes
	properties.Property("mock range maps to 2..120 minutes", prop.ForAll(
		func(seconds int) bool {
			minutes := SecondsToMinutes(float64(seconds))
			return minutes >= 2.0 && minutes <= 120.0
		},
		gen.IntRange(120, 7200),
	))

	// Property: conversion is monotonic
	properties.Property("monotonic", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return SecondsToMinutes(a) <= SecondsToMinutes(b)
		},
		gen.Float64Range(0, 1e8),
		gen.Float64Range(0, 1e8),
	))

	properties.TestingRun(t)
}

// TestMonthRangeProperties verifies invariants of month range construction
func TestMonthRangeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	// Property: range starts on day 1 at midnight and ends at 23:59:59
	properties.Property("month bounds shape", prop.ForAll(
		func(monthIdx, year int) bool {
			rng, err := MonthRange(months[monthIdx], year)
			if err != nil {
				return false
			}
			start, end := rng.Start, rng.End
			return start.Day() == 1 &&
				start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0 &&
				end.Hour() == 23 && end.Minute() == 59 && end.Second() == 59 &&
				start.Before(end) &&
				start.Month() == end.Month() &&
				start.Year() == year && end.Year() == year
		},
		gen.IntRange(0, 11),
		gen.IntRange(2000, 2100),
	))

	// Property: month lengths are 28..31 days
	properties.Property("month length within 28..31 days", prop.ForAll(
		func(monthIdx, year int) bool {
			rng, err := MonthRange(months[monthIdx], year)
			if err != nil {
				return false
			}
			days := rng.End.Day()
			return days >= 28 && days <= 31
		},
		gen.IntRange(0, 11),
		gen.IntRange(2000, 2100),
	))

	properties.TestingRun(t)
}
