package mtta

import (
	"fmt"
	"time"
)

// apiTimeFormat is the timestamp layout the analytics API expects
const apiTimeFormat = "2006-01-02T15:04:05.000000Z"

// monthsByAbbrev maps sheet column headers to month numbers
var monthsByAbbrev = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// DateRange covers one calendar month, from the first instant of the first
// day to the last second of the last day, in UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartString returns the range start formatted for the analytics API
func (r DateRange) StartString() string {
	return r.Start.UTC().Format(apiTimeFormat)
}

// EndString returns the range end formatted for the analytics API
func (r DateRange) EndString() string {
	return r.End.UTC().Format(apiTimeFormat)
}

// MonthRange builds the date range for a month abbreviation (Jan..Dec) and
// year. Month lengths (including leap Februaries) come from time.Date
// normalization: day 0 of the following month is the last day of this one.
func MonthRange(month string, year int) (DateRange, error) {
	m, ok := monthsByAbbrev[month]
	if !ok {
		return DateRange{}, fmt.Errorf("unknown month abbreviation %q (want Jan..Dec)", month)
	}

	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, m+1, 0, 23, 59, 59, 0, time.UTC)

	return DateRange{Start: start, End: end}, nil
}

// IsMonthAbbrev reports whether s is a valid month column header
func IsMonthAbbrev(s string) bool {
	_, ok := monthsByAbbrev[s]
	return ok
}
