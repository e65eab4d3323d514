package mtta

import "math"

// SecondsToMinutes converts a duration in seconds to minutes rounded to two
// decimal places. The sheet stores minutes as plain numbers so they remain
// usable in formulas.
func SecondsToMinutes(seconds float64) float64 {
	return math.Round(seconds/60*100) / 100
}
