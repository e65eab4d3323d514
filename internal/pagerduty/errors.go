package pagerduty

import (
	"errors"
	"fmt"
)

// Sentinel errors for the retryable failure classes. Terminal failures wrap
// these so callers can classify with errors.Is after retries are exhausted.
var (
	ErrRateLimited       = errors.New("rate limited")
	ErrTransient         = errors.New("transient network error")
	ErrMalformedResponse = errors.New("malformed analytics response")
)

// StatusError is a non-2xx, non-429 analytics response. These are never
// retried; the status and a snippet of the body are surfaced as-is.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analytics request failed with status %d: %s", e.Code, e.Body)
}
