package pagerduty

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// MockTransport is an http.RoundTripper that synthesizes analytics responses
// without ever touching the network. Mock mode swaps this in under the real
// client so the retry and decode paths stay exercised.
type MockTransport struct {
	rand *rand.Rand
}

// NewMockTransport creates a mock transport seeded for reproducible values
func NewMockTransport(seed int64) *MockTransport {
	return &MockTransport{rand: rand.New(rand.NewSource(seed))}
}

// RoundTrip fabricates a 200 response with a mean-seconds-to-first-ack value
// drawn uniformly from [120, 7200] (2 minutes to 2 hours)
func (t *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		io.Copy(io.Discard, req.Body)
		req.Body.Close()
	}

	meanSeconds := 120 + t.rand.Intn(7081)
	incidents := 5 + t.rand.Intn(16)

	log.Debug().
		Int("mean_seconds", meanSeconds).
		Int("incidents", incidents).
		Msg("Serving mock analytics response")

	body := fmt.Sprintf(`{"data":[{"mean_seconds_to_first_ack":%d,"total_incident_count":%d}]}`,
		meanSeconds, incidents)

	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

// NewMockClient creates a client backed by the mock transport. No API token
// is needed since no real request is ever issued.
func NewMockClient(seed int64) *Client {
	return NewClientWithTransport("", NewMockTransport(seed))
}
