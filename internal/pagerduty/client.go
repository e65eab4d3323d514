package pagerduty

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/app"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/config"
	"github.com/AmitKumar-SA/pagerduty-mtta-analysis/internal/domain/mtta"

	"github.com/rs/zerolog/log"
)

const analyticsURL = "https://api.pagerduty.com/analytics/metrics/incidents/all"

// maxErrorBodyLen bounds how much of an error response body we keep
const maxErrorBodyLen = 200

type Client struct {
	token      string
	client     *http.Client
	resilience config.ResilienceConfig

	apiCallCount int64
	apiCallMutex sync.Mutex

	// injectable for deterministic tests
	sleep  func(time.Duration)
	jitter func(max time.Duration) time.Duration
}

// NewClient creates an analytics client authenticated with the given API
// token. verifySSL=false disables certificate verification and should only
// be used against test endpoints.
func NewClient(token string, verifySSL bool) *Client {
	httpClient := &http.Client{
		Timeout: config.AnalyticsTimeout,
	}
	if !verifySSL {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return newClient(token, httpClient)
}

// NewClientWithTransport creates a client over a custom transport. Used for
// mock mode and for tests; the retry and decode paths are identical to the
// real client.
func NewClientWithTransport(token string, rt http.RoundTripper) *Client {
	return newClient(token, &http.Client{
		Timeout:   config.AnalyticsTimeout,
		Transport: rt,
	})
}

func newClient(token string, httpClient *http.Client) *Client {
	return &Client{
		token:      token,
		client:     httpClient,
		resilience: config.DefaultResilienceConfig,
		sleep:      time.Sleep,
		jitter: func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(int64(max)))
		},
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// FetchMTTA fetches mean seconds to first acknowledgment for one escalation
// policy over the given date range.
//
// Returns (nil, nil) when the policy had no acknowledged incidents in range;
// that is a legitimate outcome, not an error. HTTP 429 and network failures
// are retried with exponential backoff and jitter under separate attempt
// budgets; any other non-2xx status fails immediately.
func (c *Client) FetchMTTA(ctx context.Context, policyID string, rng mtta.DateRange) (*float64, error) {
	payload := app.AnalyticsRequest{
		Filters: app.AnalyticsFilters{
			EscalationPolicyIDs: []string{policyID},
			CreatedAtStart:      rng.StartString(),
			CreatedAtEnd:        rng.EndString(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analytics request: %w", err)
	}

	rateAttempts := 0
	netAttempts := 0

	for {
		log.Debug().
			Str("url", analyticsURL).
			Str("policy_id", policyID).
			Str("from", rng.StartString()).
			Str("to", rng.EndString()).
			Msg("Requesting incident analytics")

		resp, err := c.doRequest(ctx, body)
		if err != nil {
			// context cancellation is not a retryable condition
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			netAttempts++
			if netAttempts >= c.resilience.Analytics.MaxAttempts {
				return nil, fmt.Errorf("%w: request failed after %d attempts: %v",
					ErrTransient, netAttempts, err)
			}

			wait := c.resilience.Analytics.Backoff(netAttempts-1) + c.jitter(c.resilience.Analytics.JitterWait)
			log.Warn().
				Err(err).
				Int("attempt", netAttempts).
				Int("max_attempts", c.resilience.Analytics.MaxAttempts).
				Dur("wait", wait).
				Msg("Analytics request failed, retrying")
			c.sleep(wait)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			drainBody(resp)

			rateAttempts++
			if rateAttempts >= c.resilience.RateLimit.MaxAttempts {
				return nil, fmt.Errorf("%w: gave up after %d attempts", ErrRateLimited, rateAttempts)
			}

			wait := c.rateLimitWait(retryAfter, rateAttempts-1)
			log.Warn().
				Str("policy_id", policyID).
				Int("attempt", rateAttempts).
				Int("max_attempts", c.resilience.RateLimit.MaxAttempts).
				Dur("wait", wait).
				Msg("Rate limited by analytics API, backing off")
			c.sleep(wait)
			continue
		}

		return c.handleResponse(resp, policyID)
	}
}

// doRequest builds and executes one analytics POST
func (c *Client) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, analyticsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Token token=%s", c.token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.pagerduty+json;version=2")
	req.Header.Set("User-Agent", "pagerduty-mtta-analysis/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()
	return resp, nil
}

// handleResponse decodes a non-429 response and extracts the metric
func (c *Client) handleResponse(resp *http.Response, policyID string) (*float64, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(raw)
		if len(snippet) > maxErrorBodyLen {
			snippet = snippet[:maxErrorBodyLen]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet}
	}

	var analytics app.AnalyticsResponse
	if err := json.Unmarshal(raw, &analytics); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(analytics.Data) == 0 || analytics.Data[0].MeanSecondsToFirstAck == nil {
		log.Debug().
			Str("policy_id", policyID).
			Msg("No acknowledgment data for policy in range")
		return nil, nil
	}

	datum := analytics.Data[0]
	log.Debug().
		Str("policy_id", policyID).
		Float64("mean_seconds_to_first_ack", *datum.MeanSecondsToFirstAck).
		Int("total_incidents", datum.TotalIncidentCount).
		Msg("Fetched MTTA for policy")

	return datum.MeanSecondsToFirstAck, nil
}

// rateLimitWait honors an integer Retry-After hint when present, otherwise
// falls back to exponential backoff with jitter
func (c *Client) rateLimitWait(retryAfter string, attempt int) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			wait := time.Duration(secs) * time.Second
			if wait > c.resilience.RateLimit.MaxWait {
				wait = c.resilience.RateLimit.MaxWait
			}
			return wait
		}
	}
	return c.resilience.RateLimit.Backoff(attempt) + c.jitter(c.resilience.RateLimit.JitterWait)
}

func drainBody(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
