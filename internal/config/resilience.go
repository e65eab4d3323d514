package config

import "time"

// Retry configuration constants
const (
	// Analytics request retry configuration (timeouts, connection errors)
	AnalyticsMaxAttempts       = 5
	AnalyticsInitialWait       = 3 * time.Second
	AnalyticsMaxWait           = 120 * time.Second
	AnalyticsBackoffMultiplier = 2.0
	AnalyticsJitterWait        = 2 * time.Second
	AnalyticsTimeout           = 30 * time.Second

	// Rate limit (HTTP 429) retry configuration.
	// Separate attempt budget so a burst of 429s does not eat into the
	// budget reserved for genuine network failures.
	RateLimitMaxAttempts       = 5
	RateLimitInitialWait       = 3 * time.Second
	RateLimitMaxWait           = 120 * time.Second
	RateLimitBackoffMultiplier = 2.0
	RateLimitJitterWait        = 2 * time.Second
)

// RetryConfig defines retry behavior for one class of failure
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	JitterWait  time.Duration
	Timeout     time.Duration
}

// Backoff returns the pre-jitter delay before retry number attempt
// (0-based): InitialWait * Multiplier^attempt, capped at MaxWait.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	wait := float64(c.InitialWait)
	for i := 0; i < attempt; i++ {
		wait *= c.Multiplier
	}
	if wait > float64(c.MaxWait) {
		return c.MaxWait
	}
	return time.Duration(wait)
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	Analytics RetryConfig
	RateLimit RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	Analytics: RetryConfig{
		MaxAttempts: AnalyticsMaxAttempts,
		InitialWait: AnalyticsInitialWait,
		MaxWait:     AnalyticsMaxWait,
		Multiplier:  AnalyticsBackoffMultiplier,
		JitterWait:  AnalyticsJitterWait,
		Timeout:     AnalyticsTimeout,
	},
	RateLimit: RetryConfig{
		MaxAttempts: RateLimitMaxAttempts,
		InitialWait: RateLimitInitialWait,
		MaxWait:     RateLimitMaxWait,
		Multiplier:  RateLimitBackoffMultiplier,
		JitterWait:  RateLimitJitterWait,
	},
}
