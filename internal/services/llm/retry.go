package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// RetryConfig defines retry behaviour for provider rate limits and transient failures
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt
	MaxRetries int

	// InitialBackoff is the wait before the first retry
	InitialBackoff time.Duration

	// MaxBackoff caps any single wait
	MaxBackoff time.Duration

	// BackoffMultiplier is applied to the backoff on each retry
	BackoffMultiplier float64
}

const (
	DefaultMaxRetries        = 2
	DefaultInitialBackoff    = 2 * time.Second
	DefaultMaxBackoff        = 20 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// NewDefaultRetryConfig returns the retry policy used for interactive chat
func NewDefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        DefaultMaxRetries,
		InitialBackoff:    DefaultInitialBackoff,
		MaxBackoff:        DefaultMaxBackoff,
		BackoffMultiplier: DefaultBackoffMultiplier,
	}
}

// IsRateLimitError checks for 429 / RESOURCE_EXHAUSTED / quota errors
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(errStr), "rate limit") ||
		strings.Contains(errStr, "quota")
}

// IsRetryableError reports rate limits and server-side failures. Auth and request
// errors are returned to the caller immediately.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if IsRateLimitError(err) {
		return true
	}
	errStr := err.Error()
	for _, marker := range []string{"500", "502", "503", "504", "529", "overloaded", "UNAVAILABLE", "connection reset"} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}

// retryDelayRegex matches "Please retry in Xs" or "retryDelay:Xs" patterns
var retryDelayRegex = regexp.MustCompile(`(?i)(?:Please retry in |retryDelay[:\s]+)(\d+(?:\.\d+)?)\s*s`)

// ExtractRetryDelay parses a provider-suggested retry delay from an error message.
// Returns 0 if none is present.
//
// Example: "Error 429, Message: ... Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED"
func ExtractRetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}

	matches := retryDelayRegex.FindStringSubmatch(err.Error())
	if len(matches) < 2 {
		return 0
	}

	seconds, parseErr := strconv.ParseFloat(matches[1], 64)
	if parseErr != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

// CalculateBackoff computes the wait before retry number attempt (0-based).
// A positive apiDelay replaces InitialBackoff as the base. The result is capped at MaxBackoff.
func (c *RetryConfig) CalculateBackoff(attempt int, apiDelay time.Duration) time.Duration {
	base := c.InitialBackoff
	if apiDelay > 0 {
		base = apiDelay + time.Second
	}

	multiplier := 1.0
	for i := 0; i < attempt; i++ {
		multiplier *= c.BackoffMultiplier
	}

	backoff := time.Duration(float64(base) * multiplier)
	if backoff > c.MaxBackoff {
		backoff = c.MaxBackoff
	}

	return backoff
}

// withRetry runs call until it succeeds, fails with a non-retryable error, or the
// retries are spent
func withRetry(ctx context.Context, cfg *RetryConfig, logger arbor.ILogger, provider string, call func() error) error {
	var err error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err = call(); err == nil {
			return nil
		}
		if attempt == cfg.MaxRetries || !IsRetryableError(err) {
			break
		}

		var apiDelay time.Duration
		if IsRateLimitError(err) {
			apiDelay = ExtractRetryDelay(err)
		}
		backoff := cfg.CalculateBackoff(attempt, apiDelay)

		logger.Warn().
			Str("provider", provider).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("Retrying LLM API call")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
