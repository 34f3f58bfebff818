package common

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a minimum spacing between calls to one class of external endpoint.
// Instances are not shared between endpoint classes; each caller owns its own.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing one call per interval with no burst.
// A non-positive interval disables limiting.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	if interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call slot is available or ctx is done.
// Reservations are taken atomically, so concurrent callers are spaced rather than released together.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
