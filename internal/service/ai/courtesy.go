package ai

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultCourtesyDelay spaces successive per-project calls in legacy mode.
const DefaultCourtesyDelay = 2 * time.Second

// CourtesyLimiter enforces a fixed delay between successive external calls.
// Only the legacy one-call-per-project path uses it; the batched path makes
// a single call per report request.
type CourtesyLimiter struct {
	limiter *rate.Limiter
}

// NewCourtesyLimiter creates a limiter allowing one call per delay interval.
func NewCourtesyLimiter(delay time.Duration) *CourtesyLimiter {
	if delay <= 0 {
		delay = DefaultCourtesyDelay
	}
	return &CourtesyLimiter{
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Wait blocks until the next call is allowed or the context is cancelled.
func (c *CourtesyLimiter) Wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}
