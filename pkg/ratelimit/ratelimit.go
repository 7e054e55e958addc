package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RequestLimiter enforces a per-minute request budget.
type RequestLimiter struct {
	limiter *rate.Limiter
}

// NewRequestLimiter creates a limiter allowing maxPerMinute requests per minute.
func NewRequestLimiter(maxPerMinute int) *RequestLimiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 1
	}
	return &RequestLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1),
	}
}

// Allow reports whether a request may proceed now.
func (l *RequestLimiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a request may proceed or the context is canceled.
func (l *RequestLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
