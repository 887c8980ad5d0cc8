// Package ratelimit implements fixed-window request limiting.
package ratelimit

import (
	"context"
	"time"

	"moviestream/internal/cache"
)

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter allows at most Max requests per client and scope in each window.
type Limiter struct {
	counter cache.Counter
	max     int
	window  time.Duration
}

// NewLimiter creates a Limiter over counter.
func NewLimiter(counter cache.Counter, max int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, max: max, window: window}
}

// Allow records one request from client in scope and reports whether it is
// within the limit.
func (l *Limiter) Allow(ctx context.Context, scope, client string) (Result, error) {
	count, ttl, err := l.counter.Increment(ctx, cache.RateLimitKey(scope, client), l.window)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Allowed:   count <= int64(l.max),
		Limit:     l.max,
		Remaining: l.max - int(count),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = ttl
	}
	return res, nil
}
