// Package ratelimit bounds the aggregate rate of outbound LLM provider calls.
// A single Limiter instance is shared by every concurrent summarization
// request; it is the one piece of mutable state the core shares across
// requests.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter implements a token bucket gate over provider calls.
// Every provider invocation must pass through Acquire first, so the
// concurrent map phase can never exceed the external API's budget no matter
// how many requests are in flight.
type Limiter struct {
	limiter *rate.Limiter
}

// NewPerMinute creates a Limiter allowing requestsPerMinute sustained calls.
// The bucket size is 1: calls are spread across the window rather than
// bursting, matching how LLM providers meter request-per-minute quotas.
//
// Example:
//
//	limiter := ratelimit.NewPerMinute(5) // at most 5 calls per minute
func NewPerMinute(requestsPerMinute int) *Limiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	r := rate.Limit(float64(requestsPerMinute) / 60.0)
	return &Limiter{limiter: rate.NewLimiter(r, 1)}
}

// Acquire blocks until a call slot is available or the context is canceled.
// It never fails on its own; the only error it returns is the context's.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
