// ABOUTME: Rate limit decision model returned by admission checks
// ABOUTME: Carries enough timing data for X-RateLimit-* and Retry-After headers

package domain

import (
	"math"
	"time"
)

// RateLimitDecision is the outcome of one admission check for a caller key
type RateLimitDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// ResetAtEpochMs returns the window reset time in Unix milliseconds
func (d RateLimitDecision) ResetAtEpochMs() int64 {
	return d.ResetAt.UnixMilli()
}

// RetryAfter returns max(0, resetAt - now)
func (d RateLimitDecision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds for the Retry-After header
func (d RateLimitDecision) RetryAfterSeconds(now time.Time) int {
	return int(math.Ceil(d.RetryAfter(now).Seconds()))
}
