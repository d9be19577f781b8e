// ABOUTME: Fixed-window admission limiter keyed by caller identity
// ABOUTME: Increment-and-compare happens under one lock so concurrent checks never over-admit

package ratelimit

import (
	"context"
	"sync"
	"time"

	"brandscout-api/core/domain"
	"brandscout-api/core/errors"
	"brandscout-api/core/interfaces"
)

const (
	// DefaultLimit is the number of discovery calls a caller may make per window
	DefaultLimit = 5

	// DefaultWindow is the fixed window length
	DefaultWindow = 10 * time.Minute
)

// Limiter tracks request counts per caller key. Buckets are created lazily and
// reset in place when their window elapses; they are never evicted.
type Limiter struct {
	mu       sync.Mutex
	requests map[string]*bucket
	limit    int
	window   time.Duration
	now      func() time.Time
}

// bucket tracks requests for a specific key
type bucket struct {
	count       int
	windowStart time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

var _ interfaces.RateLimiter = (*Limiter)(nil)

// New creates a limiter admitting limit requests per window per key
func New(limit int, window time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{
		requests: make(map[string]*bucket),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit returns the configured maximum per window
func (l *Limiter) Limit() int {
	return l.limit
}

// Window returns the configured window length
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Check implements interfaces.RateLimiter. The in-memory limiter never fails.
func (l *Limiter) Check(_ context.Context, key string) (domain.RateLimitDecision, error) {
	return l.Decide(key), nil
}

// Decide admits or denies one request from key. A denied request does not
// consume budget.
func (l *Limiter) Decide(key string) domain.RateLimitDecision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, exists := l.requests[key]
	if !exists {
		b = &bucket{windowStart: now}
		l.requests[key] = b
	} else if now.Sub(b.windowStart) >= l.window {
		b.count = 0
		b.windowStart = now
	}

	decision := domain.RateLimitDecision{
		Limit:   l.limit,
		ResetAt: b.windowStart.Add(l.window),
	}

	if b.count < l.limit {
		b.count++
		decision.Allowed = true
	}
	decision.Remaining = l.limit - b.count

	return decision
}

// Allow checks if a request from the given key is allowed
func (l *Limiter) Allow(key string) bool {
	return l.Decide(key).Allowed
}

// Rejection describes a denied decision as a RateLimitedError
func Rejection(key string, d domain.RateLimitDecision, now time.Time) *errors.RateLimitedError {
	return &errors.RateLimitedError{
		Key:        key,
		Limit:      d.Limit,
		Remaining:  d.Remaining,
		ResetAt:    d.ResetAt,
		RetryAfter: d.RetryAfter(now),
	}
}
