// ABOUTME: Rate limiter contract shared by the in-memory and Redis-backed implementations
// ABOUTME: A check is a single atomic increment-and-compare per caller key

package interfaces

import (
	"context"

	"brandscout-api/core/domain"
)

// RateLimiter performs fixed-window admission checks per caller key
type RateLimiter interface {
	// Check counts one request against key and reports whether it is admitted.
	// Denied requests do not consume budget.
	Check(ctx context.Context, key string) (domain.RateLimitDecision, error)
}
