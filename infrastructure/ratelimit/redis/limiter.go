// ABOUTME: Redis-backed fixed-window limiter for deployments running several API replicas
// ABOUTME: Increment-and-compare runs as one Lua script so replicas never over-admit

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brandscout-api/core/domain"
	"brandscout-api/core/interfaces"
	"brandscout-api/pkg/config"
)

// fixedWindow counts only admitted requests; the key's TTL is the window.
// Returns {allowed, count, pttl}.
var fixedWindow = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local allowed = 0
if count < limit then
  count = redis.call('INCR', KEYS[1])
  if count == 1 then
    redis.call('PEXPIRE', KEYS[1], window)
  end
  allowed = 1
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], window)
  ttl = window
end
return {allowed, count, ttl}
`)

// Limiter implements interfaces.RateLimiter on Redis
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

var _ interfaces.RateLimiter = (*Limiter)(nil)

// NewLimiter connects to Redis and returns a limiter admitting limit requests per window
func NewLimiter(cfg config.RedisConfig, limit int, window time.Duration) (*Limiter, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if limit < 1 {
		return nil, errors.New("limit must be at least 1")
	}
	if window < time.Millisecond {
		return nil, errors.New("window must be at least 1ms")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Limiter{
		client: client,
		prefix: cfg.Prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Check implements interfaces.RateLimiter
func (l *Limiter) Check(ctx context.Context, key string) (domain.RateLimitDecision, error) {
	res, err := fixedWindow.Run(ctx, l.client, []string{l.prefix + key}, l.limit, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("rate limit check: %w", err)
	}
	if len(res) != 3 {
		return domain.RateLimitDecision{}, fmt.Errorf("rate limit check: unexpected reply %v", res)
	}

	return decisionFromReply(l.limit, res[0] == 1, res[1], res[2], l.now()), nil
}

func decisionFromReply(limit int, allowed bool, count, ttlMs int64, now time.Time) domain.RateLimitDecision {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return domain.RateLimitDecision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   now.Add(time.Duration(ttlMs) * time.Millisecond),
	}
}

// Close closes the Redis connection
func (l *Limiter) Close() error {
	return l.client.Close()
}
