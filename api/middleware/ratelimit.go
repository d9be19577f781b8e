// ABOUTME: Rate limiting middleware for the discovery endpoints
// ABOUTME: Applies the caller admission limiter and reports X-RateLimit-* headers

package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"brandscout-api/core/interfaces"
	"brandscout-api/core/ratelimit"
	"brandscout-api/infrastructure/metrics"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// RateLimitOptions configures RateLimitMiddleware
type RateLimitOptions struct {
	// Paths restricts the limiter to these request paths; empty gates everything
	Paths []string

	// TrustProxyHeaders takes the caller identity from X-Forwarded-For / X-Real-IP
	TrustProxyHeaders bool

	Logger interfaces.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// RateLimitMiddleware creates a middleware that enforces the caller's admission budget.
// Admitted responses carry Limit/Remaining/Reset; denied ones are answered with 429
// and Retry-After without reaching the handler.
func RateLimitMiddleware(limiter interfaces.RateLimiter, opts RateLimitOptions) func(http.Handler) http.Handler {
	if opts.Logger == nil {
		opts.Logger = interfaces.NopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	gated := make(map[string]struct{}, len(opts.Paths))
	for _, p := range opts.Paths {
		gated[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(gated) > 0 {
				if _, ok := gated[r.URL.Path]; !ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			key := extractIP(r, opts.TrustProxyHeaders)
			decision, err := limiter.Check(r.Context(), key)
			if err != nil {
				opts.Logger.Error("Rate limiter check failed", map[string]interface{}{
					"caller": key,
					"error":  err.Error(),
				})
				writeError(w, http.StatusInternalServerError, "rate limiter unavailable")
				return
			}
			metrics.ObserveRateLimit(decision.Allowed)

			w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
			w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
			w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				now := opts.Now()
				retryAfter := decision.RetryAfterSeconds(now)
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(retryAfter))

				opts.Logger.Warn("Rate limit exceeded", map[string]interface{}{
					"caller": key,
					"path":   r.URL.Path,
					"limit":  decision.Limit,
				})
				writeError(w, http.StatusTooManyRequests, ratelimit.Rejection(key, decision, now).Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError renders the API's {"error": "..."} body outside of huma
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
