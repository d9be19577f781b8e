package bounded

import (
	"context"
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"brandscout-api/infrastructure/metrics"
)

// DefaultMaxHosts caps how many per-site limiters are retained
const DefaultMaxHosts = 4096

type hostEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// HostLimiter paces outbound requests per target site so the service
// cannot be used to flood a single third-party site. Sites are keyed by
// registrable domain; at most maxHosts limiters are kept.
type HostLimiter struct {
	mu       sync.Mutex
	entries  map[string]*hostEntry
	rps      rate.Limit
	burst    int
	maxHosts int
	now      func() time.Time
}

// NewHostLimiter creates a HostLimiter. rps <= 0 disables pacing.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	r := rate.Limit(rps)
	if rps <= 0 {
		r = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		entries:  make(map[string]*hostEntry),
		rps:      r,
		burst:    burst,
		maxHosts: DefaultMaxHosts,
		now:      time.Now,
	}
}

// Wait blocks until host may be contacted or ctx is done
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.rps == rate.Inf {
		return nil
	}

	limiter := l.limiterFor(siteKey(host))

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("host throttle wait: %w", err)
	}
	if waited := time.Since(start); waited > time.Millisecond {
		metrics.ObserveHostThrottle(waited)
	}
	return nil
}

func (l *HostLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.entries[key]; ok {
		e.lastUsed = now
		return e.limiter
	}

	if len(l.entries) >= l.maxHosts {
		l.evict(now)
	}
	e := &hostEntry{limiter: rate.NewLimiter(l.rps, l.burst), lastUsed: now}
	l.entries[key] = e
	return e.limiter
}

// evict drops limiters whose bucket has refilled, since a fresh limiter
// behaves identically. If that is not enough the least recently used are
// dropped until the map is back to three quarters of its cap.
func (l *HostLimiter) evict(now time.Time) {
	full := float64(l.burst)
	for key, e := range l.entries {
		if e.limiter.TokensAt(now) >= full {
			delete(l.entries, key)
		}
	}
	if len(l.entries) < l.maxHosts {
		return
	}

	keys := make([]string, 0, len(l.entries))
	for key := range l.entries {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return l.entries[a].lastUsed.Compare(l.entries[b].lastUsed)
	})
	target := l.maxHosts * 3 / 4
	for _, key := range keys[:len(keys)-target] {
		delete(l.entries, key)
	}
}

func (l *HostLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// siteKey maps a hostname to its registrable domain. IP literals and names
// without a public suffix are used as-is.
func siteKey(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if _, err := netip.ParseAddr(host); err == nil {
		return host
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
