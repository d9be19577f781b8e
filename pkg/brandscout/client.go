// ABOUTME: Main client for the BrandScout library providing brand and script discovery
// ABOUTME: Offers the discovery pipelines in-process, behind the same caller admission limiter

package brandscout

import (
	"context"
	"time"

	"brandscout-api/core/brand"
	"brandscout-api/core/errors"
	"brandscout-api/core/interfaces"
	"brandscout-api/core/ratelimit"
	"brandscout-api/core/scripts"
	"brandscout-api/infrastructure/metrics"
)

// Client is the main entry point for the BrandScout library
type Client struct {
	brandService  interfaces.BrandDiscoveryService
	scriptService interfaces.ScriptDiscoveryService

	limiter   interfaces.RateLimiter
	gateBrand bool
	logger    interfaces.Logger
	now       func() time.Time
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Fetcher:      config.Fetcher,
		ImageSampler: config.ImageSampler,
		Logger:       config.Logger,
	}

	return &Client{
		brandService:  brand.NewService(deps, config.BrandOptions),
		scriptService: scripts.NewService(deps, config.ScriptOptions),
		limiter:       config.Limiter,
		gateBrand:     config.GateBrand,
		logger:        config.Logger,
		now:           time.Now,
	}, nil
}

// DiscoverBrand suggests brand colors and a logo for url. The limiter applies
// only when the client was built WithBrandGate.
func (c *Client) DiscoverBrand(ctx context.Context, callerKey, url string) (*BrandResult, error) {
	if c.gateBrand {
		if err := c.admit(ctx, callerKey); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	result, err := c.brandService.Discover(ctx, url)
	metrics.ObserveDiscovery(metrics.PipelineBrand, err, time.Since(start))
	return result, err
}

// DiscoverScripts inventories the scripts url loads, counting against callerKey's budget
func (c *Client) DiscoverScripts(ctx context.Context, callerKey, url string) (*ScriptResult, error) {
	if err := c.admit(ctx, callerKey); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := c.scriptService.Discover(ctx, url)
	metrics.ObserveDiscovery(metrics.PipelineScripts, err, time.Since(start))
	return result, err
}

// admit runs one admission check. Denials come back as *errors.RateLimitedError.
func (c *Client) admit(ctx context.Context, callerKey string) error {
	if c.limiter == nil {
		return nil
	}
	if callerKey == "" {
		return &errors.ValidationError{Field: "callerKey", Message: "must not be empty when rate limiting is enabled"}
	}

	decision, err := c.limiter.Check(ctx, callerKey)
	if err != nil {
		c.logger.Error("Rate limiter check failed", map[string]interface{}{
			"caller": callerKey,
			"error":  err.Error(),
		})
		return errors.WrapError(err, "rate limiter check")
	}
	metrics.ObserveRateLimit(decision.Allowed)

	if !decision.Allowed {
		return ratelimit.Rejection(callerKey, decision, c.now())
	}
	return nil
}
