// ABOUTME: Configuration options for the BrandScout library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package brandscout

import (
	"errors"
	"time"

	"brandscout-api/core/brand"
	"brandscout-api/core/interfaces"
	"brandscout-api/core/ratelimit"
	"brandscout-api/core/scripts"
	"brandscout-api/infrastructure/http/bounded"
	"brandscout-api/infrastructure/imagecolor"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// Config holds the configuration for the client
type Config struct {
	Fetcher      interfaces.Fetcher
	ImageSampler interfaces.ImageSampler
	Logger       interfaces.Logger

	// Limiter may be nil to disable admission control
	Limiter   interfaces.RateLimiter
	GateBrand bool

	BrandOptions  brand.Options
	ScriptOptions scripts.Options

	// samplerSet records an explicit WithImageSampler, including nil
	samplerSet bool
}

// WithFetcher sets a custom fetcher
func WithFetcher(fetcher interfaces.Fetcher) Option {
	return func(c *Config) error {
		if fetcher == nil {
			return errors.New("fetcher cannot be nil")
		}
		c.Fetcher = fetcher
		return nil
	}
}

// WithImageSampler sets the sampler for the brand visual fallback; nil disables it
func WithImageSampler(sampler interfaces.ImageSampler) Option {
	return func(c *Config) error {
		c.ImageSampler = sampler
		c.samplerSet = true
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithRateLimiter sets the admission limiter, e.g. a Redis-backed one shared with the API
func WithRateLimiter(limiter interfaces.RateLimiter) Option {
	return func(c *Config) error {
		c.Limiter = limiter
		return nil
	}
}

// WithRateLimit uses an in-memory limiter admitting limit calls per window
func WithRateLimit(limit int, window time.Duration) Option {
	return func(c *Config) error {
		if limit <= 0 || window <= 0 {
			return errors.New("rate limit and window must be positive")
		}
		c.Limiter = ratelimit.New(limit, window)
		return nil
	}
}

// WithoutRateLimit disables admission control
func WithoutRateLimit() Option {
	return func(c *Config) error {
		c.Limiter = nil
		return nil
	}
}

// WithBrandGate applies the limiter to brand discovery too
func WithBrandGate() Option {
	return func(c *Config) error {
		c.GateBrand = true
		return nil
	}
}

// WithBrandOptions tunes the brand pipeline
func WithBrandOptions(opts brand.Options) Option {
	return func(c *Config) error {
		c.BrandOptions = opts
		return nil
	}
}

// WithScriptOptions tunes the script pipeline
func WithScriptOptions(opts scripts.Options) Option {
	return func(c *Config) error {
		c.ScriptOptions = opts
		return nil
	}
}

// WithSignaturesFile replaces the embedded vendor signatures with a YAML file
func WithSignaturesFile(path string) Option {
	return func(c *Config) error {
		sigs, err := scripts.LoadSignatures(path)
		if err != nil {
			return err
		}
		c.ScriptOptions.Signatures = sigs
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Logger:        interfaces.NopLogger{},
		Limiter:       ratelimit.New(ratelimit.DefaultLimit, ratelimit.DefaultWindow),
		BrandOptions:  brand.DefaultOptions(),
		ScriptOptions: scripts.DefaultOptions(),
	}
}

// validateConfig fills dependencies the caller did not provide
func validateConfig(c *Config) error {
	if c.Logger == nil {
		c.Logger = interfaces.NopLogger{}
	}
	if c.Fetcher == nil {
		c.Fetcher = bounded.New(bounded.DefaultOptions(), c.Logger)
	}
	if c.ImageSampler == nil && !c.samplerSet {
		c.ImageSampler = imagecolor.NewSampler(c.Fetcher, c.Logger, c.BrandOptions.Timeout, imagecolor.DefaultMaxBytes)
	}
	return nil
}
