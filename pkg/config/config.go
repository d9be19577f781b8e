// ABOUTME: Configuration management for the application using viper
// ABOUTME: Defaults, an optional config file and BRANDSCOUT_* environment variables, in that order

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BRANDSCOUT_FETCH_TIMEOUT
const EnvPrefix = "BRANDSCOUT"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Brand     BrandConfig     `mapstructure:"brand"`
	Scripts   ScriptsConfig   `mapstructure:"scripts"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `mapstructure:"port"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP pick the caller identity.
	// Only enable behind a proxy that overwrites them.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`

	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FetchConfig holds outbound fetch limits
type FetchConfig struct {
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxBytes             int64         `mapstructure:"max_bytes"`
	MaxRedirects         int           `mapstructure:"max_redirects"`
	UserAgent            string        `mapstructure:"user_agent"`
	BlockPrivateNetworks bool          `mapstructure:"block_private_networks"`
	HostRPS              float64       `mapstructure:"host_rps"`
	HostBurst            int           `mapstructure:"host_burst"`
}

// RateLimitConfig holds caller admission configuration
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`

	// Backend specifies the limiter state store (memory/redis)
	Backend string `mapstructure:"backend"`

	// GateBrand applies the limiter to brand discovery as well as script discovery
	GateBrand bool `mapstructure:"gate_brand"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `mapstructure:"address"`

	// Password is the Redis authentication password
	Password string `mapstructure:"password"`

	// DB is the Redis database number
	DB int `mapstructure:"db"`

	// Prefix namespaces limiter keys
	Prefix string `mapstructure:"prefix"`
}

// BrandConfig holds brand discovery tuning
type BrandConfig struct {
	MaxColors     int   `mapstructure:"max_colors"`
	ImageSample   bool  `mapstructure:"image_sample"`
	ImageMaxBytes int64 `mapstructure:"image_max_bytes"`
}

// ScriptsConfig holds script discovery tuning
type ScriptsConfig struct {
	// SignaturesFile replaces the embedded vendor signature list when set
	SignaturesFile string `mapstructure:"signatures_file"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load builds a Config from defaults, the optional file at path, and the environment
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.trust_proxy_headers", false)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.max_bytes", int64(2<<20))
	v.SetDefault("fetch.max_redirects", 10)
	v.SetDefault("fetch.user_agent", "BrandScout/1.0 (+https://github.com/brandscout)")
	v.SetDefault("fetch.block_private_networks", true)
	v.SetDefault("fetch.host_rps", 2.0)
	v.SetDefault("fetch.host_burst", 4)

	v.SetDefault("ratelimit.max_requests", 5)
	v.SetDefault("ratelimit.window", 10*time.Minute)
	v.SetDefault("ratelimit.backend", "memory")
	v.SetDefault("ratelimit.gate_brand", false)
	v.SetDefault("ratelimit.redis.address", "localhost:6379")
	v.SetDefault("ratelimit.redis.password", "")
	v.SetDefault("ratelimit.redis.db", 0)
	v.SetDefault("ratelimit.redis.prefix", "brandscout:ratelimit:")

	v.SetDefault("brand.max_colors", 5)
	v.SetDefault("brand.image_sample", true)
	v.SetDefault("brand.image_max_bytes", int64(5<<20))

	v.SetDefault("scripts.signatures_file", "")

	v.SetDefault("metrics.enabled", true)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.Fetch.MaxBytes <= 0 {
		return errors.New("fetch max bytes must be positive")
	}

	if c.Fetch.MaxRedirects < 0 {
		return errors.New("fetch max redirects cannot be negative")
	}

	if c.RateLimit.MaxRequests < 1 {
		return errors.New("rate limit max requests must be at least 1")
	}

	if c.RateLimit.Window < time.Second {
		return errors.New("rate limit window must be at least 1 second")
	}

	if c.RateLimit.Backend != "redis" && c.RateLimit.Backend != "memory" {
		return errors.New("rate limit backend must be 'redis' or 'memory'")
	}

	if c.RateLimit.Backend == "redis" && c.RateLimit.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis rate limit backend")
	}

	if c.Brand.MaxColors < 1 {
		return errors.New("brand max colors must be at least 1")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return errors.New("log format must be 'json' or 'text'")
	}

	return nil
}
