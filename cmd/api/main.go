// ABOUTME: Main entry point for the BrandScout API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"brandscout-api/api"
	"brandscout-api/core/brand"
	"brandscout-api/core/interfaces"
	"brandscout-api/core/ratelimit"
	"brandscout-api/core/scripts"
	"brandscout-api/infrastructure/http/bounded"
	"brandscout-api/infrastructure/imagecolor"
	logruslogger "brandscout-api/infrastructure/logger/logrus"
	"brandscout-api/infrastructure/metrics"
	redislimiter "brandscout-api/infrastructure/ratelimit/redis"
	"brandscout-api/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "brandscout-api",
		Short: "Discovers brand colors, logos and third-party scripts of web pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile == "" {
				cfgFile = os.Getenv(config.EnvPrefix + "_CONFIG")
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (YAML, JSON or TOML); defaults to $BRANDSCOUT_CONFIG")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logruslogger.New(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BrandScout API", map[string]interface{}{
		"port":              cfg.Server.Port,
		"ratelimit_backend": cfg.RateLimit.Backend,
		"ratelimit_max":     cfg.RateLimit.MaxRequests,
		"ratelimit_window":  cfg.RateLimit.Window.String(),
	})

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	fetcher := bounded.New(bounded.Options{
		UserAgent:            cfg.Fetch.UserAgent,
		MaxRedirects:         cfg.Fetch.MaxRedirects,
		BlockPrivateNetworks: cfg.Fetch.BlockPrivateNetworks,
		HostRPS:              cfg.Fetch.HostRPS,
		HostBurst:            cfg.Fetch.HostBurst,
	}, logger)

	limiter, closeLimiter, err := newLimiter(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	signatures, err := scripts.LoadSignatures(cfg.Scripts.SignaturesFile)
	if err != nil {
		return fmt.Errorf("load script signatures: %w", err)
	}

	deps := interfaces.Dependencies{
		Fetcher: fetcher,
		Logger:  logger,
	}
	if cfg.Brand.ImageSample {
		deps.ImageSampler = imagecolor.NewSampler(fetcher, logger, cfg.Fetch.Timeout, cfg.Brand.ImageMaxBytes)
	}

	brandService := brand.NewService(deps, brand.Options{
		Timeout:     cfg.Fetch.Timeout,
		MaxBytes:    cfg.Fetch.MaxBytes,
		MaxColors:   cfg.Brand.MaxColors,
		ImageSample: cfg.Brand.ImageSample,
	})
	scriptService := scripts.NewService(deps, scripts.Options{
		Timeout:    cfg.Fetch.Timeout,
		MaxBytes:   cfg.Fetch.MaxBytes,
		Signatures: signatures,
	})

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:            logger,
		Limiter:           limiter,
		GateBrand:         cfg.RateLimit.GateBrand,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
		CORSOrigins:       cfg.Server.CORSOrigins,
		MetricsEnabled:    cfg.Metrics.Enabled,
	})
	api.RegisterHandlers(humaAPI, brandService, scriptService)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Server stopped", nil)
	return nil
}

// newLimiter builds the configured admission limiter. A Redis backend that
// cannot be reached falls back to memory, as the cache did before it.
func newLimiter(cfg *config.Config, logger interfaces.Logger) (interfaces.RateLimiter, func(), error) {
	memory := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	noop := func() {}

	if cfg.RateLimit.Backend != "redis" {
		logger.Info("Using in-memory rate limiter", nil)
		return memory, noop, nil
	}

	limiter, err := redislimiter.NewLimiter(cfg.RateLimit.Redis, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	if err != nil {
		logger.Error("Failed to connect rate limiter to Redis, falling back to memory", map[string]interface{}{
			"address": cfg.RateLimit.Redis.Address,
			"error":   err.Error(),
		})
		return memory, noop, nil
	}

	logger.Info("Using Redis rate limiter", map[string]interface{}{
		"address": cfg.RateLimit.Redis.Address,
	})
	return limiter, func() {
		if err := limiter.Close(); err != nil {
			logger.Warn("Failed to close Redis rate limiter", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}, nil
}
