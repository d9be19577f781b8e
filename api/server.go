// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, middleware wiring and the discovery routes

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"brandscout-api/api/dto/responses"
	"brandscout-api/api/handlers"
	"brandscout-api/api/middleware"
	"brandscout-api/core/interfaces"
	"brandscout-api/infrastructure/metrics"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// Limiter gates script discovery, and brand discovery when GateBrand is set.
	// Nil disables admission control.
	Limiter   interfaces.RateLimiter
	GateBrand bool

	TrustProxyHeaders bool
	CORSOrigins       []string
	MetricsEnabled    bool
}

// NewAPI creates and configures a new Huma API instance with default settings
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	huma.NewError = handlers.NewError

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()

	// CORS first so preflights never count against the limiter
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{
			"X-Request-ID",
			middleware.HeaderRateLimitLimit,
			middleware.HeaderRateLimitRemaining,
			middleware.HeaderRateLimitReset,
			middleware.HeaderRetryAfter,
		},
		MaxAge: 300,
	}))

	if cfg.MetricsEnabled {
		metrics.Init()
		router.Use(metrics.Middleware)
	}

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger, cfg.TrustProxyHeaders))
	}

	if cfg.Limiter != nil {
		paths := []string{handlers.ScriptsPath}
		if cfg.GateBrand {
			paths = append(paths, handlers.BrandPath)
		}
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter, middleware.RateLimitOptions{
			Paths:             paths,
			TrustProxyHeaders: cfg.TrustProxyHeaders,
			Logger:            cfg.Logger,
		}))
	}

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	config := huma.DefaultConfig("BrandScout API", "1.0.0")
	config.Info.Description = "Discovers brand colors, logos and third-party scripts of public web pages"

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness probe",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
	})

	return api, router
}

// HealthOutput defines the output for the health check
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHandlers mounts the discovery routes
func RegisterHandlers(api huma.API, brand interfaces.BrandDiscoveryService, scripts interfaces.ScriptDiscoveryService) {
	handlers.NewBrandHandler(brand).RegisterRoutes(api)
	handlers.NewScriptsHandler(scripts).RegisterRoutes(api)
}
