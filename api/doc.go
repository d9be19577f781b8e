// Package api provides the HTTP layer for BrandScout.
// It uses Huma on top of chi for OpenAPI generation and request validation.
//
// # Layout
//
// - server.go: Router, middleware chain and route registration
// - handlers/: Discovery handlers and the error body mapping
// - dto/: Request and response shapes plus mappers from domain results
// - middleware/: Request logging and per-caller rate limiting
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:  logger,
//	    Limiter: ratelimit.New(5, 10*time.Minute),
//	})
//	api.RegisterHandlers(humaAPI, brandService, scriptService)
//	http.ListenAndServe(":8080", router)
//
// # Errors
//
// Every error response has the body {"error": "..."}. Invalid input and
// unsupported schemes map to 400, exhausted budgets to 429, and any other
// discovery failure to 500.
package api
