// Package core contains the business logic for the BrandScout API.
// It is framework-agnostic and can be used without the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (FetchRequest, BrandDiscoveryResult, ScriptEntry, etc.)
// - discovery: URL normalization and the shared page fetch step
// - htmldoc: Queryable document over untrusted markup
// - brand: Color and logo discovery
// - scripts: Script inventory and vendor classification
// - ratelimit: Fixed-window admission control
// - errors: Custom error types for the failure taxonomy
// - interfaces: Contracts for external dependencies (fetcher, image sampler, logger)
//
// # Usage Example
//
//	import (
//	    "brandscout-api/core/brand"
//	    "brandscout-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    Fetcher: myFetcher, // implements interfaces.Fetcher
//	    Logger:  myLogger,  // implements interfaces.Logger
//	}
//
//	svc := brand.NewService(deps, brand.DefaultOptions())
//	result, err := svc.Discover(ctx, "example.com")
package core
