// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Fetcher performs bounded outbound requests
	Fetcher Fetcher

	// ImageSampler is optional; brand discovery skips the visual fallback without it
	ImageSampler ImageSampler

	// Logger provides structured logging
	Logger Logger
}
