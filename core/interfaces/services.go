// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for the discovery pipelines used by handlers and the library client

package interfaces

import (
	"context"

	"brandscout-api/core/domain"
)

// BrandDiscoveryService extracts brand colors and a logo from a page
type BrandDiscoveryService interface {
	Discover(ctx context.Context, rawURL string) (*domain.BrandDiscoveryResult, error)
}

// ScriptDiscoveryService inventories the scripts a page loads
type ScriptDiscoveryService interface {
	Discover(ctx context.Context, rawURL string) (*domain.ScriptDiscoveryResult, error)
}
