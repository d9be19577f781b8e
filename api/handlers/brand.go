// ABOUTME: Brand discovery handler extracting colors and a logo from a page
// ABOUTME: Thin adapter from the HTTP surface to the brand discovery service

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"brandscout-api/api/dto/mappers"
	"brandscout-api/api/dto/requests"
	"brandscout-api/api/dto/responses"
	"brandscout-api/core/interfaces"
	"brandscout-api/infrastructure/metrics"
)

// BrandPath is the route of the brand discovery operation
const BrandPath = "/discover/brand"

// BrandHandler handles brand discovery
type BrandHandler struct {
	service interfaces.BrandDiscoveryService
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(service interfaces.BrandDiscoveryService) *BrandHandler {
	return &BrandHandler{service: service}
}

// DiscoverInput is shared by both discovery operations
type DiscoverInput struct {
	Body requests.DiscoverRequest
}

// BrandOutput defines the output for brand discovery
type BrandOutput struct {
	Body *responses.BrandDiscoveryResponse
}

// RegisterRoutes registers brand routes
func (h *BrandHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "discoverBrand",
		Method:      http.MethodPost,
		Path:        BrandPath,
		Summary:     "Discover brand colors and logo",
		Description: "Fetches the page and suggests up to five brand colors plus the most likely logo",
		Tags:        []string{"Discovery"},
		Errors:      []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError},
	}, h.DiscoverBrand)
}

// DiscoverBrand handles POST /discover/brand
func (h *BrandHandler) DiscoverBrand(ctx context.Context, input *DiscoverInput) (*BrandOutput, error) {
	start := time.Now()
	result, err := h.service.Discover(ctx, input.Body.URL)
	metrics.ObserveDiscovery(metrics.PipelineBrand, err, time.Since(start))
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &BrandOutput{Body: mappers.ToBrandDiscoveryResponse(result)}, nil
}
