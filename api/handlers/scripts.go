// ABOUTME: Script discovery handler inventorying the scripts a page loads
// ABOUTME: The route is gated by the rate limit middleware configured in the server

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"brandscout-api/api/dto/mappers"
	"brandscout-api/api/dto/responses"
	"brandscout-api/core/interfaces"
	"brandscout-api/infrastructure/metrics"
)

// ScriptsPath is the route of the script discovery operation
const ScriptsPath = "/discover/scripts"

// ScriptsHandler handles script discovery
type ScriptsHandler struct {
	service interfaces.ScriptDiscoveryService
}

// NewScriptsHandler creates a new scripts handler
func NewScriptsHandler(service interfaces.ScriptDiscoveryService) *ScriptsHandler {
	return &ScriptsHandler{service: service}
}

// ScriptsOutput defines the output for script discovery
// X-RateLimit-* headers are set by the rate limit middleware.
type ScriptsOutput struct {
	Body *responses.ScriptDiscoveryResponse
}

// RegisterRoutes registers script routes
func (h *ScriptsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "discoverScripts",
		Method:      http.MethodPost,
		Path:        ScriptsPath,
		Summary:     "Inventory third-party scripts",
		Description: "Fetches the page and lists every script it loads, classified by known vendor where possible",
		Tags:        []string{"Discovery"},
		Errors:      []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError},
	}, h.DiscoverScripts)
}

// DiscoverScripts handles POST /discover/scripts
func (h *ScriptsHandler) DiscoverScripts(ctx context.Context, input *DiscoverInput) (*ScriptsOutput, error) {
	start := time.Now()
	result, err := h.service.Discover(ctx, input.Body.URL)
	metrics.ObserveDiscovery(metrics.PipelineScripts, err, time.Since(start))
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &ScriptsOutput{Body: mappers.ToScriptDiscoveryResponse(result)}, nil
}
