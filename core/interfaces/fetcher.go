package interfaces

import (
	"context"

	"brandscout-api/core/domain"
)

// Fetcher performs a single outbound HTTP(S) request under time and size limits.
// It is the trust boundary of the discovery pipelines: implementations must reject
// non-HTTP(S) schemes before opening a socket, tear down the connection when the
// timeout fires, and never return a body larger than the request's MaxBytes.
//
// A non-2xx status is not an error at this layer; callers inspect
// FetchResult.StatusCode.
type Fetcher interface {
	Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error)
}

// ImageSampler reduces an image to its most prominent color.
type ImageSampler interface {
	Sample(ctx context.Context, imageURL string) (domain.RGBColor, error)
}
