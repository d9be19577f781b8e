// ABOUTME: Fetch domain models describe a bounded outbound page request and its result
// ABOUTME: Results are owned by the call that produced them and are never cached

package domain

import (
	"net/http"
	"time"
)

const (
	// DefaultFetchTimeout is the wall-clock budget discovery pipelines use per fetch
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxBytes is the body budget discovery pipelines use per fetch (2 MiB)
	DefaultMaxBytes int64 = 2 << 20
)

// FetchRequest describes a single bounded fetch
type FetchRequest struct {
	// URL must be absolute with scheme http or https
	URL string

	// Timeout is the hard wall-clock budget for connect, headers and body
	Timeout time.Duration

	// MaxBytes is the largest body the fetcher will accept
	MaxBytes int64

	// Accept overrides the Accept header sent upstream
	Accept string
}

// WithDefaults fills zero budgets with the pipeline defaults
func (r FetchRequest) WithDefaults() FetchRequest {
	if r.Timeout <= 0 {
		r.Timeout = DefaultFetchTimeout
	}
	if r.MaxBytes <= 0 {
		r.MaxBytes = DefaultMaxBytes
	}
	return r
}

// FetchResult is the outcome of a successful round trip. Body never exceeds the
// request's MaxBytes.
type FetchResult struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// FinalURL is the URL after redirects
	FinalURL string

	FetchedAt time.Time
}

// IsSuccess reports whether the upstream answered with a 2xx status
func (r *FetchResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the response Content-Type header
func (r *FetchResult) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}
