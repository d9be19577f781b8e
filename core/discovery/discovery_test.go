package discovery

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscout-api/core/domain"
	"brandscout-api/core/errors"
	"brandscout-api/infrastructure/http/bounded"
)

type stubFetcher struct {
	result *domain.FetchResult
	err    error
	seen   []domain.FetchRequest
}

func (s *stubFetcher) Fetch(_ context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	s.seen = append(s.seen, req)
	return s.result, s.err
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path?q=1  ", "https://example.com/path?q=1"},
		{"//cdn.example.com/x", "https://cdn.example.com/x"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"ftp://example.com/file", "ftp://example.com/file"},
		{"file:///etc/passwd", "file:///etc/passwd"},
		{"file:/etc/passwd", "file:/etc/passwd"},
		{"mailto:admin@internal.example", "mailto:admin@internal.example"},
		{"javascript:alert(1)", "javascript:alert(1)"},
		{"localhost:8080", "https://localhost:8080"},
		{"example.com:443/x", "https://example.com:443/x"},
		{"example.com:8443?q=1", "https://example.com:8443?q=1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_BlankIsValidationError(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := NormalizeURL(in)
		assert.True(t, errors.IsValidation(err), "input %q", in)
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	for _, in := range []string{"example.com", "//example.com", "http://a.b", "www.example.org/x"} {
		once, err := NormalizeURL(in)
		require.NoError(t, err)
		twice, err := NormalizeURL(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
		assert.Equal(t, 1, strings.Count(twice, "://"), "scheme added more than once for %q", in)
	}
}

func TestFetchPage_Success(t *testing.T) {
	f := &stubFetcher{result: &domain.FetchResult{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       []byte(`<html><head><meta name="theme-color" content="#123456"></head></html>`),
		FinalURL:   "https://www.example.com/",
		FetchedAt:  time.Now(),
	}}

	page, err := FetchPage(context.Background(), f, "example.com", domain.FetchRequest{})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", page.SourceURL)
	assert.Equal(t, "https://www.example.com/", page.FinalURL)
	assert.Len(t, page.Doc.Find(`meta[name="theme-color"]`), 1)

	require.Len(t, f.seen, 1)
	assert.Equal(t, domain.DefaultFetchTimeout, f.seen[0].Timeout)
	assert.Equal(t, domain.DefaultMaxBytes, f.seen[0].MaxBytes)
	assert.NotEmpty(t, f.seen[0].Accept)
}

func TestFetchPage_Non2xxIsUpstreamError(t *testing.T) {
	f := &stubFetcher{result: &domain.FetchResult{StatusCode: http.StatusNotFound, FinalURL: "https://example.com/missing"}}

	_, err := FetchPage(context.Background(), f, "https://example.com/missing", domain.FetchRequest{})

	require.Error(t, err)
	assert.True(t, errors.IsDiscovery(err))
	assert.True(t, errors.IsUpstreamHTTP(err))
}

func TestFetchPage_WrapsFetcherError(t *testing.T) {
	f := &stubFetcher{err: &errors.UnsupportedProtocolError{Scheme: "ftp", URL: "ftp://example.com"}}

	_, err := FetchPage(context.Background(), f, "ftp://example.com", domain.FetchRequest{})

	assert.True(t, errors.IsDiscovery(err))
	assert.True(t, errors.IsUnsupportedProtocol(err))
}

func TestFetchPage_BlankInputNeverFetches(t *testing.T) {
	f := &stubFetcher{}

	_, err := FetchPage(context.Background(), f, "  ", domain.FetchRequest{})

	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, f.seen)
}

func TestFetchPage_SchemeWithoutSlashesRejectedBeforeIO(t *testing.T) {
	fetcher := bounded.New(bounded.DefaultOptions(), nil)

	for _, in := range []string{"file:/etc/passwd", "mailto:admin@internal.example", "javascript:alert(1)"} {
		t.Run(in, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			_, err := FetchPage(ctx, fetcher, in, domain.FetchRequest{})

			require.Error(t, err)
			assert.True(t, errors.IsDiscovery(err))
			assert.True(t, errors.IsUnsupportedProtocol(err), "got %v", err)
		})
	}
}

func TestFetchPage_SchemeInputReachesFetcherUnchanged(t *testing.T) {
	f := &stubFetcher{err: &errors.UnsupportedProtocolError{Scheme: "file", URL: "file:/etc/passwd"}}

	_, err := FetchPage(context.Background(), f, "file:/etc/passwd", domain.FetchRequest{})

	assert.True(t, errors.IsUnsupportedProtocol(err))
	require.Len(t, f.seen, 1)
	assert.Equal(t, "file:/etc/passwd", f.seen[0].URL)
}
