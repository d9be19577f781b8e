package brandscout

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscout-api/core/domain"
	"brandscout-api/core/errors"
)

type stubFetcher struct {
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	f.calls++
	return &domain.FetchResult{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       []byte(`<meta name="theme-color" content="#112233"><script src="https://js.stripe.com/v3/"></script>`),
		FinalURL:   req.URL,
		FetchedAt:  time.Now(),
	}, nil
}

func newTestClient(t *testing.T, f *stubFetcher, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(append([]Option{WithFetcher(f), WithImageSampler(nil)}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestClient_DiscoverBrand(t *testing.T) {
	client := newTestClient(t, &stubFetcher{})

	result, err := client.DiscoverBrand(context.Background(), "caller-1", "example.com")

	require.NoError(t, err)
	require.NotEmpty(t, result.Colors)
	assert.Equal(t, "#112233", result.Colors[0].Hex)
}

func TestClient_DiscoverScriptsRateLimited(t *testing.T) {
	f := &stubFetcher{}
	client := newTestClient(t, f)

	for i := 0; i < 5; i++ {
		result, err := client.DiscoverScripts(context.Background(), "caller-1", "example.com")
		require.NoError(t, err)
		require.Len(t, result.Scripts, 1)
	}

	_, err := client.DiscoverScripts(context.Background(), "caller-1", "example.com")

	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
	assert.Equal(t, 5, f.calls, "denied calls never fetch")

	_, err = client.DiscoverScripts(context.Background(), "caller-2", "example.com")
	assert.NoError(t, err)
}

func TestClient_BrandNotGatedByDefault(t *testing.T) {
	client := newTestClient(t, &stubFetcher{}, WithRateLimit(1, time.Minute))

	for i := 0; i < 3; i++ {
		_, err := client.DiscoverBrand(context.Background(), "caller", "example.com")
		require.NoError(t, err)
	}
	_, err := client.DiscoverScripts(context.Background(), "caller", "example.com")
	assert.NoError(t, err)
}

func TestClient_WithBrandGate(t *testing.T) {
	client := newTestClient(t, &stubFetcher{}, WithRateLimit(1, time.Minute), WithBrandGate())

	_, err := client.DiscoverBrand(context.Background(), "caller", "example.com")
	require.NoError(t, err)

	_, err = client.DiscoverScripts(context.Background(), "caller", "example.com")
	var limited *errors.RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.Equal(t, 1, limited.Limit)
	assert.Greater(t, limited.RetryAfter, time.Duration(0))
}

func TestClient_WithoutRateLimit(t *testing.T) {
	client := newTestClient(t, &stubFetcher{}, WithoutRateLimit())

	for i := 0; i < 10; i++ {
		_, err := client.DiscoverScripts(context.Background(), "", "example.com")
		require.NoError(t, err)
	}
}

func TestClient_EmptyCallerKey(t *testing.T) {
	client := newTestClient(t, &stubFetcher{})

	_, err := client.DiscoverScripts(context.Background(), "", "example.com")

	assert.True(t, errors.IsValidation(err))
}

func TestNewClient_InvalidOptions(t *testing.T) {
	_, err := NewClient(WithRateLimit(0, time.Minute))
	assert.Error(t, err)

	_, err = NewClient(WithFetcher(nil))
	assert.Error(t, err)

	_, err = NewClient(WithSignaturesFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient()

	require.NoError(t, err)
	assert.NotNil(t, client.limiter)
	assert.False(t, client.gateBrand)
}
