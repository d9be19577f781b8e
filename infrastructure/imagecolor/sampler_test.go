package imagecolor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscout-api/core/errors"
	"brandscout-api/infrastructure/http/bounded"
)

func solidPNG(t *testing.T, c color.Color, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func loopbackFetcher() *bounded.Fetcher {
	opts := bounded.DefaultOptions()
	opts.BlockPrivateNetworks = false
	return bounded.New(opts, nil)
}

func TestSampler_Sample(t *testing.T) {
	data := solidPNG(t, color.NRGBA{R: 0xd0, G: 0x20, B: 0x30, A: 0xff}, 64, 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	s := NewSampler(loopbackFetcher(), nil, 0, 0)
	got, err := s.Sample(context.Background(), server.URL+"/logo.png")

	require.NoError(t, err)
	assert.InDelta(t, 0xd0, int(got.R), 2)
	assert.InDelta(t, 0x20, int(got.G), 2)
	assert.InDelta(t, 0x30, int(got.B), 2)
}

func TestSampler_RejectsNonImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	_, err := NewSampler(loopbackFetcher(), nil, 0, 0).Sample(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an image")
}

func TestSampler_CorruptImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("definitely not a png"))
	}))
	defer server.Close()

	_, err := NewSampler(loopbackFetcher(), nil, 0, 0).Sample(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode image")
}

func TestSampler_RespectsByteBudget(t *testing.T) {
	data := solidPNG(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, 256, 256)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	_, err := NewSampler(loopbackFetcher(), nil, 0, 64).Sample(context.Background(), server.URL)

	assert.True(t, errors.IsOversized(err), "got %v", err)
}

func TestSampler_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewSampler(loopbackFetcher(), nil, 0, 0).Sample(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
