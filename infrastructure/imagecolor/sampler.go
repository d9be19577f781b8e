// ABOUTME: Image color sampler used by brand discovery's visual fallback
// ABOUTME: Downloads through the bounded fetcher and runs k-means to find the most prominent color

package imagecolor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"strings"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp" // WebP support

	"brandscout-api/core/domain"
	"brandscout-api/core/interfaces"
)

const (
	// DefaultMaxBytes bounds image downloads (5 MiB)
	DefaultMaxBytes int64 = 5 << 20

	// maxPixels guards against decompression bombs with small files but huge dimensions
	maxPixels = 40_000_000
)

// Sampler implements interfaces.ImageSampler
type Sampler struct {
	fetcher  interfaces.Fetcher
	logger   interfaces.Logger
	timeout  time.Duration
	maxBytes int64
}

var _ interfaces.ImageSampler = (*Sampler)(nil)

// NewSampler creates a sampler that downloads through fetcher
func NewSampler(fetcher interfaces.Fetcher, logger interfaces.Logger, timeout time.Duration, maxBytes int64) *Sampler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if timeout <= 0 {
		timeout = domain.DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Sampler{
		fetcher:  fetcher,
		logger:   logger,
		timeout:  timeout,
		maxBytes: maxBytes,
	}
}

// Sample returns the most prominent color of the image at imageURL
func (s *Sampler) Sample(ctx context.Context, imageURL string) (domain.RGBColor, error) {
	res, err := s.fetcher.Fetch(ctx, domain.FetchRequest{
		URL:      imageURL,
		Timeout:  s.timeout,
		MaxBytes: s.maxBytes,
		Accept:   "image/webp,image/png,image/jpeg,image/gif;q=0.8",
	})
	if err != nil {
		return domain.RGBColor{}, err
	}
	if !res.IsSuccess() {
		return domain.RGBColor{}, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
	if ct := res.ContentType(); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		if !strings.HasPrefix(mediaType, "image/") {
			return domain.RGBColor{}, fmt.Errorf("not an image: %s", ct)
		}
	}

	return s.prominent(imageURL, res.Body)
}

// prominent decodes data and runs k-means. prominentcolor can panic on odd inputs.
func (s *Sampler) prominent(imageURL string, data []byte) (color domain.RGBColor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Debug("Recovered from panic in color extraction", map[string]interface{}{
				"url":   imageURL,
				"panic": fmt.Sprintf("%v", rec),
			})
			err = fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.RGBColor{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return domain.RGBColor{}, fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.RGBColor{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return domain.RGBColor{}, fmt.Errorf("image has empty bounds")
	}

	imgNRGBA := image.NewNRGBA(bounds)
	draw.Draw(imgNRGBA, bounds, img, bounds.Min, draw.Src)

	// Masks drop white, black and green-screen backgrounds first
	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.DefaultK,
		imgNRGBA,
		prominentcolor.ArgumentDefault,
		prominentcolor.DefaultSize,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		s.logger.Debug("Retrying color extraction without masks", map[string]interface{}{
			"url": imageURL,
		})

		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.DefaultK,
			imgNRGBA,
			prominentcolor.ArgumentDefault,
			prominentcolor.DefaultSize,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return domain.RGBColor{}, fmt.Errorf("no colors extracted from image")
		}
	}

	return domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}
