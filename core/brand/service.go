// ABOUTME: Brand discovery pipeline extracting ranked colors and a logo from a page
// ABOUTME: Fetch failures surface as DiscoveryError; extraction problems become warnings

package brand

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"time"

	"brandscout-api/core/discovery"
	"brandscout-api/core/domain"
	"brandscout-api/core/interfaces"
)

// DefaultMaxColors caps the suggestion list
const DefaultMaxColors = 5

// Options tunes the pipeline
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	MaxColors int

	// ImageSample enables the visual fallback when no textual color exists
	ImageSample bool
}

// DefaultOptions returns the pipeline defaults: 10s, 2 MiB, five colors
func DefaultOptions() Options {
	return Options{
		Timeout:     domain.DefaultFetchTimeout,
		MaxBytes:    domain.DefaultMaxBytes,
		MaxColors:   DefaultMaxColors,
		ImageSample: true,
	}
}

// Service implements interfaces.BrandDiscoveryService
type Service struct {
	fetcher interfaces.Fetcher
	sampler interfaces.ImageSampler
	logger  interfaces.Logger
	opts    Options
}

var _ interfaces.BrandDiscoveryService = (*Service)(nil)

// NewService creates a brand discovery service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	if opts.MaxColors <= 0 {
		opts.MaxColors = DefaultMaxColors
	}
	logger := deps.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{
		fetcher: deps.Fetcher,
		sampler: deps.ImageSampler,
		logger:  logger,
		opts:    opts,
	}
}

// Discover fetches rawURL and extracts brand signals from it
func (s *Service) Discover(ctx context.Context, rawURL string) (*domain.BrandDiscoveryResult, error) {
	page, err := discovery.FetchPage(ctx, s.fetcher, rawURL, domain.FetchRequest{
		Timeout:  s.opts.Timeout,
		MaxBytes: s.opts.MaxBytes,
	})
	if err != nil {
		s.logger.Warn("Brand discovery fetch failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return nil, err
	}

	warnings := []string{}
	if ct := page.Result.ContentType(); !isHTML(ct) {
		warnings = append(warnings, fmt.Sprintf("response content type %q is not HTML; parsed best-effort", ct))
	}

	colors, colorWarnings := extractColors(page.Doc)
	warnings = append(warnings, colorWarnings...)

	logos := locateLogos(page.Doc)
	logo := bestLogo(logos)

	if !hasTextualColor(colors) && s.opts.ImageSample && s.sampler != nil {
		if c, warning := s.sampleImage(ctx, logos); warning != "" {
			warnings = append(warnings, warning)
		} else if c != nil {
			colors = append(colors, *c)
		}
	}

	ranked := rankColors(colors, s.opts.MaxColors)
	if len(ranked) == 0 {
		warnings = append(warnings, "no brand color signals found")
	}
	if logo == nil {
		warnings = append(warnings, "no logo candidate met the confidence threshold")
	}

	s.logger.Debug("Brand discovery completed", map[string]interface{}{
		"url":             page.FinalURL,
		"colors":          len(ranked),
		"logo_candidates": len(logos),
		"warnings":        len(warnings),
	})

	return &domain.BrandDiscoveryResult{
		SourceURL: page.SourceURL,
		FinalURL:  page.FinalURL,
		Colors:    ranked,
		Logo:      logo,
		Warnings:  warnings,
		FetchedAt: page.Result.FetchedAt,
	}, nil
}

// sampleImage runs the visual fallback on the best raster logo candidate.
// It returns either a candidate or a warning.
func (s *Service) sampleImage(ctx context.Context, logos []domain.LogoCandidate) (*domain.ColorCandidate, string) {
	for _, logo := range logos {
		if !isSampleable(logo.URL) {
			continue
		}
		rgb, err := s.sampler.Sample(ctx, logo.URL)
		if err != nil {
			s.logger.Debug("Image color sampling failed", map[string]interface{}{
				"url":   logo.URL,
				"error": err.Error(),
			})
			return nil, "could not sample colors from " + logo.URL
		}
		c := domain.NewColorCandidate(rgb.Hex(), domain.ColorSourceImageSample, 0)
		return &c, ""
	}
	return nil, ""
}

// isSampleable excludes data URIs and formats the sampler cannot decode
func isSampleable(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	path := strings.ToLower(u.Path)
	return !strings.HasSuffix(path, ".svg") && !strings.HasSuffix(path, ".ico")
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
