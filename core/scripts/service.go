// ABOUTME: Script discovery pipeline producing a third-party script inventory
// ABOUTME: Shares the fetch and parse step with brand discovery

package scripts

import (
	"context"
	"time"

	"brandscout-api/core/discovery"
	"brandscout-api/core/domain"
	"brandscout-api/core/interfaces"
)

// Options tunes the pipeline
type Options struct {
	Timeout  time.Duration
	MaxBytes int64

	// Signatures defaults to the embedded list
	Signatures *Signatures
}

// DefaultOptions returns the pipeline defaults
func DefaultOptions() Options {
	return Options{
		Timeout:  domain.DefaultFetchTimeout,
		MaxBytes: domain.DefaultMaxBytes,
	}
}

// Service implements interfaces.ScriptDiscoveryService
type Service struct {
	fetcher interfaces.Fetcher
	logger  interfaces.Logger
	opts    Options
}

var _ interfaces.ScriptDiscoveryService = (*Service)(nil)

// NewService creates a script discovery service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	if opts.Signatures == nil {
		opts.Signatures = DefaultSignatures()
	}
	logger := deps.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{
		fetcher: deps.Fetcher,
		logger:  logger,
		opts:    opts,
	}
}

// Discover fetches rawURL and inventories its scripts
func (s *Service) Discover(ctx context.Context, rawURL string) (*domain.ScriptDiscoveryResult, error) {
	page, err := discovery.FetchPage(ctx, s.fetcher, rawURL, domain.FetchRequest{
		Timeout:  s.opts.Timeout,
		MaxBytes: s.opts.MaxBytes,
	})
	if err != nil {
		s.logger.Warn("Script discovery fetch failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return nil, err
	}

	entries := detectScripts(page.Doc, page.FinalURL, s.opts.Signatures)

	recognized := 0
	for _, e := range entries {
		if e.Recognized {
			recognized++
		}
	}
	s.logger.Debug("Script discovery completed", map[string]interface{}{
		"url":        page.FinalURL,
		"scripts":    len(entries),
		"recognized": recognized,
	})

	return &domain.ScriptDiscoveryResult{
		SourceURL: page.SourceURL,
		FinalURL:  page.FinalURL,
		Scripts:   entries,
		FetchedAt: page.Result.FetchedAt,
	}, nil
}
