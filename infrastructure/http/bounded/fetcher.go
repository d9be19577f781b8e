// ABOUTME: Bounded HTTP fetcher, the trust boundary of the discovery pipelines
// ABOUTME: Enforces scheme allow-listing, private-network blocking, a wall-clock timeout and a byte budget

package bounded

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"brandscout-api/core/domain"
	coreerrors "brandscout-api/core/errors"
	"brandscout-api/core/interfaces"
	"brandscout-api/infrastructure/metrics"
)

const defaultUserAgent = "BrandScout/1.0 (+https://github.com/brandscout)"

// Options configures a Fetcher
type Options struct {
	UserAgent    string
	MaxRedirects int

	// BlockPrivateNetworks refuses connections to non-public addresses
	BlockPrivateNetworks bool

	// HostRPS and HostBurst pace requests per target host; HostRPS <= 0 disables pacing
	HostRPS   float64
	HostBurst int

	DialTimeout time.Duration
}

// DefaultOptions returns hardened defaults
func DefaultOptions() Options {
	return Options{
		UserAgent:            defaultUserAgent,
		MaxRedirects:         10,
		BlockPrivateNetworks: true,
		DialTimeout:          5 * time.Second,
	}
}

// Fetcher implements interfaces.Fetcher
type Fetcher struct {
	client *http.Client
	hosts  *HostLimiter
	opts   Options
	logger interfaces.Logger
}

var _ interfaces.Fetcher = (*Fetcher)(nil)

// New creates a Fetcher. A nil logger discards output.
func New(opts Options, logger interfaces.Logger) *Fetcher {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 10
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   opts.DialTimeout,
		KeepAlive: 30 * time.Second,
	}
	if opts.BlockPrivateNetworks {
		dialer.Control = guardControl
	}

	transport := &http.Transport{
		// No proxy: the address guard must see the real target
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}

	f := &Fetcher{
		hosts:  NewHostLimiter(opts.HostRPS, opts.HostBurst),
		opts:   opts,
		logger: logger,
	}
	f.client = &http.Client{
		Transport:     &LoggingRoundTripper{Transport: transport, Logger: logger},
		CheckRedirect: f.checkRedirect,
	}
	return f
}

// checkRedirect re-applies the scheme allow-list and the hop cap on every redirect
func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= f.opts.MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", f.opts.MaxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return &coreerrors.UnsupportedProtocolError{Scheme: req.URL.Scheme, URL: req.URL.String()}
	}
	return nil
}

// Fetch performs one GET under req's timeout and byte budget. Non-2xx answers are
// returned as results with an empty body; the caller decides what they mean.
func (f *Fetcher) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResult, error) {
	req = req.WithDefaults()
	start := time.Now()

	target, err := ValidateURL(req.URL)
	if err != nil {
		f.observe(err, 0, start)
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	if err := f.hosts.Wait(fetchCtx, target.Hostname()); err != nil {
		if ctx.Err() == nil {
			// rate.Limiter refuses early when the wait would outlast the deadline
			err = &coreerrors.TimeoutError{URL: target.String(), Timeout: req.Timeout}
		}
		f.observe(err, 0, start)
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}
	httpReq.Header.Set("User-Agent", f.opts.UserAgent)
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		err = f.classify(ctx, fetchCtx, target, req.Timeout, err)
		f.observe(err, 0, start)
		return nil, err
	}
	// Closing the body and cancelling fetchCtx releases the connection
	defer resp.Body.Close()

	result := &domain.FetchResult{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		FinalURL:   resp.Request.URL.String(),
	}

	if !result.IsSuccess() {
		result.FetchedAt = time.Now()
		f.observe(nil, 0, start)
		return result, nil
	}

	if resp.ContentLength > req.MaxBytes {
		err := &coreerrors.OversizedResponseError{
			URL:      result.FinalURL,
			MaxBytes: req.MaxBytes,
			Declared: true,
			Length:   resp.ContentLength,
		}
		f.observe(err, 0, start)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, req.MaxBytes+1))
	if err != nil {
		err = f.classify(ctx, fetchCtx, target, req.Timeout, err)
		f.observe(err, len(body), start)
		return nil, err
	}
	if int64(len(body)) > req.MaxBytes {
		err := &coreerrors.OversizedResponseError{URL: result.FinalURL, MaxBytes: req.MaxBytes}
		f.observe(err, 0, start)
		return nil, err
	}

	result.Body = body
	result.FetchedAt = time.Now()
	f.observe(nil, len(body), start)
	return result, nil
}

// ValidateURL parses raw and enforces an absolute http(s) URL without touching the network
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "not a valid URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &coreerrors.UnsupportedProtocolError{Scheme: u.Scheme, URL: raw}
	}
	if u.Hostname() == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "missing host"}
	}
	return u, nil
}

// classify maps transport failures onto the error taxonomy
func (f *Fetcher) classify(parent, fetchCtx context.Context, target *url.URL, timeout time.Duration, err error) error {
	var blocked *coreerrors.BlockedAddressError
	if errors.As(err, &blocked) {
		blocked.Host = target.Hostname()
		return blocked
	}

	var proto *coreerrors.UnsupportedProtocolError
	if errors.As(err, &proto) {
		return proto
	}

	if parent.Err() != nil {
		return fmt.Errorf("fetch %s: %w", target, parent.Err())
	}

	var netErr net.Error
	if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &coreerrors.TimeoutError{URL: target.String(), Timeout: timeout}
	}

	return fmt.Errorf("fetch %s: %w", target, err)
}

func (f *Fetcher) observe(err error, bytesRead int, start time.Time) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case coreerrors.IsTimeout(err):
		outcome = metrics.OutcomeTimeout
	case coreerrors.IsOversized(err):
		outcome = metrics.OutcomeOversized
	case coreerrors.IsUnsupportedProtocol(err):
		outcome = metrics.OutcomeUnsupportedProtocol
	case coreerrors.IsBlockedAddress(err):
		outcome = metrics.OutcomeBlocked
	default:
		outcome = metrics.OutcomeError
	}
	metrics.ObserveFetch(outcome, bytesRead, time.Since(start))
}
