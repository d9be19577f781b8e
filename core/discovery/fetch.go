// ABOUTME: Shared fetch step of the discovery pipelines
// ABOUTME: Normalizes input, performs one bounded fetch and parses the page

package discovery

import (
	"context"

	"brandscout-api/core/domain"
	"brandscout-api/core/errors"
	"brandscout-api/core/htmldoc"
	"brandscout-api/core/interfaces"
)

// Page is a fetched and parsed HTML document
type Page struct {
	SourceURL string
	FinalURL  string
	Result    *domain.FetchResult
	Doc       *htmldoc.Document
}

// FetchPage normalizes rawURL, fetches it through f and parses the body.
// Every failure is returned as a *errors.DiscoveryError that keeps the
// underlying cause; a non-2xx answer becomes an UpstreamHTTPError.
func FetchPage(ctx context.Context, f interfaces.Fetcher, rawURL string, req domain.FetchRequest) (*Page, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, &errors.DiscoveryError{URL: rawURL, Err: err}
	}

	req.URL = target
	if req.Accept == "" {
		req.Accept = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5"
	}

	res, err := f.Fetch(ctx, req.WithDefaults())
	if err != nil {
		return nil, &errors.DiscoveryError{URL: target, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &errors.DiscoveryError{
			URL: target,
			Err: &errors.UpstreamHTTPError{URL: res.FinalURL, StatusCode: res.StatusCode},
		}
	}

	finalURL := res.FinalURL
	if finalURL == "" {
		finalURL = target
	}

	return &Page{
		SourceURL: target,
		FinalURL:  finalURL,
		Result:    res,
		Doc:       htmldoc.Parse(res.Body, res.ContentType(), finalURL),
	}, nil
}
