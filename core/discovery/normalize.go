// ABOUTME: Input normalization shared by the brand and script pipelines
// ABOUTME: Turns user-typed hosts into absolute URLs without ever hiding a bad scheme

package discovery

import (
	"regexp"
	"strings"

	"brandscout-api/core/errors"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// NormalizeURL trims raw and makes it absolute. Inputs that already carry a
// scheme (file:/x and mailto:a@b included) are returned as-is so the fetcher
// can reject non-HTTP(S) ones; protocol-relative inputs get https:, bare
// hosts and host:port inputs get https://.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &errors.ValidationError{Field: "url", Message: "must not be blank"}
	}

	switch {
	case hasScheme(trimmed):
		return trimmed, nil
	case strings.HasPrefix(trimmed, "//"):
		return "https:" + trimmed, nil
	default:
		return "https://" + trimmed, nil
	}
}

// hasScheme reports whether s starts with "scheme:". A colon followed only by
// digits up to the first path, query or fragment is a port, not a scheme.
func hasScheme(s string) bool {
	loc := schemePattern.FindStringIndex(s)
	if loc == nil {
		return false
	}
	rest := s[loc[1]:]
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	return !isPort(rest)
}

func isPort(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
