// ABOUTME: Caller identity extraction for rate limiting and request logs
// ABOUTME: Proxy headers are only honored when explicitly trusted

package middleware

import (
	"net"
	"net/http"
	"strings"
)

// extractIP gets the client IP from the request. RemoteAddr is used unless
// trustProxy is set, since X-Forwarded-For is caller-controlled otherwise.
func extractIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := lastForwardedFor(r.Header.Values("X-Forwarded-For")); ip != "" {
			return ip
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// lastForwardedFor returns the rightmost X-Forwarded-For entry, the one our
// proxy appended. Entries to its left are whatever the client sent.
func lastForwardedFor(values []string) string {
	for i := len(values) - 1; i >= 0; i-- {
		entries := strings.Split(values[i], ",")
		for j := len(entries) - 1; j >= 0; j-- {
			if ip := strings.TrimSpace(entries[j]); ip != "" {
				return ip
			}
		}
	}
	return ""
}
