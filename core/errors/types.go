// ABOUTME: Custom error types for the discovery pipeline
// ABOUTME: Provides the typed failure taxonomy surfaced to callers and API responses

package errors

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError represents an invalid caller input such as a blank URL
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// UnsupportedProtocolError is returned before any I/O when a URL scheme is not http(s)
type UnsupportedProtocolError struct {
	Scheme string
	URL    string
}

// Error implements the error interface
func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unsupported protocol %q in %s: only http and https are allowed", e.Scheme, e.URL)
}

// TimeoutError is returned when the fetch budget expires
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetching %s timed out after %s", e.URL, e.Timeout)
}

// OversizedResponseError is returned when a body exceeds the byte budget
type OversizedResponseError struct {
	URL      string
	MaxBytes int64

	// Declared is true when the Content-Length header alone triggered the failure
	Declared bool
	Length   int64
}

// Error implements the error interface
func (e *OversizedResponseError) Error() string {
	if e.Declared {
		return fmt.Sprintf("response from %s declares %d bytes, over the %d byte limit", e.URL, e.Length, e.MaxBytes)
	}
	return fmt.Sprintf("response from %s exceeds the %d byte limit", e.URL, e.MaxBytes)
}

// UpstreamHTTPError represents a non-2xx answer from the target site
type UpstreamHTTPError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface
func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream %s responded with status %d", e.URL, e.StatusCode)
}

// BlockedAddressError is returned when a target resolves to a non-public address
type BlockedAddressError struct {
	Host    string
	Address string
}

// Error implements the error interface
func (e *BlockedAddressError) Error() string {
	if e.Host != "" && e.Host != e.Address {
		return fmt.Sprintf("refusing to connect to %s: resolves to non-public address %s", e.Host, e.Address)
	}
	return fmt.Sprintf("refusing to connect to non-public address %s", e.Address)
}

// RateLimitedError signals that the caller exhausted its admission budget
type RateLimitedError struct {
	Key        string
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit of %d requests exceeded; retry after %s", e.Limit, e.RetryAfter.Round(time.Second))
}

// DiscoveryError wraps a pipeline failure with the URL the caller asked for
type DiscoveryError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.URL, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is and errors.As
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsUnsupportedProtocol checks if an error is an UnsupportedProtocolError
func IsUnsupportedProtocol(err error) bool {
	var protoErr *UnsupportedProtocolError
	return errors.As(err, &protoErr)
}

// IsTimeout checks if an error is a TimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsOversized checks if an error is an OversizedResponseError
func IsOversized(err error) bool {
	var sizeErr *OversizedResponseError
	return errors.As(err, &sizeErr)
}

// IsUpstreamHTTP checks if an error is an UpstreamHTTPError
func IsUpstreamHTTP(err error) bool {
	var upstreamErr *UpstreamHTTPError
	return errors.As(err, &upstreamErr)
}

// IsBlockedAddress checks if an error is a BlockedAddressError
func IsBlockedAddress(err error) bool {
	var blockedErr *BlockedAddressError
	return errors.As(err, &blockedErr)
}

// IsRateLimited checks if an error is a RateLimitedError
func IsRateLimited(err error) bool {
	var limitErr *RateLimitedError
	return errors.As(err, &limitErr)
}

// IsDiscovery checks if an error is a DiscoveryError
func IsDiscovery(err error) bool {
	var discoveryErr *DiscoveryError
	return errors.As(err, &discoveryErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
