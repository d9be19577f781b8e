package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "url",
		Message: "must not be blank",
	}

	expected := "validation error on field 'url': must not be blank"
	if err.Error() != expected {
		t.Errorf("ValidationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestUnsupportedProtocolError_Error(t *testing.T) {
	err := &UnsupportedProtocolError{Scheme: "file", URL: "file:///etc/passwd"}

	expected := `unsupported protocol "file" in file:///etc/passwd: only http and https are allowed`
	if err.Error() != expected {
		t.Errorf("UnsupportedProtocolError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestOversizedResponseError_Error(t *testing.T) {
	declared := &OversizedResponseError{URL: "https://example.com", MaxBytes: 10, Declared: true, Length: 20}
	if declared.Error() != "response from https://example.com declares 20 bytes, over the 10 byte limit" {
		t.Errorf("unexpected declared message: %s", declared.Error())
	}

	streamed := &OversizedResponseError{URL: "https://example.com", MaxBytes: 10}
	if streamed.Error() != "response from https://example.com exceeds the 10 byte limit" {
		t.Errorf("unexpected streamed message: %s", streamed.Error())
	}
}

func TestUpstreamHTTPError_Error(t *testing.T) {
	err := &UpstreamHTTPError{URL: "https://example.com", StatusCode: 503}

	expected := "upstream https://example.com responded with status 503"
	if err.Error() != expected {
		t.Errorf("UpstreamHTTPError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestRateLimitedError_Error(t *testing.T) {
	err := &RateLimitedError{Limit: 5, RetryAfter: 90 * time.Second}

	expected := "rate limit of 5 requests exceeded; retry after 1m30s"
	if err.Error() != expected {
		t.Errorf("RateLimitedError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestDiscoveryError_UnwrapsFetchFailure(t *testing.T) {
	timeout := &TimeoutError{URL: "https://slow.example", Timeout: 10 * time.Second}
	err := &DiscoveryError{URL: "slow.example", Err: timeout}

	if !IsTimeout(err) {
		t.Error("IsTimeout should see through DiscoveryError")
	}
	if !IsDiscovery(err) {
		t.Error("IsDiscovery should return true for DiscoveryError")
	}
	if !errors.Is(err, timeout) {
		t.Error("errors.Is should find the wrapped TimeoutError")
	}

	expected := "discovery failed for slow.example: fetching https://slow.example timed out after 10s"
	if err.Error() != expected {
		t.Errorf("DiscoveryError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsHelpers_False(t *testing.T) {
	err := errors.New("some other error")

	checks := map[string]func(error) bool{
		"IsValidation":          IsValidation,
		"IsUnsupportedProtocol": IsUnsupportedProtocol,
		"IsTimeout":             IsTimeout,
		"IsOversized":           IsOversized,
		"IsUpstreamHTTP":        IsUpstreamHTTP,
		"IsBlockedAddress":      IsBlockedAddress,
		"IsRateLimited":         IsRateLimited,
		"IsDiscovery":           IsDiscovery,
	}
	for name, check := range checks {
		if check(err) {
			t.Errorf("%s should return false for a plain error", name)
		}
	}
}

func TestIsBlockedAddress_WrappedError(t *testing.T) {
	blocked := &BlockedAddressError{Host: "internal.example", Address: "10.0.0.5"}
	wrapped := fmt.Errorf("dial tcp: %w", blocked)

	if !IsBlockedAddress(wrapped) {
		t.Error("IsBlockedAddress should return true for wrapped BlockedAddressError")
	}
	if blocked.Error() != "refusing to connect to internal.example: resolves to non-public address 10.0.0.5" {
		t.Errorf("unexpected message: %s", blocked.Error())
	}
}

func TestWrapError_PreservesOriginalError(t *testing.T) {
	originalErr := &ValidationError{Field: "url", Message: "must not be blank"}
	wrappedErr := WrapError(originalErr, "normalize input")

	if wrappedErr == nil {
		t.Fatal("WrapError should not return nil for non-nil error")
	}

	expectedMsg := "normalize input: validation error on field 'url': must not be blank"
	if wrappedErr.Error() != expectedMsg {
		t.Errorf("WrapError message = %v, want %v", wrappedErr.Error(), expectedMsg)
	}

	if !IsValidation(wrappedErr) {
		t.Error("Wrapped error should still be identifiable as ValidationError")
	}
}

func TestWrapError_HandlesNilError(t *testing.T) {
	if WrapError(nil, "this should not happen") != nil {
		t.Error("WrapError should return nil when wrapping nil error")
	}
}
