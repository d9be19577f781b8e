// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP statuses and renders every error as {"error": "..."}

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"brandscout-api/core/errors"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Human-readable failure description"`
}

// Error implements the error interface
func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorBody) GetStatus() int {
	return e.Status
}

// NewError replaces huma.NewError so framework errors (bad JSON, schema
// violations) share the ErrorBody shape
func NewError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return &ErrorBody{Status: status, Message: msg}
}

// toHTTPError converts domain errors to the matching HTTP error
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsValidation(err), errors.IsUnsupportedProtocol(err):
		return &ErrorBody{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.IsRateLimited(err):
		return &ErrorBody{Status: http.StatusTooManyRequests, Message: err.Error()}
	default:
		// Timeouts, oversized bodies, upstream non-2xx, blocked addresses
		return &ErrorBody{Status: http.StatusInternalServerError, Message: err.Error()}
	}
}
