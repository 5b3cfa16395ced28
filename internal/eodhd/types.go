// Package eodhd provides a client for the EODHD (End of Day Historical Data) API.
// This package centralizes all market-data provider interactions for the application.
package eodhd

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError represents an error from the EODHD API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// IsUnknownSymbol reports whether err is the provider's response to a symbol
// it does not recognize.
func IsUnknownSymbol(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("EODHD rate limit exceeded, retry after %v", e.RetryAfter)
}
