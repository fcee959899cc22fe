package woocommerce

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials indicates the configured consumer key/secret were
// rejected by the storefront
var ErrInvalidCredentials = errors.New("invalid WooCommerce API credentials")

// ErrRateLimited indicates the API rate limit was exceeded
var ErrRateLimited = errors.New("WooCommerce API rate limit exceeded")

// ErrNotFound indicates the requested remote resource does not exist
var ErrNotFound = errors.New("WooCommerce resource not found")

// ServerError represents a 5xx error from the WooCommerce API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("WooCommerce server error: HTTP %d", e.StatusCode)
}

// APIError represents a non-retryable 4xx rejection with the storefront's
// error code and message parsed from the response body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("WooCommerce API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("WooCommerce API error (status %d): %s", e.StatusCode, e.Message)
}
