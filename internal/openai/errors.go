package openai

import (
	"errors"
	"fmt"
)

// ErrInvalidAPIKey indicates the configured API key was rejected
var ErrInvalidAPIKey = errors.New("invalid OpenAI API key")

// ErrRateLimited indicates the API rate limit was exceeded
var ErrRateLimited = errors.New("OpenAI API rate limit exceeded")

// ServerError represents a 5xx error from the OpenAI API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("OpenAI server error: HTTP %d", e.StatusCode)
}
