package wordpress

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials indicates the username/application password pair
// was rejected
var ErrInvalidCredentials = errors.New("invalid WordPress credentials")

// ErrRateLimited indicates the API rate limit was exceeded
var ErrRateLimited = errors.New("WordPress API rate limit exceeded")

// ServerError represents a 5xx error from the WordPress API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("WordPress server error: HTTP %d", e.StatusCode)
}
