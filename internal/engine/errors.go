package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/worldapptech/woosync/internal/mapper"
	"github.com/worldapptech/woosync/internal/openai"
	"github.com/worldapptech/woosync/internal/woocommerce"
	"github.com/worldapptech/woosync/internal/wordpress"
)

// Run-level fatal errors. Both are raised before any batch starts and
// leave every product's sync state untouched.
var (
	ErrSyncInactive            = errors.New("sync is not active")
	ErrStorefrontNotConfigured = errors.New("storefront credentials are not configured")
)

// FailureKind classifies a per-product failure.
type FailureKind string

const (
	// FailureConfiguration is a feature enabled without the credentials it
	// needs, or credentials a service rejects.
	FailureConfiguration FailureKind = "configuration"
	// FailureTransient is an interruption that a later run can be expected
	// to get past, such as a cancelled context or a lock held by an
	// overlapping run.
	FailureTransient FailureKind = "transient"
	// FailurePersistent is a service error that retrying will not fix,
	// including transient errors whose in-client retries were exhausted.
	FailurePersistent FailureKind = "persistent"
	// FailureValidation is a product that cannot be represented on the
	// storefront, caught before any network call.
	FailureValidation FailureKind = "validation"
)

// SyncError is a classified per-product failure. It never crosses the
// orchestrator boundary; callers of Run only see it as report text.
type SyncError struct {
	Kind FailureKind
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newSyncError(kind FailureKind, format string, args ...any) *SyncError {
	return &SyncError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// classify maps an error from any pipeline stage onto the failure
// taxonomy. Service clients retry transient failures internally, so a
// rate-limit or server error arriving here has exhausted its retries and
// counts as persistent.
func classify(err error) *SyncError {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr
	}

	var validationErr *mapper.ValidationError
	if errors.As(err, &validationErr) {
		return &SyncError{Kind: FailureValidation, Err: err}
	}

	switch {
	case errors.Is(err, woocommerce.ErrInvalidCredentials),
		errors.Is(err, wordpress.ErrInvalidCredentials),
		errors.Is(err, openai.ErrInvalidAPIKey):
		return &SyncError{Kind: FailureConfiguration, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &SyncError{Kind: FailureTransient, Err: err}
	}

	return &SyncError{Kind: FailurePersistent, Err: err}
}
