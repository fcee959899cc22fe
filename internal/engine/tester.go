package engine

import (
	"context"

	"github.com/worldapptech/woosync/internal/entities"
)

// ServiceStatus is one service's connection test outcome.
type ServiceStatus string

const (
	ServiceOK            ServiceStatus = "ok"
	ServiceNotConfigured ServiceStatus = "not-configured"
	ServiceFailed        ServiceStatus = "failed"
)

// ConnectionStatus pairs a status with the detail behind it.
type ConnectionStatus struct {
	Status ServiceStatus `json:"status"`
	Detail string        `json:"detail,omitempty"`
}

// ConnectionReport holds the three independent service test results.
type ConnectionReport struct {
	Storefront ConnectionStatus `json:"storefront"`
	Media      ConnectionStatus `json:"media"`
	Enrichment ConnectionStatus `json:"enrichment"`
}

// TestConnections verifies each service's credentials with a read-only
// call. The three tests are independent: one failing never prevents the
// others, and all three are always reported together. Media and enrichment
// are only tested while their feature toggle is on; otherwise they report
// not-configured without a call. No sync state is touched.
func (e *Engine) TestConnections(ctx context.Context, settings entities.SyncSettings) *ConnectionReport {
	if !settings.Active {
		inactive := ConnectionStatus{Status: ServiceNotConfigured, Detail: "sync is not active"}
		return &ConnectionReport{Storefront: inactive, Media: inactive, Enrichment: inactive}
	}

	report := &ConnectionReport{}

	switch {
	case !settings.StorefrontConfigured():
		report.Storefront = ConnectionStatus{Status: ServiceNotConfigured, Detail: "storefront credentials are not set"}
	default:
		report.Storefront = testService(func() error {
			return e.newStorefront(settings).TestConnection(ctx)
		})
	}

	switch {
	case !settings.SyncImages:
		report.Media = ConnectionStatus{Status: ServiceNotConfigured, Detail: "image sync is disabled"}
	case !settings.MediaConfigured():
		report.Media = ConnectionStatus{Status: ServiceFailed, Detail: "image sync is enabled but media credentials are not set"}
	default:
		report.Media = testService(func() error {
			return e.newMedia(settings).TestConnection(ctx)
		})
	}

	switch {
	case !settings.EnrichmentEnabled:
		report.Enrichment = ConnectionStatus{Status: ServiceNotConfigured, Detail: "enrichment is disabled"}
	case !settings.EnrichmentConfigured():
		report.Enrichment = ConnectionStatus{Status: ServiceFailed, Detail: "enrichment is enabled but no API key is set"}
	default:
		report.Enrichment = testService(func() error {
			return e.newEnrichment(settings).TestConnection(ctx)
		})
	}

	return report
}

func testService(test func() error) ConnectionStatus {
	if err := test(); err != nil {
		return ConnectionStatus{Status: ServiceFailed, Detail: err.Error()}
	}
	return ConnectionStatus{Status: ServiceOK}
}
