package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/worldapptech/woosync/internal/entities"
)

func fullyConfigured() entities.SyncSettings {
	settings := activeSettings()
	settings.SyncImages = true
	settings.WPUsername = "admin"
	settings.WPAppPassword = "secret"
	settings.EnrichmentEnabled = true
	settings.OpenAIAPIKey = "sk-test"
	return settings
}

func TestTestConnections_AllOK(t *testing.T) {
	te := newTestEngine()

	report := te.TestConnections(context.Background(), fullyConfigured())

	if report.Storefront.Status != ServiceOK {
		t.Errorf("expected storefront ok, got %+v", report.Storefront)
	}
	if report.Media.Status != ServiceOK {
		t.Errorf("expected media ok, got %+v", report.Media)
	}
	if report.Enrichment.Status != ServiceOK {
		t.Errorf("expected enrichment ok, got %+v", report.Enrichment)
	}
}

func TestTestConnections_InactiveReportsNotConfigured(t *testing.T) {
	te := newTestEngine()
	settings := fullyConfigured()
	settings.Active = false

	report := te.TestConnections(context.Background(), settings)

	for name, status := range map[string]ConnectionStatus{
		"storefront": report.Storefront,
		"media":      report.Media,
		"enrichment": report.Enrichment,
	} {
		if status.Status != ServiceNotConfigured {
			t.Errorf("%s should be not-configured while inactive, got %+v", name, status)
		}
	}
}

func TestTestConnections_DisabledImageSyncSkipsMedia(t *testing.T) {
	te := newTestEngine()
	settings := fullyConfigured()
	// Credentials stay present; only the feature toggle goes off.
	settings.SyncImages = false

	report := te.TestConnections(context.Background(), settings)

	if report.Media.Status != ServiceNotConfigured {
		t.Errorf("media should report not-configured with image sync disabled, got %+v", report.Media)
	}
	if report.Storefront.Status != ServiceOK {
		t.Errorf("storefront should be unaffected, got %+v", report.Storefront)
	}
}

func TestTestConnections_EnabledFeatureWithoutCredentialsFails(t *testing.T) {
	te := newTestEngine()
	settings := fullyConfigured()
	settings.OpenAIAPIKey = ""

	report := te.TestConnections(context.Background(), settings)

	if report.Enrichment.Status != ServiceFailed {
		t.Errorf("enrichment enabled without a key should fail, got %+v", report.Enrichment)
	}
}

func TestTestConnections_ResultsAreIndependent(t *testing.T) {
	te := newTestEngine()
	te.storefront.testErr = errors.New("connection refused")

	report := te.TestConnections(context.Background(), fullyConfigured())

	if report.Storefront.Status != ServiceFailed {
		t.Errorf("expected storefront failure, got %+v", report.Storefront)
	}
	if report.Storefront.Detail != "connection refused" {
		t.Errorf("expected failure detail, got %q", report.Storefront.Detail)
	}
	if report.Media.Status != ServiceOK || report.Enrichment.Status != ServiceOK {
		t.Errorf("other services must be tested regardless, got %+v", report)
	}
}

func TestTestConnections_MissingStorefrontCredentials(t *testing.T) {
	te := newTestEngine()
	settings := fullyConfigured()
	settings.WooConsumerKey = ""

	report := te.TestConnections(context.Background(), settings)

	if report.Storefront.Status != ServiceNotConfigured {
		t.Errorf("expected storefront not-configured, got %+v", report.Storefront)
	}
}
