package settingsstore

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldapptech/woosync/internal/config"
	"github.com/worldapptech/woosync/internal/entities"
)

// clearSyncEnv unsets every sync-related environment variable for the
// duration of a test so defaults are observable, restoring originals on
// cleanup.
func clearSyncEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		envWooSyncActive, envWooBaseURL, envWooConsumerKey, envWooConsumerSecret,
		envWPSiteURL, envWPUsername, envWPAppPassword,
		envOpenAIAPIKey, envEnrichmentModel,
		envSyncStock, envSyncPrice, envSyncDescription, envSyncImages,
		envSyncEnrichment, envSyncOverride, envSyncBatchSize,
		envWooSyncSchedEnable, envWooSyncSchedule,
	}
	for _, v := range vars {
		if orig, ok := os.LookupEnv(v); ok {
			t.Cleanup(func() { os.Setenv(v, orig) })
			os.Unsetenv(v)
		}
	}
}

func TestWooSyncActive(t *testing.T) {
	store, repo, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	// Default should be inactive
	assert.False(t, store.GetWooSyncActive())

	// Set via database
	require.NoError(t, store.SetWooSyncActive(true))
	assert.True(t, store.GetWooSyncActive())

	// Clear and verify fallback
	require.NoError(t, repo.DeleteSetting(entities.SettingKeyWooSyncActive))
	assert.False(t, store.GetWooSyncActive())
}

func TestWooSyncActiveWithEnv(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	os.Setenv(envWooSyncActive, "true")
	defer os.Unsetenv(envWooSyncActive)

	// Should read from env
	assert.True(t, store.GetWooSyncActive())

	// Database should override env
	require.NoError(t, store.SetWooSyncActive(false))
	assert.False(t, store.GetWooSyncActive())
}

func TestStorefrontCredentials(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	// Default should be unconfigured
	assert.Empty(t, store.GetWooBaseURL())
	assert.Empty(t, store.GetWooConsumerKey())
	assert.Empty(t, store.GetWooConsumerSecret())

	require.NoError(t, store.SetWooBaseURL("https://shop.example.com"))
	require.NoError(t, store.SetWooConsumerKey("ck_a1b2c3d4e5f6"))
	require.NoError(t, store.SetWooConsumerSecret("cs_f6e5d4c3b2a1"))

	assert.Equal(t, "https://shop.example.com", store.GetWooBaseURL())
	assert.Equal(t, "ck_a1b2c3d4e5f6", store.GetWooConsumerKey())
	assert.Equal(t, "cs_f6e5d4c3b2a1", store.GetWooConsumerSecret())
}

func TestStorefrontCredentialsWithEnv(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	os.Setenv(envWooConsumerKey, "ck_from_env")
	defer os.Unsetenv(envWooConsumerKey)

	assert.Equal(t, "ck_from_env", store.GetWooConsumerKey())

	// Database should override env
	require.NoError(t, store.SetWooConsumerKey("ck_from_db"))
	assert.Equal(t, "ck_from_db", store.GetWooConsumerKey())
}

func TestFieldToggleDefaults(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	// Stock, description and images sync out of the box; price,
	// enrichment and override are opt-in.
	assert.True(t, store.GetSyncStock())
	assert.False(t, store.GetSyncPrice())
	assert.True(t, store.GetSyncDescription())
	assert.True(t, store.GetSyncImages())
	assert.False(t, store.GetSyncEnrichment())
	assert.False(t, store.GetSyncOverrideExisting())
}

func TestFieldToggleOverrides(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	require.NoError(t, store.SetSyncStock(false))
	require.NoError(t, store.SetSyncPrice(true))
	require.NoError(t, store.SetSyncEnrichment(true))
	require.NoError(t, store.SetSyncOverrideExisting(true))

	assert.False(t, store.GetSyncStock())
	assert.True(t, store.GetSyncPrice())
	assert.True(t, store.GetSyncEnrichment())
	assert.True(t, store.GetSyncOverrideExisting())
}

func TestSyncBatchSize(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	// Default
	assert.Equal(t, config.DefaultBatchSize, store.GetSyncBatchSize())

	// Set via database
	require.NoError(t, store.SetSyncBatchSize(10))
	assert.Equal(t, 10, store.GetSyncBatchSize())

	// Non-positive values fall back to the default
	require.NoError(t, store.SetSyncBatchSize(0))
	assert.Equal(t, config.DefaultBatchSize, store.GetSyncBatchSize())

	require.NoError(t, store.SetSyncBatchSize(-3))
	assert.Equal(t, config.DefaultBatchSize, store.GetSyncBatchSize())
}

func TestEnrichmentModel(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	// Default
	assert.Equal(t, config.DefaultEnrichmentModel, store.GetEnrichmentModel())

	// Environment
	os.Setenv(envEnrichmentModel, "gpt-4o-mini")
	defer os.Unsetenv(envEnrichmentModel)
	assert.Equal(t, "gpt-4o-mini", store.GetEnrichmentModel())

	// Database should override env
	require.NoError(t, store.SetEnrichmentModel("gpt-4-turbo"))
	assert.Equal(t, "gpt-4-turbo", store.GetEnrichmentModel())
}

func TestWooSyncSchedule(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	// Default should be every 6 hours, disabled
	assert.False(t, store.GetWooSyncScheduleEnabled())
	assert.Equal(t, "0 */6 * * *", store.GetWooSyncSchedule())

	require.NoError(t, store.SetWooSyncScheduleEnabled(true))
	require.NoError(t, store.SetWooSyncSchedule("*/15 * * * *"))

	assert.True(t, store.GetWooSyncScheduleEnabled())
	assert.Equal(t, "*/15 * * * *", store.GetWooSyncSchedule())
}

func TestResolveSyncSettings(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	require.NoError(t, store.SetWooSyncActive(true))
	require.NoError(t, store.SetWooBaseURL("https://shop.example.com"))
	require.NoError(t, store.SetWooConsumerKey("ck_key"))
	require.NoError(t, store.SetWooConsumerSecret("cs_secret"))
	require.NoError(t, store.SetWPUsername("uploader"))
	require.NoError(t, store.SetWPAppPassword("abcd efgh ijkl"))
	require.NoError(t, store.SetSyncPrice(true))
	require.NoError(t, store.SetSyncBatchSize(3))

	settings := store.ResolveSyncSettings()

	assert.True(t, settings.Active)
	assert.Equal(t, "https://shop.example.com", settings.WooBaseURL)
	assert.Equal(t, "ck_key", settings.WooConsumerKey)
	assert.Equal(t, "cs_secret", settings.WooConsumerSecret)
	assert.True(t, settings.StorefrontConfigured())
	assert.True(t, settings.MediaConfigured())
	// Media site falls back to the storefront URL when unset
	assert.Equal(t, "https://shop.example.com", settings.MediaSiteURL())
	assert.False(t, settings.EnrichmentConfigured())
	assert.True(t, settings.SyncStock)
	assert.True(t, settings.SyncPrice)
	assert.Equal(t, 3, settings.BatchSize)
}

func TestWooSyncConfigInfo(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	require.NoError(t, store.SetWooSyncActive(true))
	require.NoError(t, store.SetWooConsumerKey("ck_a1b2c3d4e5f6"))
	require.NoError(t, store.SetOpenAIAPIKey("sk-proj-abcdefgh"))

	info := store.GetWooSyncConfigInfo()

	assert.True(t, info.Active)
	assert.Equal(t, "database", info.ActiveSource)

	// Credentials come back masked, with presence flags
	assert.Equal(t, "ck_a****e5f6", info.ConsumerKey)
	assert.Equal(t, "database", info.ConsumerKeySource)
	assert.True(t, info.HasConsumerKey)

	assert.Empty(t, info.ConsumerSecret)
	assert.False(t, info.HasConsumerSecret)
	assert.Equal(t, "default", info.ConsumerSecretSource)

	assert.Equal(t, "sk-p****efgh", info.OpenAIAPIKey)
	assert.True(t, info.HasOpenAIAPIKey)

	assert.Equal(t, config.DefaultEnrichmentModel, info.EnrichmentModel)
	assert.Equal(t, "default", info.EnrichmentModelSource)

	assert.True(t, info.SyncStock)
	assert.Equal(t, "default", info.SyncStockSource)

	assert.Equal(t, config.DefaultBatchSize, info.BatchSize)
	assert.Equal(t, "0 */6 * * *", info.Schedule)
	assert.Equal(t, "default", info.ScheduleSource)
}

func TestWooSyncConfigInfoEnvSource(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	os.Setenv(envWooBaseURL, "https://env.example.com")
	defer os.Unsetenv(envWooBaseURL)

	info := store.GetWooSyncConfigInfo()

	assert.Equal(t, "https://env.example.com", info.BaseURL)
	assert.Equal(t, "environment", info.BaseURLSource)
}

func TestWooSyncStatus(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	// Initially no status
	status := store.GetWooSyncStatus()
	assert.Nil(t, status.LastRunAt)
	assert.Empty(t, status.Status)
	assert.Empty(t, status.Message)

	// Set success status
	require.NoError(t, store.SetWooSyncStatus("success", "Pushed 42 products"))

	status = store.GetWooSyncStatus()
	assert.NotNil(t, status.LastRunAt)
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "Pushed 42 products", status.Message)

	// Verify timestamp is recent
	assert.True(t, time.Since(*status.LastRunAt) < time.Minute)

	// Set failed status
	require.NoError(t, store.SetWooSyncStatus("failed", "storefront credentials are not configured"))

	status = store.GetWooSyncStatus()
	assert.Equal(t, "failed", status.Status)
	assert.Equal(t, "storefront credentials are not configured", status.Message)
}

func TestClearWooSyncSettings(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()
	clearSyncEnv(t)

	require.NoError(t, store.SetWooSyncActive(true))
	require.NoError(t, store.SetWooBaseURL("https://shop.example.com"))
	require.NoError(t, store.SetWooConsumerKey("ck_key"))
	require.NoError(t, store.SetSyncPrice(true))
	require.NoError(t, store.SetSyncBatchSize(20))
	require.NoError(t, store.SetWooSyncStatus("success", "Pushed 7 products"))

	require.NoError(t, store.ClearWooSyncSettings())

	// Config reverts to defaults
	assert.False(t, store.GetWooSyncActive())
	assert.Empty(t, store.GetWooBaseURL())
	assert.Empty(t, store.GetWooConsumerKey())
	assert.False(t, store.GetSyncPrice())
	assert.Equal(t, config.DefaultBatchSize, store.GetSyncBatchSize())

	// Status survives a config reset
	status := store.GetWooSyncStatus()
	assert.Equal(t, "success", status.Status)
	assert.NotNil(t, status.LastRunAt)
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 */6 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 * * 0", true},
		{"every tuesday", false},
		{"* * * *", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Every 6 hours", GetCronDescription("0 */6 * * *"))
	assert.Equal(t, "Every 15 minutes", GetCronDescription("*/15 * * * *"))
	assert.Equal(t, "Custom schedule: 30 2 * * 1", GetCronDescription("30 2 * * 1"))
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(61*time.Minute)))

	_, err = GetNextRunTime("not a schedule")
	assert.Error(t, err)
}
