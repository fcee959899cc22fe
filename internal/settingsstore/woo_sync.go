package settingsstore

import (
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/worldapptech/woosync/internal/config"
	"github.com/worldapptech/woosync/internal/entities"
)

// Environment variable names mirror the config package keys so a value set
// for process startup is also visible to the settings store.
const (
	envWooSyncActive      = "SYNC_ACTIVE"
	envWooBaseURL         = "WOO_BASE_URL"
	envWooConsumerKey     = "WOO_CONSUMER_KEY"
	envWooConsumerSecret  = "WOO_CONSUMER_SECRET"
	envWPSiteURL          = "WP_SITE_URL"
	envWPUsername         = "WP_USERNAME"
	envWPAppPassword      = "WP_APP_PASSWORD"
	envOpenAIAPIKey       = "OPENAI_API_KEY"
	envEnrichmentModel    = "OPENAI_MODEL"
	envSyncStock          = "SYNC_STOCK"
	envSyncPrice          = "SYNC_PRICE"
	envSyncDescription    = "SYNC_DESCRIPTION"
	envSyncImages         = "SYNC_IMAGES"
	envSyncEnrichment     = "SYNC_ENRICHMENT"
	envSyncOverride       = "SYNC_OVERRIDE_EXISTING"
	envSyncBatchSize      = "SYNC_BATCH_SIZE"
	envWooSyncSchedEnable = "WOO_SYNC_ENABLED"
	envWooSyncSchedule    = "WOO_SYNC_SCHEDULE"
)

// WooSyncConfigInfo is the full sync configuration with per-field source
// information for the settings API. Credentials are masked for display.
type WooSyncConfigInfo struct {
	Active       bool   `json:"active"`
	ActiveSource string `json:"active_source"` // "database", "environment", "default"

	BaseURL       string `json:"base_url"`
	BaseURLSource string `json:"base_url_source"`

	ConsumerKey       string `json:"consumer_key"` // Masked for display
	ConsumerKeySource string `json:"consumer_key_source"`
	HasConsumerKey    bool   `json:"has_consumer_key"`

	ConsumerSecret       string `json:"consumer_secret"` // Masked for display
	ConsumerSecretSource string `json:"consumer_secret_source"`
	HasConsumerSecret    bool   `json:"has_consumer_secret"`

	MediaSiteURL       string `json:"media_site_url"`
	MediaSiteURLSource string `json:"media_site_url_source"`

	MediaUsername       string `json:"media_username"`
	MediaUsernameSource string `json:"media_username_source"`

	MediaAppPassword       string `json:"media_app_password"` // Masked for display
	MediaAppPasswordSource string `json:"media_app_password_source"`
	HasMediaAppPassword    bool   `json:"has_media_app_password"`

	OpenAIAPIKey       string `json:"openai_api_key"` // Masked for display
	OpenAIAPIKeySource string `json:"openai_api_key_source"`
	HasOpenAIAPIKey    bool   `json:"has_openai_api_key"`

	EnrichmentModel       string `json:"enrichment_model"`
	EnrichmentModelSource string `json:"enrichment_model_source"`

	SyncStock             bool   `json:"sync_stock"`
	SyncStockSource       string `json:"sync_stock_source"`
	SyncPrice             bool   `json:"sync_price"`
	SyncPriceSource       string `json:"sync_price_source"`
	SyncDescription       bool   `json:"sync_description"`
	SyncDescriptionSource string `json:"sync_description_source"`
	SyncImages            bool   `json:"sync_images"`
	SyncImagesSource      string `json:"sync_images_source"`
	SyncEnrichment        bool   `json:"sync_enrichment"`
	SyncEnrichmentSource  string `json:"sync_enrichment_source"`

	OverrideExisting       bool   `json:"override_existing"`
	OverrideExistingSource string `json:"override_existing_source"`

	BatchSize       int    `json:"batch_size"`
	BatchSizeSource string `json:"batch_size_source"`

	ScheduleEnabled       bool   `json:"schedule_enabled"`
	ScheduleEnabledSource string `json:"schedule_enabled_source"`

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`
}

// WooSyncStatus represents the last scheduled sync outcome
type WooSyncStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"`  // "submitted", "success", "failed", ""
	Message   string     `json:"message,omitempty"` // Error message or run summary
}

// GetWooSyncActive reports whether synchronization may run at all
// (database > env > default).
func (s *SettingsStore) GetWooSyncActive() bool {
	return s.getBool(entities.SettingKeyWooSyncActive, envWooSyncActive, false)
}

// SetWooSyncActive saves the master switch to database
func (s *SettingsStore) SetWooSyncActive(active bool) error {
	return s.db.SetSetting(entities.SettingKeyWooSyncActive, strconv.FormatBool(active))
}

// GetWooBaseURL returns the storefront base URL (database > env > "")
func (s *SettingsStore) GetWooBaseURL() string {
	return s.getString(entities.SettingKeyWooBaseURL, envWooBaseURL, "")
}

// SetWooBaseURL saves the storefront base URL to database
func (s *SettingsStore) SetWooBaseURL(url string) error {
	return s.db.SetSetting(entities.SettingKeyWooBaseURL, url)
}

// GetWooConsumerKey returns the storefront API consumer key (database > env > "")
func (s *SettingsStore) GetWooConsumerKey() string {
	return s.getString(entities.SettingKeyWooConsumerKey, envWooConsumerKey, "")
}

// SetWooConsumerKey saves the consumer key to database
func (s *SettingsStore) SetWooConsumerKey(key string) error {
	return s.db.SetSetting(entities.SettingKeyWooConsumerKey, key)
}

// GetWooConsumerSecret returns the storefront API consumer secret (database > env > "")
func (s *SettingsStore) GetWooConsumerSecret() string {
	return s.getString(entities.SettingKeyWooConsumerSecret, envWooConsumerSecret, "")
}

// SetWooConsumerSecret saves the consumer secret to database
func (s *SettingsStore) SetWooConsumerSecret(secret string) error {
	return s.db.SetSetting(entities.SettingKeyWooConsumerSecret, secret)
}

// GetWPSiteURL returns the media site URL (database > env > ""). An empty
// value means the storefront base URL is used for media uploads.
func (s *SettingsStore) GetWPSiteURL() string {
	return s.getString(entities.SettingKeyWPSiteURL, envWPSiteURL, "")
}

// SetWPSiteURL saves the media site URL to database
func (s *SettingsStore) SetWPSiteURL(url string) error {
	return s.db.SetSetting(entities.SettingKeyWPSiteURL, url)
}

// GetWPUsername returns the media upload username (database > env > "")
func (s *SettingsStore) GetWPUsername() string {
	return s.getString(entities.SettingKeyWPUsername, envWPUsername, "")
}

// SetWPUsername saves the media upload username to database
func (s *SettingsStore) SetWPUsername(username string) error {
	return s.db.SetSetting(entities.SettingKeyWPUsername, username)
}

// GetWPAppPassword returns the media application password (database > env > "")
func (s *SettingsStore) GetWPAppPassword() string {
	return s.getString(entities.SettingKeyWPAppPassword, envWPAppPassword, "")
}

// SetWPAppPassword saves the media application password to database
func (s *SettingsStore) SetWPAppPassword(password string) error {
	return s.db.SetSetting(entities.SettingKeyWPAppPassword, password)
}

// GetOpenAIAPIKey returns the enrichment API key (database > env > "")
func (s *SettingsStore) GetOpenAIAPIKey() string {
	return s.getString(entities.SettingKeyOpenAIAPIKey, envOpenAIAPIKey, "")
}

// SetOpenAIAPIKey saves the enrichment API key to database
func (s *SettingsStore) SetOpenAIAPIKey(key string) error {
	return s.db.SetSetting(entities.SettingKeyOpenAIAPIKey, key)
}

// GetEnrichmentModel returns the chat model used for enrichment
// (database > env > default)
func (s *SettingsStore) GetEnrichmentModel() string {
	return s.getString(entities.SettingKeyEnrichmentModel, envEnrichmentModel, config.DefaultEnrichmentModel)
}

// SetEnrichmentModel saves the enrichment model to database
func (s *SettingsStore) SetEnrichmentModel(model string) error {
	return s.db.SetSetting(entities.SettingKeyEnrichmentModel, model)
}

// GetSyncStock reports whether stock levels are pushed (database > env > true)
func (s *SettingsStore) GetSyncStock() bool {
	return s.getBool(entities.SettingKeySyncStock, envSyncStock, true)
}

// SetSyncStock saves the stock toggle to database
func (s *SettingsStore) SetSyncStock(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeySyncStock, strconv.FormatBool(enabled))
}

// GetSyncPrice reports whether prices are pushed (database > env > false)
func (s *SettingsStore) GetSyncPrice() bool {
	return s.getBool(entities.SettingKeySyncPrice, envSyncPrice, false)
}

// SetSyncPrice saves the price toggle to database
func (s *SettingsStore) SetSyncPrice(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeySyncPrice, strconv.FormatBool(enabled))
}

// GetSyncDescription reports whether descriptions are pushed (database > env > true)
func (s *SettingsStore) GetSyncDescription() bool {
	return s.getBool(entities.SettingKeySyncDescription, envSyncDescription, true)
}

// SetSyncDescription saves the description toggle to database
func (s *SettingsStore) SetSyncDescription(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeySyncDescription, strconv.FormatBool(enabled))
}

// GetSyncImages reports whether images are uploaded (database > env > true)
func (s *SettingsStore) GetSyncImages() bool {
	return s.getBool(entities.SettingKeySyncImages, envSyncImages, true)
}

// SetSyncImages saves the image toggle to database
func (s *SettingsStore) SetSyncImages(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeySyncImages, strconv.FormatBool(enabled))
}

// GetSyncEnrichment reports whether enrichment runs before mapping
// (database > env > false)
func (s *SettingsStore) GetSyncEnrichment() bool {
	return s.getBool(entities.SettingKeySyncEnrichment, envSyncEnrichment, false)
}

// SetSyncEnrichment saves the enrichment toggle to database
func (s *SettingsStore) SetSyncEnrichment(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeySyncEnrichment, strconv.FormatBool(enabled))
}

// GetSyncOverrideExisting reports whether enrichment suggestions replace
// already-filled fields (database > env > false)
func (s *SettingsStore) GetSyncOverrideExisting() bool {
	return s.getBool(entities.SettingKeySyncOverrideExisting, envSyncOverride, false)
}

// SetSyncOverrideExisting saves the override policy to database
func (s *SettingsStore) SetSyncOverrideExisting(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeySyncOverrideExisting, strconv.FormatBool(enabled))
}

// GetSyncBatchSize returns the number of products pushed per batch
// (database > env > default). Non-positive values fall back to the default.
func (s *SettingsStore) GetSyncBatchSize() int {
	n := s.getInt(entities.SettingKeySyncBatchSize, envSyncBatchSize, config.DefaultBatchSize)
	if n <= 0 {
		return config.DefaultBatchSize
	}
	return n
}

// SetSyncBatchSize saves the batch size to database
func (s *SettingsStore) SetSyncBatchSize(size int) error {
	return s.db.SetSetting(entities.SettingKeySyncBatchSize, strconv.Itoa(size))
}

// GetWooSyncScheduleEnabled reports whether scheduled sync is enabled
// (database > env > default)
func (s *SettingsStore) GetWooSyncScheduleEnabled() bool {
	return s.getBool(entities.SettingKeyWooSyncScheduleEnabled, envWooSyncSchedEnable, false)
}

// SetWooSyncScheduleEnabled saves the schedule switch to database
func (s *SettingsStore) SetWooSyncScheduleEnabled(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeyWooSyncScheduleEnabled, strconv.FormatBool(enabled))
}

// GetWooSyncSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetWooSyncSchedule() string {
	// Default: every 6 hours
	return s.getString(entities.SettingKeyWooSyncSchedule, envWooSyncSchedule, "0 */6 * * *")
}

// SetWooSyncSchedule saves the cron schedule to database
func (s *SettingsStore) SetWooSyncSchedule(schedule string) error {
	return s.db.SetSetting(entities.SettingKeyWooSyncSchedule, schedule)
}

// ResolveSyncSettings builds the effective settings snapshot for a single
// sync invocation. Callers resolve once and pass the value on so toggles
// changed mid-run never affect a run already in flight.
func (s *SettingsStore) ResolveSyncSettings() entities.SyncSettings {
	return entities.SyncSettings{
		Active:            s.GetWooSyncActive(),
		WooBaseURL:        s.GetWooBaseURL(),
		WooConsumerKey:    s.GetWooConsumerKey(),
		WooConsumerSecret: s.GetWooConsumerSecret(),
		WPSiteURL:         s.GetWPSiteURL(),
		WPUsername:        s.GetWPUsername(),
		WPAppPassword:     s.GetWPAppPassword(),
		OpenAIAPIKey:      s.GetOpenAIAPIKey(),
		EnrichmentModel:   s.GetEnrichmentModel(),
		SyncStock:         s.GetSyncStock(),
		SyncPrice:         s.GetSyncPrice(),
		SyncDescription:   s.GetSyncDescription(),
		SyncImages:        s.GetSyncImages(),
		EnrichmentEnabled: s.GetSyncEnrichment(),
		OverrideExisting:  s.GetSyncOverrideExisting(),
		BatchSize:         s.GetSyncBatchSize(),
	}
}

// GetWooSyncConfigInfo returns the configuration with source information
// and masked credentials
func (s *SettingsStore) GetWooSyncConfigInfo() WooSyncConfigInfo {
	consumerKey := s.GetWooConsumerKey()
	consumerSecret := s.GetWooConsumerSecret()
	appPassword := s.GetWPAppPassword()
	apiKey := s.GetOpenAIAPIKey()

	return WooSyncConfigInfo{
		Active:       s.GetWooSyncActive(),
		ActiveSource: s.source(entities.SettingKeyWooSyncActive, envWooSyncActive),

		BaseURL:       s.GetWooBaseURL(),
		BaseURLSource: s.source(entities.SettingKeyWooBaseURL, envWooBaseURL),

		ConsumerKey:       maskToken(consumerKey),
		ConsumerKeySource: s.source(entities.SettingKeyWooConsumerKey, envWooConsumerKey),
		HasConsumerKey:    consumerKey != "",

		ConsumerSecret:       maskToken(consumerSecret),
		ConsumerSecretSource: s.source(entities.SettingKeyWooConsumerSecret, envWooConsumerSecret),
		HasConsumerSecret:    consumerSecret != "",

		MediaSiteURL:       s.GetWPSiteURL(),
		MediaSiteURLSource: s.source(entities.SettingKeyWPSiteURL, envWPSiteURL),

		MediaUsername:       s.GetWPUsername(),
		MediaUsernameSource: s.source(entities.SettingKeyWPUsername, envWPUsername),

		MediaAppPassword:       maskToken(appPassword),
		MediaAppPasswordSource: s.source(entities.SettingKeyWPAppPassword, envWPAppPassword),
		HasMediaAppPassword:    appPassword != "",

		OpenAIAPIKey:       maskToken(apiKey),
		OpenAIAPIKeySource: s.source(entities.SettingKeyOpenAIAPIKey, envOpenAIAPIKey),
		HasOpenAIAPIKey:    apiKey != "",

		EnrichmentModel:       s.GetEnrichmentModel(),
		EnrichmentModelSource: s.source(entities.SettingKeyEnrichmentModel, envEnrichmentModel),

		SyncStock:             s.GetSyncStock(),
		SyncStockSource:       s.source(entities.SettingKeySyncStock, envSyncStock),
		SyncPrice:             s.GetSyncPrice(),
		SyncPriceSource:       s.source(entities.SettingKeySyncPrice, envSyncPrice),
		SyncDescription:       s.GetSyncDescription(),
		SyncDescriptionSource: s.source(entities.SettingKeySyncDescription, envSyncDescription),
		SyncImages:            s.GetSyncImages(),
		SyncImagesSource:      s.source(entities.SettingKeySyncImages, envSyncImages),
		SyncEnrichment:        s.GetSyncEnrichment(),
		SyncEnrichmentSource:  s.source(entities.SettingKeySyncEnrichment, envSyncEnrichment),

		OverrideExisting:       s.GetSyncOverrideExisting(),
		OverrideExistingSource: s.source(entities.SettingKeySyncOverrideExisting, envSyncOverride),

		BatchSize:       s.GetSyncBatchSize(),
		BatchSizeSource: s.source(entities.SettingKeySyncBatchSize, envSyncBatchSize),

		ScheduleEnabled:       s.GetWooSyncScheduleEnabled(),
		ScheduleEnabledSource: s.source(entities.SettingKeyWooSyncScheduleEnabled, envWooSyncSchedEnable),

		Schedule:       s.GetWooSyncSchedule(),
		ScheduleSource: s.source(entities.SettingKeyWooSyncSchedule, envWooSyncSchedule),
	}
}

// GetWooSyncStatus returns the last scheduled sync status
func (s *SettingsStore) GetWooSyncStatus() WooSyncStatus {
	status := WooSyncStatus{}

	// Get last run timestamp
	if setting, err := s.db.GetSetting(entities.SettingKeyWooSyncLastAt); err == nil && setting.Value != "" {
		if ts, err := time.Parse(time.RFC3339, setting.Value); err == nil {
			status.LastRunAt = &ts
		}
	}

	// Get last status
	if setting, err := s.db.GetSetting(entities.SettingKeyWooSyncLastStatus); err == nil {
		status.Status = setting.Value
	}

	// Get last message
	if setting, err := s.db.GetSetting(entities.SettingKeyWooSyncLastMessage); err == nil {
		status.Message = setting.Value
	}

	return status
}

// SetWooSyncStatus updates the scheduled sync status. The three record
// fields are written in one transaction.
func (s *SettingsStore) SetWooSyncStatus(status, message string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	return s.db.SetSettings(map[string]string{
		entities.SettingKeyWooSyncLastAt:      now,
		entities.SettingKeyWooSyncLastStatus:  status,
		entities.SettingKeyWooSyncLastMessage: message,
	})
}

// ClearWooSyncSettings clears all database overrides, reverting to
// env/default. The last run status is kept.
func (s *SettingsStore) ClearWooSyncSettings() error {
	return s.db.DeleteSettings(
		entities.SettingKeyWooSyncActive,
		entities.SettingKeyWooBaseURL,
		entities.SettingKeyWooConsumerKey,
		entities.SettingKeyWooConsumerSecret,
		entities.SettingKeyWPSiteURL,
		entities.SettingKeyWPUsername,
		entities.SettingKeyWPAppPassword,
		entities.SettingKeyOpenAIAPIKey,
		entities.SettingKeyEnrichmentModel,
		entities.SettingKeySyncStock,
		entities.SettingKeySyncPrice,
		entities.SettingKeySyncDescription,
		entities.SettingKeySyncImages,
		entities.SettingKeySyncEnrichment,
		entities.SettingKeySyncOverrideExisting,
		entities.SettingKeySyncBatchSize,
		entities.SettingKeyWooSyncScheduleEnabled,
		entities.SettingKeyWooSyncSchedule,
	)
}

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next sync will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
