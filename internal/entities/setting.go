package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Storefront credentials
	SettingKeyWooSyncActive     = "woo_sync_active"
	SettingKeyWooBaseURL        = "woo_base_url"
	SettingKeyWooConsumerKey    = "woo_consumer_key"
	SettingKeyWooConsumerSecret = "woo_consumer_secret"

	// Media (WordPress) credentials
	SettingKeyWPSiteURL     = "wp_site_url"
	SettingKeyWPUsername    = "wp_username"
	SettingKeyWPAppPassword = "wp_app_password"

	// Enrichment credentials
	SettingKeyOpenAIAPIKey    = "openai_api_key"
	SettingKeyEnrichmentModel = "enrichment_model"

	// Field-sync toggles
	SettingKeySyncStock            = "sync_stock"
	SettingKeySyncPrice            = "sync_price"
	SettingKeySyncDescription      = "sync_description"
	SettingKeySyncImages           = "sync_images"
	SettingKeySyncEnrichment       = "sync_enrichment"
	SettingKeySyncOverrideExisting = "sync_override_existing"
	SettingKeySyncBatchSize        = "sync_batch_size"

	// Scheduled sync settings
	SettingKeyWooSyncScheduleEnabled = "woo_sync_schedule_enabled"
	SettingKeyWooSyncSchedule        = "woo_sync_schedule"
	SettingKeyWooSyncLastAt          = "woo_sync_last_at"
	SettingKeyWooSyncLastStatus      = "woo_sync_last_status"
	SettingKeyWooSyncLastMessage     = "woo_sync_last_message"
)
