package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		WooCommerce
		WordPress
		OpenAI
		Sync
		WooSyncSchedule
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	// WooCommerce holds storefront REST API credentials. The base URL is the
	// shop root (e.g. "https://shop.example.com"); the wc/v3 prefix is added
	// by the client.
	WooCommerce struct {
		BaseURL        string
		ConsumerKey    string
		ConsumerSecret string
	}

	// WordPress holds media upload credentials. SiteURL falls back to the
	// WooCommerce base URL when empty; AppPassword is a WordPress
	// application password, not the account password.
	WordPress struct {
		SiteURL     string
		Username    string
		AppPassword string
	}

	OpenAI struct {
		APIKey string
		Model  string
	}

	// Sync holds the default field-sync toggles. Database-persisted settings
	// override these at run time; see settingsstore.
	Sync struct {
		Active           bool
		Stock            bool
		Price            bool
		Description      bool
		Images           bool
		Enrichment       bool
		OverrideExisting bool
		BatchSize        int
	}

	WooSyncSchedule struct {
		Enabled  bool
		Schedule string // Cron format: "0 */6 * * *" = every 6 hours
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Storefront defaults
	v.SetDefault("woo_base_url", "")
	v.SetDefault("woo_consumer_key", "")
	v.SetDefault("woo_consumer_secret", "")
	v.SetDefault("wp_site_url", "")
	v.SetDefault("wp_username", "")
	v.SetDefault("wp_app_password", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", DefaultEnrichmentModel)

	// Field-sync toggle defaults
	v.SetDefault("sync_active", false)
	v.SetDefault("sync_stock", true)
	v.SetDefault("sync_price", false)
	v.SetDefault("sync_description", true)
	v.SetDefault("sync_images", true)
	v.SetDefault("sync_enrichment", false)
	v.SetDefault("sync_override_existing", false)
	v.SetDefault("sync_batch_size", DefaultBatchSize)

	// Scheduled sync defaults
	v.SetDefault("woo_sync_enabled", false)
	v.SetDefault("woo_sync_schedule", "0 */6 * * *") // Every 6 hours

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "45m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		WooCommerce: WooCommerce{
			BaseURL:        v.GetString("WOO_BASE_URL"),
			ConsumerKey:    v.GetString("WOO_CONSUMER_KEY"),
			ConsumerSecret: v.GetString("WOO_CONSUMER_SECRET"),
		},
		WordPress: WordPress{
			SiteURL:     v.GetString("WP_SITE_URL"),
			Username:    v.GetString("WP_USERNAME"),
			AppPassword: v.GetString("WP_APP_PASSWORD"),
		},
		OpenAI: OpenAI{
			APIKey: v.GetString("OPENAI_API_KEY"),
			Model:  v.GetString("OPENAI_MODEL"),
		},
		Sync: Sync{
			Active:           v.GetBool("SYNC_ACTIVE"),
			Stock:            v.GetBool("SYNC_STOCK"),
			Price:            v.GetBool("SYNC_PRICE"),
			Description:      v.GetBool("SYNC_DESCRIPTION"),
			Images:           v.GetBool("SYNC_IMAGES"),
			Enrichment:       v.GetBool("SYNC_ENRICHMENT"),
			OverrideExisting: v.GetBool("SYNC_OVERRIDE_EXISTING"),
			BatchSize:        v.GetInt("SYNC_BATCH_SIZE"),
		},
		WooSyncSchedule: WooSyncSchedule{
			Enabled:  v.GetBool("WOO_SYNC_ENABLED"),
			Schedule: v.GetString("WOO_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
