package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/worldapptech/woosync/internal/scheduler"
	"github.com/worldapptech/woosync/internal/settingsstore"
)

// WooSyncSettingsController handles WooCommerce sync settings and manual triggers
type WooSyncSettingsController struct {
	settingsStore *settingsstore.SettingsStore
	scheduler     *scheduler.WooSyncScheduler
	runs          RunStore
}

// NewWooSyncSettingsController creates a new controller
func NewWooSyncSettingsController(store *settingsstore.SettingsStore, sched *scheduler.WooSyncScheduler, runs RunStore) *WooSyncSettingsController {
	return &WooSyncSettingsController{
		settingsStore: store,
		scheduler:     sched,
		runs:          runs,
	}
}

// SchedulePreset is a common cron schedule offered to API consumers.
type SchedulePreset struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// WooSyncSettingsResponse is the response for GET /api/settings/sync
type WooSyncSettingsResponse struct {
	Config    settingsstore.WooSyncConfigInfo `json:"config"`
	Status    settingsstore.WooSyncStatus     `json:"status"`
	NextRun   *time.Time                      `json:"next_run,omitempty"`
	IsRunning bool                            `json:"is_running"`
	RunActive bool                            `json:"run_active"`
	Presets   []SchedulePreset                `json:"presets"`
}

// GetSettings returns the effective sync settings with per-field sources
func (c *WooSyncSettingsController) GetSettings(ctx *gin.Context) {
	if c.settingsStore == nil {
		respondError(ctx, http.StatusInternalServerError, "settings store not available")
		return
	}

	config := c.settingsStore.GetWooSyncConfigInfo()
	status := c.settingsStore.GetWooSyncStatus()

	var nextRun *time.Time
	isRunning := false
	if c.scheduler != nil {
		nextRun = c.scheduler.GetNextRunTime()
		isRunning = c.scheduler.IsRunning()
	}

	runActive := false
	if c.runs != nil {
		active, err := c.runs.IsRunActive()
		if err != nil {
			respondInternalError(ctx, err, "checking active runs")
			return
		}
		runActive = active
	}

	ctx.JSON(http.StatusOK, WooSyncSettingsResponse{
		Config:    config,
		Status:    status,
		NextRun:   nextRun,
		IsRunning: isRunning,
		RunActive: runActive,
		Presets: []SchedulePreset{
			{Label: "Every 15 minutes", Value: "*/15 * * * *", Description: "Runs at :00, :15, :30, :45"},
			{Label: "Every 30 minutes", Value: "*/30 * * * *", Description: "Runs at :00, :30"},
			{Label: "Every hour", Value: "0 * * * *", Description: "Runs at the top of every hour"},
			{Label: "Every 6 hours", Value: "0 */6 * * *", Description: "Runs at midnight, 6am, noon, 6pm"},
			{Label: "Daily at 3am", Value: "0 3 * * *", Description: "Runs once daily at 03:00"},
			{Label: "Weekly on Sunday", Value: "0 0 * * 0", Description: "Runs every Sunday at midnight"},
		},
	})
}

// UpdateWooSyncSettingsRequest is the request body for POST /api/settings/sync.
// String fields are skipped when empty; pointer fields are skipped when null,
// so a partial body only touches the keys it names.
type UpdateWooSyncSettingsRequest struct {
	Active           *bool  `json:"active"`
	BaseURL          string `json:"base_url"`
	ConsumerKey      string `json:"consumer_key"`
	ConsumerSecret   string `json:"consumer_secret"`
	MediaSiteURL     string `json:"media_site_url"`
	MediaUsername    string `json:"media_username"`
	MediaAppPassword string `json:"media_app_password"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	EnrichmentModel  string `json:"enrichment_model"`

	SyncStock            *bool `json:"sync_stock"`
	SyncPrice            *bool `json:"sync_price"`
	SyncDescription      *bool `json:"sync_description"`
	SyncImages           *bool `json:"sync_images"`
	SyncEnrichment       *bool `json:"sync_enrichment"`
	SyncOverrideExisting *bool `json:"sync_override_existing"`
	BatchSize            *int  `json:"batch_size"`

	ScheduleEnabled *bool  `json:"schedule_enabled"`
	Schedule        string `json:"schedule"`
}

// UpdateSettings saves the provided settings as database overrides
func (c *WooSyncSettingsController) UpdateSettings(ctx *gin.Context) {
	if c.settingsStore == nil {
		respondError(ctx, http.StatusInternalServerError, "settings store not available")
		return
	}

	var req UpdateWooSyncSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid request: "+err.Error())
		return
	}

	if req.Schedule != "" {
		if err := settingsstore.ValidateCronSchedule(req.Schedule); err != nil {
			respondBadRequest(ctx, "invalid cron schedule: "+err.Error())
			return
		}
	}
	if req.BatchSize != nil && *req.BatchSize < 1 {
		respondBadRequest(ctx, "batch_size must be at least 1")
		return
	}

	if err := c.applySettings(req); err != nil {
		respondInternalError(ctx, err, "saving sync settings")
		return
	}

	// Pick up schedule and enable/disable changes without a restart.
	if c.scheduler != nil {
		if err := c.scheduler.Reschedule(); err != nil {
			respondError(ctx, http.StatusInternalServerError, "settings saved but failed to reschedule: "+err.Error())
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  c.settingsStore.GetWooSyncConfigInfo(),
	})
}

// applySettings writes each provided field to the settings store.
func (c *WooSyncSettingsController) applySettings(req UpdateWooSyncSettingsRequest) error {
	if req.Active != nil {
		if err := c.settingsStore.SetWooSyncActive(*req.Active); err != nil {
			return fmt.Errorf("save active flag: %w", err)
		}
	}
	if req.BaseURL != "" {
		if err := c.settingsStore.SetWooBaseURL(req.BaseURL); err != nil {
			return fmt.Errorf("save base URL: %w", err)
		}
	}
	if req.ConsumerKey != "" {
		if err := c.settingsStore.SetWooConsumerKey(req.ConsumerKey); err != nil {
			return fmt.Errorf("save consumer key: %w", err)
		}
	}
	if req.ConsumerSecret != "" {
		if err := c.settingsStore.SetWooConsumerSecret(req.ConsumerSecret); err != nil {
			return fmt.Errorf("save consumer secret: %w", err)
		}
	}
	if req.MediaSiteURL != "" {
		if err := c.settingsStore.SetWPSiteURL(req.MediaSiteURL); err != nil {
			return fmt.Errorf("save WordPress site URL: %w", err)
		}
	}
	if req.MediaUsername != "" {
		if err := c.settingsStore.SetWPUsername(req.MediaUsername); err != nil {
			return fmt.Errorf("save WordPress username: %w", err)
		}
	}
	if req.MediaAppPassword != "" {
		if err := c.settingsStore.SetWPAppPassword(req.MediaAppPassword); err != nil {
			return fmt.Errorf("save WordPress app password: %w", err)
		}
	}
	if req.OpenAIAPIKey != "" {
		if err := c.settingsStore.SetOpenAIAPIKey(req.OpenAIAPIKey); err != nil {
			return fmt.Errorf("save OpenAI API key: %w", err)
		}
	}
	if req.EnrichmentModel != "" {
		if err := c.settingsStore.SetEnrichmentModel(req.EnrichmentModel); err != nil {
			return fmt.Errorf("save enrichment model: %w", err)
		}
	}
	if req.SyncStock != nil {
		if err := c.settingsStore.SetSyncStock(*req.SyncStock); err != nil {
			return fmt.Errorf("save stock toggle: %w", err)
		}
	}
	if req.SyncPrice != nil {
		if err := c.settingsStore.SetSyncPrice(*req.SyncPrice); err != nil {
			return fmt.Errorf("save price toggle: %w", err)
		}
	}
	if req.SyncDescription != nil {
		if err := c.settingsStore.SetSyncDescription(*req.SyncDescription); err != nil {
			return fmt.Errorf("save description toggle: %w", err)
		}
	}
	if req.SyncImages != nil {
		if err := c.settingsStore.SetSyncImages(*req.SyncImages); err != nil {
			return fmt.Errorf("save image toggle: %w", err)
		}
	}
	if req.SyncEnrichment != nil {
		if err := c.settingsStore.SetSyncEnrichment(*req.SyncEnrichment); err != nil {
			return fmt.Errorf("save enrichment toggle: %w", err)
		}
	}
	if req.SyncOverrideExisting != nil {
		if err := c.settingsStore.SetSyncOverrideExisting(*req.SyncOverrideExisting); err != nil {
			return fmt.Errorf("save override toggle: %w", err)
		}
	}
	if req.BatchSize != nil {
		if err := c.settingsStore.SetSyncBatchSize(*req.BatchSize); err != nil {
			return fmt.Errorf("save batch size: %w", err)
		}
	}
	if req.ScheduleEnabled != nil {
		if err := c.settingsStore.SetWooSyncScheduleEnabled(*req.ScheduleEnabled); err != nil {
			return fmt.Errorf("save schedule enabled flag: %w", err)
		}
	}
	if req.Schedule != "" {
		if err := c.settingsStore.SetWooSyncSchedule(req.Schedule); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}
	}
	return nil
}

// ResetSettings clears database overrides, reverting to env/defaults
func (c *WooSyncSettingsController) ResetSettings(ctx *gin.Context) {
	if c.settingsStore == nil {
		respondError(ctx, http.StatusInternalServerError, "settings store not available")
		return
	}

	if err := c.settingsStore.ClearWooSyncSettings(); err != nil {
		respondInternalError(ctx, err, "resetting sync settings")
		return
	}

	// Reschedule with the reverted settings
	if c.scheduler != nil {
		_ = c.scheduler.Reschedule()
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  c.settingsStore.GetWooSyncConfigInfo(),
	})
}

// GetStatus returns just the sync status (for polling)
func (c *WooSyncSettingsController) GetStatus(ctx *gin.Context) {
	if c.settingsStore == nil {
		respondError(ctx, http.StatusInternalServerError, "settings store not available")
		return
	}

	var nextRun *time.Time
	isRunning := false
	if c.scheduler != nil {
		nextRun = c.scheduler.GetNextRunTime()
		isRunning = c.scheduler.IsRunning()
	}

	runActive := false
	if c.runs != nil {
		active, err := c.runs.IsRunActive()
		if err != nil {
			respondInternalError(ctx, err, "checking active runs")
			return
		}
		runActive = active
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     c.settingsStore.GetWooSyncStatus(),
		"next_run":   nextRun,
		"is_running": isRunning,
		"run_active": runActive,
	})
}

// SyncNow triggers an immediate sync of all enabled products
func (c *WooSyncSettingsController) SyncNow(ctx *gin.Context) {
	if c.scheduler == nil {
		respondError(ctx, http.StatusInternalServerError, "scheduler not available")
		return
	}

	settings := c.settingsStore.ResolveSyncSettings()
	if !settings.Active {
		respondBadRequest(ctx, "sync is not active. Enable it first.")
		return
	}
	if !settings.StorefrontConfigured() {
		respondBadRequest(ctx, "storefront credentials are not configured. Configure them first.")
		return
	}

	if c.runs != nil {
		active, err := c.runs.IsRunActive()
		if err != nil {
			respondInternalError(ctx, err, "checking active runs")
			return
		}
		if active {
			respondConflict(ctx, "a sync run is already in progress")
			return
		}
	}

	if err := c.scheduler.RunNow(); err != nil {
		respondInternalError(ctx, err, "submitting sync run")
		return
	}

	respondAccepted(ctx, "sync run submitted in background", nil)
}
