package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/worldapptech/woosync/internal/engine"
	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/tasks"
)

// SyncEngine is the part of the sync engine the HTTP layer drives directly.
// Runs themselves execute through the task queue, not through this interface.
type SyncEngine interface {
	EnableSyncForProductsWithImages() (int64, error)
	TestConnections(ctx context.Context, settings entities.SyncSettings) *engine.ConnectionReport
}

// ProductCounter supplies catalog counts for the sync summary.
type ProductCounter interface {
	CountEnabled() (int64, error)
	CountWithImages() (int64, error)
}

// SettingsResolver produces the effective settings snapshot used for
// submission gate checks.
type SettingsResolver interface {
	ResolveSyncSettings() entities.SyncSettings
}

// SyncController handles sync run submission and inspection.
type SyncController struct {
	engine     SyncEngine
	runs       RunStore
	products   ProductCounter
	settings   SettingsResolver
	taskClient *tasks.Client
}

// NewSyncController creates a new SyncController.
func NewSyncController(eng SyncEngine, runs RunStore, products ProductCounter, settings SettingsResolver, taskClient *tasks.Client) *SyncController {
	return &SyncController{
		engine:     eng,
		runs:       runs,
		products:   products,
		settings:   settings,
		taskClient: taskClient,
	}
}

// SubmitRunRequest selects the products a requested run covers.
// ProductIDs takes precedence over AllEnabled when both are given.
type SubmitRunRequest struct {
	ProductIDs     []uint `json:"product_ids"`
	AllEnabled     bool   `json:"all_enabled"`
	WithImagesOnly bool   `json:"with_images_only"`
}

// SubmitRun handles POST /api/sync/runs
// Creates a pending run row and enqueues it for background execution.
// Returns 202 with the run ID; progress is polled via GetRun.
func (sc *SyncController) SubmitRun(c *gin.Context) {
	if sc.taskClient == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is not enabled")
		return
	}

	var req SubmitRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	if len(req.ProductIDs) == 0 && !req.AllEnabled {
		respondBadRequest(c, "either product_ids or all_enabled is required")
		return
	}

	settings := sc.settings.ResolveSyncSettings()
	if !settings.Active {
		respondUnprocessable(c, "sync is not active")
		return
	}
	if !settings.StorefrontConfigured() {
		respondUnprocessable(c, "storefront credentials are not configured")
		return
	}

	active, err := sc.runs.IsRunActive()
	if err != nil {
		respondInternalError(c, err, "checking active runs")
		return
	}
	if active {
		respondConflict(c, "a sync run is already in progress")
		return
	}

	run, err := sc.runs.CreateRun(entities.SyncTriggerManual)
	if err != nil {
		respondInternalError(c, err, "creating sync run")
		return
	}

	task := tasks.SyncRunTask{
		RunID:          run.ID,
		ProductIDs:     req.ProductIDs,
		AllEnabled:     req.AllEnabled,
		WithImagesOnly: req.WithImagesOnly,
	}
	if _, err := sc.taskClient.Add(task).Save(); err != nil {
		// Fail the pending row so it cannot block future submissions.
		_ = sc.runs.FailRun(run.ID, "failed to enqueue run: "+err.Error())
		respondInternalError(c, err, "enqueueing sync run")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"run_id": run.ID,
		"status": run.Status,
	})
}

// GetRun handles GET /api/sync/runs/:id
// Returns the full run row including per-product outcomes once complete.
func (sc *SyncController) GetRun(c *gin.Context) {
	run, err := sc.runs.GetRun(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "run")
			return
		}
		respondInternalError(c, err, "fetching sync run")
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListRuns handles GET /api/sync/runs
// Returns the most recent runs, newest first. The limit query parameter
// defaults to 20 and is capped at 100.
func (sc *SyncController) ListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "invalid limit")
			return
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	runs, err := sc.runs.ListRuns(limit)
	if err != nil {
		respondInternalError(c, err, "listing sync runs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetSummary handles GET /api/sync/summary
// Reports catalog readiness counts and whether a run is currently active.
func (sc *SyncController) GetSummary(c *gin.Context) {
	enabled, err := sc.products.CountEnabled()
	if err != nil {
		respondInternalError(c, err, "counting enabled products")
		return
	}

	withImages, err := sc.products.CountWithImages()
	if err != nil {
		respondInternalError(c, err, "counting products with images")
		return
	}

	active, err := sc.runs.IsRunActive()
	if err != nil {
		respondInternalError(c, err, "checking active runs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products_enabled":     enabled,
		"products_with_images": withImages,
		"run_active":           active,
	})
}

// EnableProductsWithImages handles POST /api/sync/enable-products-with-images
// Turns sync on for every product that carries a primary image and reports
// how many products that covered.
func (sc *SyncController) EnableProductsWithImages(c *gin.Context) {
	count, err := sc.engine.EnableSyncForProductsWithImages()
	if err != nil {
		respondInternalError(c, err, "enabling products with images")
		return
	}

	c.JSON(http.StatusOK, gin.H{"enabled_count": count})
}

// TestConnections handles POST /api/sync/test-connections
// Probes each configured service with a read-only call. The three results
// are independent and always reported together.
func (sc *SyncController) TestConnections(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	settings := sc.settings.ResolveSyncSettings()
	report := sc.engine.TestConnections(ctx, settings)

	c.JSON(http.StatusOK, report)
}
