package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/worldapptech/woosync/internal/engine"
	"github.com/worldapptech/woosync/internal/entities"
)

// SettingsSource resolves the effective sync settings once per run.
type SettingsSource interface {
	ResolveSyncSettings() entities.SyncSettings
}

// RunRecorder persists a run's lifecycle around the engine invocation.
type RunRecorder interface {
	CompleteRun(runID string, status entities.SyncRunStatus, succeeded, failed, skipped int, errorMsg string, items []byte) error
	FailRun(runID string, reason string) error
}

// SyncRunTask executes one synchronization run. The run row referenced by
// RunID already exists in pending state; submitting the task is what turns
// a sync request into a job handle the caller can poll.
type SyncRunTask struct {
	RunID          string `json:"run_id"`
	ProductIDs     []uint `json:"product_ids,omitempty"`
	AllEnabled     bool   `json:"all_enabled,omitempty"`
	WithImagesOnly bool   `json:"with_images_only,omitempty"`
}

// Config returns the queue configuration for sync run tasks. A run is never
// retried automatically: re-pushing a whole catalog on a transient hiccup
// is the caller's call, and per-call retries already happen inside the
// service clients.
func (t SyncRunTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync_run",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncRunProcessor creates a processor function for SyncRunTask. Settings
// are resolved once here so the whole run sees one consistent snapshot.
func SyncRunProcessor(eng *engine.Engine, settings SettingsSource, recorder RunRecorder) backlite.QueueProcessor[SyncRunTask] {
	return func(ctx context.Context, task SyncRunTask) error {
		if eng == nil {
			return fmt.Errorf("sync engine not configured")
		}

		syncSettings := settings.ResolveSyncSettings()

		report, err := eng.Run(ctx, task.RunID, engine.Request{
			ProductIDs:     task.ProductIDs,
			AllEnabled:     task.AllEnabled,
			WithImagesOnly: task.WithImagesOnly,
		}, syncSettings)
		if err != nil {
			if failErr := recorder.FailRun(task.RunID, err.Error()); failErr != nil {
				log.Printf("[TASK ERROR] failed to record run failure: %v", failErr)
			}
			return fmt.Errorf("sync run %s: %w", task.RunID, err)
		}

		items, err := json.Marshal(report.Results)
		if err != nil {
			log.Printf("[TASK ERROR] failed to serialize run outcomes: %v", err)
			items = nil
		}

		status := entities.SyncRunStatusCompleted
		if report.Cancelled {
			status = entities.SyncRunStatusCancelled
		}
		if err := recorder.CompleteRun(task.RunID, status, report.Succeeded, report.Failed, report.Skipped, "", items); err != nil {
			return fmt.Errorf("record run completion: %w", err)
		}

		log.Printf("[TASK] Sync run %s complete: %d succeeded, %d failed, %d skipped",
			task.RunID, report.Succeeded, report.Failed, report.Skipped)
		return nil
	}
}

// NewSyncRunQueue creates a backlite queue for sync run tasks.
func NewSyncRunQueue(eng *engine.Engine, settings SettingsSource, recorder RunRecorder) backlite.Queue {
	return backlite.NewQueue(SyncRunProcessor(eng, settings, recorder))
}
