// Package runs provides database operations for sync run tracking.
//
// This package implements the ProgressReporter interface used by the sync
// engine: a run row is created when a sync is submitted, its counters
// advance once per completed batch, and the ordered per-product outcomes
// are attached when the run reaches a terminal status.
//
// # Interface Implementation
//
//	var _ engine.ProgressReporter = (*Repository)(nil)
//
// # Usage
//
//	repo := runs.NewRepository(db)
//	run, err := repo.CreateRun(entities.SyncTriggerManual)
package runs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/worldapptech/woosync/internal/entities"
)

// staleAfter is how long a running row may go without an update before it
// is considered dead (process crashed mid-run).
const staleAfter = 30 * time.Minute

// Repository handles all sync run database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new runs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateRun inserts a new pending run and returns it. The generated UUID is
// the job handle callers poll with.
func (r *Repository) CreateRun(trigger entities.SyncTrigger) (*entities.SyncRun, error) {
	now := time.Now()
	run := entities.SyncRun{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Status:    entities.SyncRunStatusPending,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun retrieves a run by ID.
func (r *Repository) GetRun(id string) (*entities.SyncRun, error) {
	var run entities.SyncRun
	err := r.db.Where("id = ?", id).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *Repository) ListRuns(limit int) ([]entities.SyncRun, error) {
	var list []entities.SyncRun
	q := r.db.Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

// StartRun marks a run as running and records its totals.
// Implements ProgressReporter.StartRun.
func (r *Repository) StartRun(runID string, totalProducts, totalBatches int) error {
	return r.db.Model(&entities.SyncRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"status":         entities.SyncRunStatusRunning,
			"total_products": totalProducts,
			"total_batches":  totalBatches,
			"started_at":     time.Now(),
			"updated_at":     time.Now(),
		}).Error
}

// BatchCompleted advances the progress counters after a batch finishes.
// This is the only intermediate state a polling caller observes.
// Implements ProgressReporter.BatchCompleted.
func (r *Repository) BatchCompleted(runID string, processed, succeeded, failed, batchesCompleted int) error {
	return r.db.Model(&entities.SyncRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"processed_products": processed,
			"succeeded_products": succeeded,
			"failed_products":    failed,
			"batches_completed":  batchesCompleted,
			"updated_at":         time.Now(),
		}).Error
}

// CompleteRun records the final status, authoritative counters and the
// serialized per-product outcomes.
func (r *Repository) CompleteRun(runID string, status entities.SyncRunStatus, succeeded, failed, skipped int, errorMsg string, items []byte) error {
	now := time.Now()
	updates := map[string]any{
		"status":             status,
		"processed_products": succeeded + failed,
		"succeeded_products": succeeded,
		"failed_products":    failed,
		"skipped_products":   skipped,
		"updated_at":         now,
		"completed_at":       now,
	}
	if errorMsg != "" {
		updates["error"] = errorMsg
	}
	if len(items) > 0 {
		updates["items"] = items
	}
	return r.db.Model(&entities.SyncRun{}).
		Where("id = ?", runID).
		Updates(updates).Error
}

// FailRun marks a run as failed before any batch ran (run-level fatal
// errors: sync inactive, storefront credentials missing).
func (r *Repository) FailRun(runID string, reason string) error {
	return r.CompleteRun(runID, entities.SyncRunStatusFailed, 0, 0, 0, reason, nil)
}

// DeleteOldRuns removes terminal runs that completed before the retention
// window. Returns the number of runs deleted.
func (r *Repository) DeleteOldRuns(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.
		Where("status IN ?", []entities.SyncRunStatus{
			entities.SyncRunStatusCompleted,
			entities.SyncRunStatusFailed,
			entities.SyncRunStatusCancelled,
		}).
		Where("completed_at < ?", cutoff).
		Delete(&entities.SyncRun{})
	return result.RowsAffected, result.Error
}

// IsRunActive checks whether a run is pending or running. A running row not
// updated within staleAfter is marked failed and no longer counts.
func (r *Repository) IsRunActive() (bool, error) {
	var run entities.SyncRun
	err := r.db.
		Where("status IN ?", []entities.SyncRunStatus{entities.SyncRunStatusPending, entities.SyncRunStatusRunning}).
		Order("started_at DESC").
		First(&run).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if run.UpdatedAt.Before(time.Now().Add(-staleAfter)) {
		_ = r.FailRun(run.ID, "run was interrupted")
		return false, nil
	}

	return true, nil
}
