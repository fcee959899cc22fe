package entities

import (
	"time"

	"gorm.io/datatypes"
)

type SyncRunStatus string

const (
	SyncRunStatusPending   SyncRunStatus = "pending"
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusCompleted SyncRunStatus = "completed"
	SyncRunStatusFailed    SyncRunStatus = "failed"
	SyncRunStatusCancelled SyncRunStatus = "cancelled"
)

type SyncTrigger string

const (
	SyncTriggerManual    SyncTrigger = "manual"
	SyncTriggerScheduled SyncTrigger = "scheduled"
	SyncTriggerCLI       SyncTrigger = "cli"
)

// SyncRun is the persisted record of one sync invocation. Callers submit a
// run and poll it by ID; progress counters advance once per completed batch
// and Items holds the ordered per-product outcomes once the run is terminal.
type SyncRun struct {
	ID      string        `gorm:"primaryKey;size:36" json:"id"`
	Trigger SyncTrigger   `gorm:"size:20" json:"trigger"`
	Status  SyncRunStatus `gorm:"size:20;index" json:"status"`

	TotalProducts     int `json:"total_products"`
	ProcessedProducts int `json:"processed_products"`
	SucceededProducts int `json:"succeeded_products"`
	FailedProducts    int `json:"failed_products"`
	SkippedProducts   int `json:"skipped_products"`
	TotalBatches      int `json:"total_batches"`
	BatchesCompleted  int `json:"batches_completed"`

	Error string         `gorm:"type:text" json:"error,omitempty"`
	Items datatypes.JSON `json:"items,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

// Terminal reports whether the run has finished in any way.
func (r *SyncRun) Terminal() bool {
	switch r.Status {
	case SyncRunStatusCompleted, SyncRunStatusFailed, SyncRunStatusCancelled:
		return true
	}
	return false
}
