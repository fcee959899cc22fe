package http

import "github.com/worldapptech/woosync/internal/entities"

// This file consolidates the store interface definitions shared across HTTP
// controllers. Each controller defines its own interface (Interface
// Segregation Principle); interfaces needed by more than one controller
// live here instead of in a single controller file.

// --- Shared Interfaces ---

// RunStore provides sync run persistence. The sync controller uses the full
// surface for submission and inspection; the settings controller only needs
// IsRunActive to guard manual triggers.
type RunStore interface {
	CreateRun(trigger entities.SyncTrigger) (*entities.SyncRun, error)
	GetRun(id string) (*entities.SyncRun, error)
	ListRuns(limit int) ([]entities.SyncRun, error)
	FailRun(runID string, reason string) error
	IsRunActive() (bool, error)
}

// --- Interface Documentation ---
//
// Controller-specific interfaces (defined in their respective files):
//
// SyncEngine (sync.go):
//   - Connection probing against the configured services
//   - Bulk enabling of products that carry images
//
// ProductCounter (sync.go):
//   - Catalog counts for the sync summary endpoint
//
// SettingsResolver (sync.go):
//   - Effective settings snapshot for submission gate checks
//
// These interfaces follow the Interface Segregation Principle:
// each controller only depends on the methods it actually uses.
