package http

import (
	"github.com/worldapptech/woosync/internal/database"
	"github.com/worldapptech/woosync/internal/scheduler"
	"github.com/worldapptech/woosync/internal/settingsstore"
	"github.com/worldapptech/woosync/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database      *database.Database
	SettingsStore *settingsstore.SettingsStore

	// Sync run handling
	Engine   SyncEngine
	Runs     RunStore
	Products ProductCounter

	// Scheduled sync
	Scheduler *scheduler.WooSyncScheduler

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}
