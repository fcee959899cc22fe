package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/worldapptech/woosync/internal/database/categories"
	"github.com/worldapptech/woosync/internal/database/products"
	"github.com/worldapptech/woosync/internal/database/runs"
	"github.com/worldapptech/woosync/internal/engine"
	"github.com/worldapptech/woosync/internal/http"
	"github.com/worldapptech/woosync/internal/openai"
	"github.com/worldapptech/woosync/internal/settingsstore"
	"github.com/worldapptech/woosync/internal/tasks"
	"github.com/worldapptech/woosync/internal/woocommerce"
	"github.com/worldapptech/woosync/internal/wordpress"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// ProductStore implementations
var _ engine.ProductStore = (*products.Repository)(nil)
var _ http.ProductCounter = (*products.Repository)(nil)

// CategoryStore implementations
var _ engine.CategoryStore = (*categories.Repository)(nil)

// Run lifecycle implementations
var _ http.RunStore = (*runs.Repository)(nil)
var _ tasks.RunRecorder = (*runs.Repository)(nil)
var _ tasks.RunCleaner = (*runs.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// StorefrontClient implementations
var _ engine.StorefrontClient = (*woocommerce.Client)(nil)

// MediaClient implementations
var _ engine.MediaClient = (*wordpress.Client)(nil)

// EnrichmentClient implementations
var _ engine.EnrichmentClient = (*openai.Client)(nil)

// =============================================================================
// Settings Resolution
// =============================================================================

var _ tasks.SettingsSource = (*settingsstore.SettingsStore)(nil)
var _ http.SettingsResolver = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Progress Tracking
// =============================================================================

// ProgressReporter implementations
var _ engine.ProgressReporter = (*runs.Repository)(nil)

// =============================================================================
// Sync Pipeline
// =============================================================================

var _ http.SyncEngine = (*engine.Engine)(nil)
