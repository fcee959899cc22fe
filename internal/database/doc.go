// Package database opens the catalog store and hosts its per-domain
// repositories.
//
// database.go owns the gorm connection and schema migration. Everything
// else lives in sub-packages, one per aggregate:
//
//	database/
//	├── products/    product catalog and per-entity sync state
//	├── runs/        sync run rows and progress counters
//	├── categories/  local cache of storefront categories
//	└── settings/    key/value application settings
//
// Each sub-package exposes a Repository constructed from the shared
// handle:
//
//	db, err := database.NewDatabase(cfg.Database.Path)
//	productsRepo := products.NewRepository(db.DB)
//	runsRepo := runs.NewRepository(db.DB)
//
// Repositories satisfy the narrow interfaces declared by their
// consumers, verified by the compile-time checks in internal/interfaces:
//
//   - products.Repository: engine.ProductStore and http.ProductCounter
//   - categories.Repository: engine.CategoryStore
//   - runs.Repository: engine.ProgressReporter, http.RunStore,
//     tasks.RunRecorder and tasks.RunCleaner
//
// A new aggregate gets its own sub-package with a Repository struct
// around *gorm.DB, a NewRepository constructor and a compile-time check
// against the interface it serves.
package database
