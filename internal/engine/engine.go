// Package engine implements the product synchronization engine: it resolves
// which products a run covers, drives the per-product pipeline (optional
// enrichment, field mapping, storefront upsert, optional image upload,
// state write) in fixed-size batches, and aggregates a per-product report.
//
// One product's failure never aborts its batch or the run; the only
// run-level failures are an inactive sync or missing storefront
// credentials, both raised before any batch starts.
//
// Settings are resolved once per invocation and passed in as a snapshot, so
// toggles changed mid-run never affect a run already in flight.
//
// # Usage
//
//	eng := engine.NewEngine(productsRepo, categoriesRepo, runsRepo)
//	report, err := eng.Run(ctx, runID, engine.Request{AllEnabled: true}, settings)
package engine

import (
	"context"
	"log"
	"time"

	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/mapper"
	"github.com/worldapptech/woosync/internal/openai"
	"github.com/worldapptech/woosync/internal/woocommerce"
	"github.com/worldapptech/woosync/internal/wordpress"
)

// ProductStore is the catalog and sync state persistence the engine needs.
type ProductStore interface {
	GetProductsByIDs(ids []uint) ([]entities.Product, error)
	ListEnabled() ([]entities.Product, error)
	EnableSyncForProductsWithImages() (int64, error)
	MarkProductSynced(id uint, wooID string, at time.Time) error
	MarkProductFailed(id uint, message string) error
	SetProductWooID(id uint, wooID string) error
	ClearProductWooID(id uint) error
	MarkVariantSynced(id uint, wooID string, at time.Time) error
	MarkVariantFailed(id uint, message string) error
}

// CategoryStore is the local cache of storefront categories.
type CategoryStore interface {
	Replace(list []entities.WooCategory) error
	ListNames() ([]string, error)
	IDByName(name string) (int, bool)
}

// ProgressReporter receives batch-level progress. Implementations must
// tolerate being called from whatever goroutine runs the engine.
type ProgressReporter interface {
	StartRun(runID string, totalProducts, totalBatches int) error
	BatchCompleted(runID string, processed, succeeded, failed, batchesCompleted int) error
}

// StorefrontClient is the storefront API surface the pipeline uses.
type StorefrontClient interface {
	TestConnection(ctx context.Context) error
	CreateProduct(ctx context.Context, payload *woocommerce.ProductPayload) (string, error)
	UpdateProduct(ctx context.Context, wooID string, payload *woocommerce.ProductPayload) error
	FindProductBySKU(ctx context.Context, sku string) (string, error)
	CreateVariation(ctx context.Context, parentID string, payload *woocommerce.VariationPayload) (string, error)
	UpdateVariation(ctx context.Context, parentID, variationID string, payload *woocommerce.VariationPayload) error
	ListCategories(ctx context.Context) ([]woocommerce.Category, error)
}

// MediaClient uploads image binaries and returns their public URL.
type MediaClient interface {
	TestConnection(ctx context.Context) error
	UploadImage(ctx context.Context, data []byte, filename string) (*wordpress.Media, error)
}

// EnrichmentClient produces content suggestions for a product.
type EnrichmentClient interface {
	TestConnection(ctx context.Context) error
	Suggest(ctx context.Context, req openai.SuggestionRequest) (*openai.Suggestion, error)
}

// Engine drives synchronization runs. Service clients are built per
// invocation from the settings snapshot, because credentials live in the
// settings and may change between runs.
type Engine struct {
	products   ProductStore
	categories CategoryStore
	progress   ProgressReporter
	mapper     *mapper.Mapper
	locks      *lockTable

	newStorefront func(entities.SyncSettings) StorefrontClient
	newMedia      func(entities.SyncSettings) MediaClient
	newEnrichment func(entities.SyncSettings) EnrichmentClient
}

// NewEngine creates a sync engine. The progress reporter may be nil, in
// which case batch progress is not published anywhere.
func NewEngine(products ProductStore, categories CategoryStore, progress ProgressReporter) *Engine {
	return &Engine{
		products:   products,
		categories: categories,
		progress:   progress,
		mapper:     mapper.NewMapper(categories),
		locks:      newLockTable(),
		newStorefront: func(s entities.SyncSettings) StorefrontClient {
			return woocommerce.NewClient(s.WooBaseURL, s.WooConsumerKey, s.WooConsumerSecret)
		},
		newMedia: func(s entities.SyncSettings) MediaClient {
			return wordpress.NewClient(s.MediaSiteURL(), s.WPUsername, s.WPAppPassword)
		},
		newEnrichment: func(s entities.SyncSettings) EnrichmentClient {
			return openai.NewClient(s.OpenAIAPIKey)
		},
	}
}

// EnableSyncForProductsWithImages flips the sync-enabled flag on for every
// product with a primary image and returns how many products that covered.
// The mutation is atomic; a persistence failure enables nothing.
func (e *Engine) EnableSyncForProductsWithImages() (int64, error) {
	return e.products.EnableSyncForProductsWithImages()
}

// refreshCategories pulls the storefront's category list into the local
// cache. A failure is not fatal to the run: mapping falls back to whatever
// the cache already holds.
func (e *Engine) refreshCategories(ctx context.Context, storefront StorefrontClient) {
	remote, err := storefront.ListCategories(ctx)
	if err != nil {
		log.Printf("[sync] category refresh failed, using cached categories: %v", err)
		return
	}

	cached := make([]entities.WooCategory, 0, len(remote))
	for _, cat := range remote {
		cached = append(cached, entities.WooCategory{
			WooID:    cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			ParentID: cat.Parent,
		})
	}

	if err := e.categories.Replace(cached); err != nil {
		log.Printf("[sync] failed to store refreshed categories: %v", err)
	}
}
