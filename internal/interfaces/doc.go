// Package interfaces centralizes the compile-time checks that pin every
// repository and service client to the interface its consumers declare.
//
// The abstractions themselves live next to their consumers:
//
//   - engine.ProductStore, engine.CategoryStore: catalog reads and sync
//     state writes (internal/engine/engine.go)
//   - engine.StorefrontClient: WooCommerce REST surface
//   - engine.MediaClient: WordPress media uploads
//   - engine.EnrichmentClient: description generation
//   - engine.ProgressReporter: batch-level run progress
//   - http.RunStore, http.ProductCounter: run lifecycle and catalog
//     counts for the API (internal/http)
//   - tasks.SettingsSource, tasks.RunRecorder, tasks.RunCleaner: task
//     queue plumbing (internal/tasks)
//
// Swapping a backend means implementing the matching interface in a new
// package and adding a check here. To push to a storefront other than
// WooCommerce, for example:
//
//	type ShopifyClient struct {
//		baseURL    string
//		token      string
//		httpClient *http.Client
//	}
//
//	func (c *ShopifyClient) TestConnection(ctx context.Context) error
//	func (c *ShopifyClient) CreateProduct(ctx context.Context, payload *woocommerce.ProductPayload) (string, error)
//	// ... remaining StorefrontClient methods
//
//	var _ engine.StorefrontClient = (*ShopifyClient)(nil)
//
// The same pattern covers a non-OpenAI enrichment provider
// (engine.EnrichmentClient) or a new database domain: a sub-package under
// internal/database with a Repository around *gorm.DB and a check against
// the store interface it serves.
//
// A missing method then fails the build instead of surfacing at runtime.
// checks.go lists every binding.
package interfaces
