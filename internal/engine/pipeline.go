package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/utils"
	"github.com/worldapptech/woosync/internal/woocommerce"
)

// syncOne pushes a single product through the pipeline: optional
// enrichment, field mapping, storefront upsert, optional image upload,
// variant upserts, state write. Failures are classified and recorded; they
// never propagate to the caller.
//
// The product is a working copy. Enrichment mutates it freely without
// touching the catalog.
func (e *Engine) syncOne(ctx context.Context, product entities.Product, settings entities.SyncSettings, storefront StorefrontClient, media MediaClient, enrichment EnrichmentClient) ProductResult {
	result := ProductResult{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
	}

	if !e.locks.acquire(product.ID) {
		// Another run owns this product's pipeline right now. Its state is
		// that run's to write; here it only counts as a failed outcome.
		result.Status = StatusFailed
		result.Error = "product is being synced by another run"
		return result
	}
	defer e.locks.release(product.ID)

	var enrichmentNote string
	if settings.EnrichmentEnabled {
		if err := e.enrichProduct(ctx, &product, settings, enrichment); err != nil {
			log.Printf("[sync] product %d: %v", product.ID, err)
			enrichmentNote = err.Error()
		}
	}

	payload, err := e.mapper.ProductPayload(&product, settings)
	if err != nil {
		return e.failProduct(product.ID, result, classify(err))
	}

	wooID, err := e.upsertProduct(ctx, &product, payload, storefront)
	if err != nil {
		return e.failProduct(product.ID, result, classify(err))
	}
	result.WooID = wooID

	// Bind the external ID now so a failure in a later stage still leaves
	// it in place and the next attempt updates instead of recreating.
	if product.WooID != wooID {
		if err := e.products.SetProductWooID(product.ID, wooID); err != nil {
			log.Printf("[sync] failed to persist external ID for product %d: %v", product.ID, err)
		}
		product.WooID = wooID
	}

	if settings.SyncImages && product.HasImage() {
		if err := e.uploadImage(ctx, &product, wooID, settings, storefront, media); err != nil {
			return e.failProduct(product.ID, result, classify(err))
		}
	}

	failedVariants := 0
	if len(product.Variants) > 1 {
		failedVariants = e.syncVariants(ctx, &product, wooID, settings, storefront)
	}

	// Parent and variant states are independent: the parent's push
	// succeeded, so its state records a success even when variants failed.
	if err := e.products.MarkProductSynced(product.ID, wooID, time.Now()); err != nil {
		log.Printf("[sync] failed to record success for product %d: %v", product.ID, err)
	}

	if failedVariants > 0 {
		result.Status = StatusFailed
		result.FailedVariants = failedVariants
		result.Error = fmt.Sprintf("%d of %d variants failed", failedVariants, len(product.Variants))
		return result
	}

	result.Status = StatusSuccess
	result.Error = enrichmentNote
	return result
}

func (e *Engine) failProduct(productID uint, result ProductResult, failure *SyncError) ProductResult {
	log.Printf("[sync] product %d failed: %v", productID, failure)
	if err := e.products.MarkProductFailed(productID, failure.Error()); err != nil {
		log.Printf("[sync] failed to record error for product %d: %v", productID, err)
	}
	result.Status = StatusFailed
	result.Error = failure.Error()
	return result
}

// upsertProduct creates or updates the storefront product and returns its
// external ID. A stored ID the storefront no longer knows is cleared and
// the product falls through to SKU adoption or creation within the same
// attempt. Adoption by SKU keeps the sync from duplicating products that
// already exist on the storefront under a different run's binding.
func (e *Engine) upsertProduct(ctx context.Context, product *entities.Product, payload *woocommerce.ProductPayload, storefront StorefrontClient) (string, error) {
	if product.WooID != "" {
		err := storefront.UpdateProduct(ctx, product.WooID, payload)
		if err == nil {
			return product.WooID, nil
		}
		if !errors.Is(err, woocommerce.ErrNotFound) {
			return "", err
		}

		log.Printf("[sync] product %d: stored storefront ID %s is stale, rebinding", product.ID, product.WooID)
		if clearErr := e.products.ClearProductWooID(product.ID); clearErr != nil {
			log.Printf("[sync] failed to clear stale ID for product %d: %v", product.ID, clearErr)
		}
		product.WooID = ""
	}

	existingID, err := storefront.FindProductBySKU(ctx, product.SKU)
	if err == nil {
		if err := storefront.UpdateProduct(ctx, existingID, payload); err != nil {
			return "", err
		}
		return existingID, nil
	}
	if !errors.Is(err, woocommerce.ErrNotFound) {
		return "", err
	}

	return storefront.CreateProduct(ctx, payload)
}

// uploadImage pushes the product's primary image to the media service and
// attaches the returned URL with a follow-up storefront update. Image sync
// being enabled without media credentials is a per-product configuration
// failure, not a silent skip.
func (e *Engine) uploadImage(ctx context.Context, product *entities.Product, wooID string, settings entities.SyncSettings, storefront StorefrontClient, media MediaClient) error {
	if !settings.MediaConfigured() {
		return newSyncError(FailureConfiguration, "image sync is enabled but media credentials are not configured")
	}

	data, err := os.ReadFile(product.ImagePath)
	if err != nil {
		return newSyncError(FailureValidation, "cannot read image %s: %v", product.ImagePath, err)
	}

	filename := utils.SanitizeFilename(filepath.Base(product.ImagePath))
	uploaded, err := media.UploadImage(ctx, data, filename)
	if err != nil {
		return fmt.Errorf("image upload failed: %w", err)
	}

	if err := storefront.UpdateProduct(ctx, wooID, e.mapper.ImagePayload(uploaded.SourceURL)); err != nil {
		return fmt.Errorf("failed to attach image to product: %w", err)
	}
	return nil
}

// syncVariants upserts every variant under the parent via the variations
// sub-resource and records each outcome in the variant's own sync state. A
// variant failure never fails the parent step; the returned count feeds the
// product's report entry.
func (e *Engine) syncVariants(ctx context.Context, product *entities.Product, parentID string, settings entities.SyncSettings, storefront StorefrontClient) int {
	failed := 0
	now := time.Now()

	for i := range product.Variants {
		variant := &product.Variants[i]

		payload, err := e.mapper.VariationPayload(variant, settings)
		if err != nil {
			failed++
			e.markVariantFailed(variant, classify(err))
			continue
		}

		wooID := variant.WooID
		if wooID != "" {
			err = storefront.UpdateVariation(ctx, parentID, wooID, payload)
			if errors.Is(err, woocommerce.ErrNotFound) {
				// stale variation binding, recreate it
				wooID = ""
				err = nil
			}
		}
		if err == nil && wooID == "" {
			wooID, err = storefront.CreateVariation(ctx, parentID, payload)
		}
		if err != nil {
			failed++
			e.markVariantFailed(variant, classify(err))
			continue
		}

		if err := e.products.MarkVariantSynced(variant.ID, wooID, now); err != nil {
			log.Printf("[sync] failed to record success for variant %d: %v", variant.ID, err)
		}
	}

	return failed
}

func (e *Engine) markVariantFailed(variant *entities.Variant, failure *SyncError) {
	log.Printf("[sync] variant %d (%s) failed: %v", variant.ID, variant.SKU, failure)
	if err := e.products.MarkVariantFailed(variant.ID, failure.Error()); err != nil {
		log.Printf("[sync] failed to record error for variant %d: %v", variant.ID, err)
	}
}
