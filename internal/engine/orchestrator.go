package engine

import (
	"context"
	"log"

	"github.com/worldapptech/woosync/internal/config"
	"github.com/worldapptech/woosync/internal/entities"
)

// Run executes a full synchronization run and returns its report.
//
// The run refuses to start while sync is inactive or storefront credentials
// are missing; those are the only run-level errors, and both leave every
// product's state untouched. After that, products are processed in
// fixed-size batches, strictly in order, one at a time. A product's failure
// is recorded and the run moves on.
//
// Progress is published once per completed batch, never per product.
// Cancellation is honored between batches: products in batches the run
// never reached are reported as skipped, and everything already processed
// keeps its persisted state.
func (e *Engine) Run(ctx context.Context, runID string, req Request, settings entities.SyncSettings) (*Report, error) {
	if !settings.Active {
		return nil, ErrSyncInactive
	}
	if !settings.StorefrontConfigured() {
		return nil, ErrStorefrontNotConfigured
	}

	selected, err := e.resolve(req)
	if err != nil {
		return nil, err
	}

	batchSize := settings.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	totalBatches := (len(selected) + batchSize - 1) / batchSize

	report := &Report{
		RunID:   runID,
		Total:   len(selected),
		Batches: totalBatches,
		Results: make([]ProductResult, 0, len(selected)),
	}

	if e.progress != nil {
		if err := e.progress.StartRun(runID, len(selected), totalBatches); err != nil {
			log.Printf("[sync] failed to publish run start: %v", err)
		}
	}

	log.Printf("[sync] run %s: %d products in %d batches", runID, len(selected), totalBatches)

	storefront := e.newStorefront(settings)
	media := e.newMedia(settings)
	enrichment := e.newEnrichment(settings)

	e.refreshCategories(ctx, storefront)

	batchesCompleted := 0
	for start := 0; start < len(selected); start += batchSize {
		if ctx.Err() != nil {
			e.markRemainingSkipped(report, selected[start:])
			break
		}

		end := start + batchSize
		if end > len(selected) {
			end = len(selected)
		}

		for _, product := range selected[start:end] {
			result := e.syncOne(ctx, product, settings, storefront, media, enrichment)
			report.Results = append(report.Results, result)
			switch result.Status {
			case StatusSuccess:
				report.Succeeded++
			case StatusFailed:
				report.Failed++
			}
		}

		batchesCompleted++
		if e.progress != nil {
			err := e.progress.BatchCompleted(runID, len(report.Results), report.Succeeded, report.Failed, batchesCompleted)
			if err != nil {
				log.Printf("[sync] failed to publish batch progress: %v", err)
			}
		}
		log.Printf("[sync] run %s: %d/%d products processed", runID, len(report.Results), report.Total)
	}

	log.Printf("[sync] run %s finished: %d succeeded, %d failed, %d skipped",
		runID, report.Succeeded, report.Failed, report.Skipped)
	return report, nil
}

// markRemainingSkipped records every product a cancelled run never reached.
// Their sync states stay untouched; only the report mentions them.
func (e *Engine) markRemainingSkipped(report *Report, remaining []entities.Product) {
	report.Cancelled = true
	for _, product := range remaining {
		report.Results = append(report.Results, ProductResult{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Status:    StatusSkipped,
			Error:     "run cancelled before this product was reached",
		})
		report.Skipped++
	}
}
