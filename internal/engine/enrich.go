package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/openai"
)

// enrichProduct asks the enrichment service for suggested content and
// merges it into the working copy. Returns a non-nil error when enrichment
// could not run or could not be applied; callers treat that as a note, not
// a pipeline failure, and continue with the un-enriched snapshot.
func (e *Engine) enrichProduct(ctx context.Context, product *entities.Product, settings entities.SyncSettings, enrichment EnrichmentClient) error {
	if !settings.EnrichmentConfigured() {
		return fmt.Errorf("enrichment is enabled but no API key is configured")
	}

	names, err := e.categories.ListNames()
	if err != nil {
		log.Printf("[sync] failed to load category names for enrichment: %v", err)
		names = nil
	}

	suggestion, err := enrichment.Suggest(ctx, openai.SuggestionRequest{
		ProductName:         product.Name,
		ExistingDescription: product.Description,
		CategoryNames:       names,
		Model:               settings.EnrichmentModel,
	})
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	e.applySuggestion(product, suggestion, settings.OverrideExisting)
	return nil
}

// applySuggestion merges suggested fields into the product snapshot. With
// override off, only empty fields are filled; with override on, suggestions
// replace existing values. A suggested category is only applied when the
// cache can resolve it to a storefront category, so enrichment never points
// a product at a category that does not exist.
func (e *Engine) applySuggestion(product *entities.Product, suggestion *openai.Suggestion, override bool) {
	if suggestion == nil {
		return
	}

	if suggestion.Description != "" && (override || product.Description == "") {
		product.Description = suggestion.Description
	}
	if suggestion.Brand != "" && (override || product.Brand == "") {
		product.Brand = suggestion.Brand
	}
	if suggestion.Category != "" && (override || product.Category == "") {
		if _, ok := e.categories.IDByName(suggestion.Category); ok {
			product.Category = suggestion.Category
		}
	}
}
