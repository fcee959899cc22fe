package engine

// Request selects the products a sync run covers. ProductIDs takes
// precedence over AllEnabled; the image filter applies after either
// selection.
type Request struct {
	ProductIDs     []uint `json:"product_ids,omitempty"`
	AllEnabled     bool   `json:"all_enabled,omitempty"`
	WithImagesOnly bool   `json:"with_images_only,omitempty"`
}

// ResultStatus is the outcome of one product's pipeline.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFailed  ResultStatus = "failed"
	// StatusSkipped marks products a cancelled run never reached.
	StatusSkipped ResultStatus = "skipped"
)

// ProductResult is one product's outcome within a run, in selection order.
// Error may be set on a successful product when a non-fatal stage such as
// enrichment failed along the way.
type ProductResult struct {
	ProductID      uint         `json:"product_id"`
	Name           string       `json:"name"`
	SKU            string       `json:"sku,omitempty"`
	Status         ResultStatus `json:"status"`
	WooID          string       `json:"woo_id,omitempty"`
	Error          string       `json:"error,omitempty"`
	FailedVariants int          `json:"failed_variants,omitempty"`
}

// Report aggregates a run's outcomes. Returned to the caller and not
// persisted by the engine itself.
type Report struct {
	RunID     string          `json:"run_id"`
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Skipped   int             `json:"skipped"`
	Batches   int             `json:"batches"`
	Cancelled bool            `json:"cancelled"`
	Results   []ProductResult `json:"results"`
}
