// Package products provides database operations for the product catalog and
// its per-entity sync state.
//
// Sync state columns (woo_id, last_synced_at, last_sync_error) are embedded
// in both products and variants and are mutated exclusively through the
// Mark* methods here, so the engine's state writes stay in one place.
//
// # Interface Implementation
//
//	var _ engine.ProductStore = (*Repository)(nil)
//
// # Usage
//
//	repo := products.NewRepository(db)
//	list, err := repo.ListEnabled()
package products

import (
	"time"

	"gorm.io/gorm"

	"github.com/worldapptech/woosync/internal/entities"
)

// Repository handles all product and variant database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new products repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetProductByID retrieves a product with its variants.
func (r *Repository) GetProductByID(id uint) (*entities.Product, error) {
	var product entities.Product
	err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs retrieves the products for the given IDs, preserving the
// input order. Unknown IDs are dropped silently.
func (r *Repository) GetProductsByIDs(ids []uint) ([]entities.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []entities.Product
	err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]entities.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	ordered := make([]entities.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// ListEnabled returns all sync-enabled products in stable creation order.
func (r *Repository) ListEnabled() ([]entities.Product, error) {
	var list []entities.Product
	err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("sync_enabled = ?", true).Order("id ASC").Find(&list).Error
	return list, err
}

// EnableSyncForProductsWithImages flips the enabled flag on for every
// product that has a primary image, regardless of its current state, in a
// single transaction. Returns the number of products now enabled.
func (r *Repository) EnableSyncForProductsWithImages() (int64, error) {
	var count int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Product{}).
			Where("image_path <> ''").
			Update("sync_enabled", true)
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkProductSynced records a successful push: binds the external ID,
// refreshes the timestamp and clears any previous error.
func (r *Repository) MarkProductSynced(id uint, wooID string, at time.Time) error {
	return r.db.Model(&entities.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"woo_id":          wooID,
			"last_synced_at":  at,
			"last_sync_error": "",
		}).Error
}

// MarkProductFailed records a failed attempt. A previously bound external
// ID and the last successful timestamp are left untouched so the next
// attempt updates instead of recreating.
func (r *Repository) MarkProductFailed(id uint, message string) error {
	return r.db.Model(&entities.Product{}).
		Where("id = ?", id).
		Update("last_sync_error", message).Error
}

// SetProductWooID binds the external ID the moment an upsert succeeds,
// before the rest of the pipeline runs. A failure in a later stage then
// leaves the binding in place so the next attempt updates instead of
// recreating.
func (r *Repository) SetProductWooID(id uint, wooID string) error {
	return r.db.Model(&entities.Product{}).
		Where("id = ?", id).
		Update("woo_id", wooID).Error
}

// ClearProductWooID drops a stale external binding (the storefront no
// longer knows the ID, e.g. the product was deleted remotely).
func (r *Repository) ClearProductWooID(id uint) error {
	return r.db.Model(&entities.Product{}).
		Where("id = ?", id).
		Update("woo_id", "").Error
}

// MarkVariantSynced records a successful variant push.
func (r *Repository) MarkVariantSynced(id uint, wooID string, at time.Time) error {
	return r.db.Model(&entities.Variant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"woo_id":          wooID,
			"last_synced_at":  at,
			"last_sync_error": "",
		}).Error
}

// MarkVariantFailed records a failed variant attempt without touching its
// external binding.
func (r *Repository) MarkVariantFailed(id uint, message string) error {
	return r.db.Model(&entities.Variant{}).
		Where("id = ?", id).
		Update("last_sync_error", message).Error
}

// CountEnabled returns the number of sync-enabled products.
func (r *Repository) CountEnabled() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Product{}).Where("sync_enabled = ?", true).Count(&count).Error
	return count, err
}

// CountWithImages returns the number of products carrying a primary image.
func (r *Repository) CountWithImages() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Product{}).Where("image_path <> ''").Count(&count).Error
	return count, err
}
