// Package categories provides database operations for the local cache of
// storefront product categories.
//
// The cache is refreshed from the storefront before enrichment runs so that
// suggested categories are constrained to ones that actually exist, and so
// the mapper can translate a category name into the storefront's numeric ID
// without a network call per product.
package categories

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/worldapptech/woosync/internal/entities"
)

// Repository handles all category cache database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Replace swaps the cached category set atomically.
func (r *Repository) Replace(list []entities.WooCategory) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.WooCategory{}).Error; err != nil {
			return err
		}
		for i := range list {
			list[i].ID = 0
			list[i].FetchedAt = now
			if err := tx.Create(&list[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListNames returns all cached category names in alphabetical order.
func (r *Repository) ListNames() ([]string, error) {
	var names []string
	err := r.db.Model(&entities.WooCategory{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// IDByName looks up the storefront ID for a category name,
// case-insensitively. The second return is false when the name is not
// cached.
func (r *Repository) IDByName(name string) (int, bool) {
	var cat entities.WooCategory
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&cat).Error
	if err != nil {
		return 0, false
	}
	return cat.WooID, true
}

// Count returns the number of cached categories.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.WooCategory{}).Count(&count).Error
	return count, err
}
