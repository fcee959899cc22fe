package entities

import (
	"time"
)

// WooCategory is a locally cached storefront product category. The cache
// constrains enrichment suggestions to categories that actually exist on
// the storefront and lets the mapper translate a category name into the
// storefront's numeric ID.
type WooCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WooID     int       `gorm:"uniqueIndex" json:"woo_id"`
	Name      string    `gorm:"index;size:256" json:"name"`
	Slug      string    `gorm:"size:256" json:"slug,omitempty"`
	ParentID  int       `json:"parent_id,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (WooCategory) TableName() string {
	return "woo_categories"
}
