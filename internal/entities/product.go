package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SyncState tracks the outcome of the most recent storefront push for an
// entity. WooID is assigned only after a successful upsert and survives
// later failures so retries update the remote product instead of creating
// a duplicate.
type SyncState struct {
	WooID         string     `gorm:"size:64;index" json:"woo_id,omitempty"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
	LastSyncError string     `gorm:"type:text" json:"last_sync_error,omitempty"`
}

// Synced reports whether the entity has ever been pushed successfully.
func (s SyncState) Synced() bool {
	return s.WooID != ""
}

type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"index;size:512" json:"name"`
	SKU         string `gorm:"index;size:128" json:"sku,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Category    string `gorm:"size:256" json:"category,omitempty"`
	Brand       string `gorm:"size:256" json:"brand,omitempty"`
	ImagePath   string `gorm:"size:1024" json:"image_path,omitempty"` // Primary image on local disk; empty = none
	SyncEnabled bool   `gorm:"index;default:false" json:"sync_enabled"`

	SyncState `gorm:"embedded"`

	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// HasImage reports whether the product carries a primary image.
func (p *Product) HasImage() bool {
	return p.ImagePath != ""
}

type Variant struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ProductID     uint              `gorm:"index" json:"product_id"`
	SKU           string            `gorm:"index;size:128" json:"sku"`
	Price         decimal.Decimal   `gorm:"type:decimal(12,2)" json:"price"`
	StockQuantity int               `json:"stock_quantity"`
	Attributes    datatypes.JSONMap `json:"attributes,omitempty"` // Attribute name -> option, e.g. {"Size": "M"}

	SyncState `gorm:"embedded"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Variant) TableName() string {
	return "variants"
}
