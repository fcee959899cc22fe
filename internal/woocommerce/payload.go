package woocommerce

// ProductPayload is the request body for product create/update calls.
// Optional fields are omitted when empty so partial updates only touch the
// fields the sync toggles selected.
type ProductPayload struct {
	Name          string        `json:"name,omitempty"`
	SKU           string        `json:"sku,omitempty"`
	Type          string        `json:"type,omitempty"`   // "simple" or "variable"
	Status        string        `json:"status,omitempty"` // "publish"
	Description   string        `json:"description,omitempty"`
	RegularPrice  string        `json:"regular_price,omitempty"` // Woo expects prices as strings
	ManageStock   *bool         `json:"manage_stock,omitempty"`
	StockQuantity *int          `json:"stock_quantity,omitempty"`
	StockStatus   string        `json:"stock_status,omitempty"` // "instock" or "outofstock"
	Categories    []CategoryRef `json:"categories,omitempty"`
	Attributes    []Attribute   `json:"attributes,omitempty"`
	Images        []Image       `json:"images,omitempty"`
}

// VariationPayload is the request body for variation create/update calls on
// a parent product's variations sub-resource.
type VariationPayload struct {
	SKU           string               `json:"sku,omitempty"`
	RegularPrice  string               `json:"regular_price,omitempty"`
	ManageStock   *bool                `json:"manage_stock,omitempty"`
	StockQuantity *int                 `json:"stock_quantity,omitempty"`
	StockStatus   string               `json:"stock_status,omitempty"`
	Attributes    []VariationAttribute `json:"attributes,omitempty"`
}

type CategoryRef struct {
	ID int `json:"id"`
}

type Image struct {
	ID  int    `json:"id,omitempty"`
	Src string `json:"src,omitempty"`
}

// Attribute is a product-level attribute definition. Attributes marked
// Variation are the axes variations select options from.
type Attribute struct {
	Name      string   `json:"name"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// VariationAttribute picks one option of a parent attribute.
type VariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// Category is a storefront product category as returned by the categories
// endpoint.
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int    `json:"parent"`
}

// ProductTypeSimple and ProductTypeVariable are the storefront's product
// type identifiers. Products with more than one variant are pushed as
// variable products.
const (
	ProductTypeSimple   = "simple"
	ProductTypeVariable = "variable"

	StatusPublish = "publish"

	StockStatusInStock    = "instock"
	StockStatusOutOfStock = "outofstock"
)
