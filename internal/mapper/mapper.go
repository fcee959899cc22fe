// Package mapper builds storefront API payloads from catalog products.
//
// Identity fields (name, SKU, product type, publish status) are always
// mapped. Every other field is gated by the sync toggles in effect for the
// run. Mapping is pure and runs before any network call, so products that
// cannot be represented on the storefront are rejected without touching it.
//
// # Interface Implementation
//
// The categories repository satisfies the resolver contract:
//
//	var _ mapper.CategoryResolver = (*categories.Repository)(nil)
package mapper

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/woocommerce"
)

// ValidationError reports a product that cannot be represented on the
// storefront. Raised during mapping, before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// CategoryResolver looks up the storefront category ID for a local
// category name.
type CategoryResolver interface {
	IDByName(name string) (int, bool)
}

// Mapper translates catalog entities into storefront payloads.
type Mapper struct {
	categories CategoryResolver
}

// NewMapper creates a mapper. The category resolver may be nil, in which
// case category assignment is skipped.
func NewMapper(categories CategoryResolver) *Mapper {
	return &Mapper{categories: categories}
}

// ProductPayload maps a product to its storefront representation. Products
// with more than one variant become variable products carrying the
// variation axes; single-variant products become simple products with the
// variant's price and stock hoisted onto them.
func (m *Mapper) ProductPayload(product *entities.Product, settings entities.SyncSettings) (*woocommerce.ProductPayload, error) {
	if product.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "product name is empty"}
	}
	if product.SKU == "" {
		return nil, &ValidationError{Field: "sku", Message: "product has no SKU"}
	}

	payload := &woocommerce.ProductPayload{
		Name:   product.Name,
		SKU:    product.SKU,
		Type:   woocommerce.ProductTypeSimple,
		Status: woocommerce.StatusPublish,
	}

	if len(product.Variants) > 1 {
		payload.Type = woocommerce.ProductTypeVariable
		payload.Attributes = variationAxes(product.Variants)
	} else if len(product.Variants) == 1 {
		variant := product.Variants[0]
		if settings.SyncPrice {
			payload.RegularPrice = variant.Price.String()
		}
		if settings.SyncStock {
			payload.ManageStock = boolPtr(true)
			payload.StockQuantity = intPtr(variant.StockQuantity)
			payload.StockStatus = stockStatus(variant.StockQuantity)
		}
	}

	if settings.SyncDescription && product.Description != "" {
		payload.Description = product.Description
	}

	if product.Category != "" && m.categories != nil {
		if id, ok := m.categories.IDByName(product.Category); ok {
			payload.Categories = []woocommerce.CategoryRef{{ID: id}}
		}
	}

	if product.Brand != "" {
		payload.Attributes = append(payload.Attributes, woocommerce.Attribute{
			Name:    "Brand",
			Visible: true,
			Options: []string{product.Brand},
		})
	}

	return payload, nil
}

// VariationPayload maps a variant to its storefront representation under a
// variable parent.
func (m *Mapper) VariationPayload(variant *entities.Variant, settings entities.SyncSettings) (*woocommerce.VariationPayload, error) {
	if variant.SKU == "" {
		return nil, &ValidationError{Field: "sku", Message: "variant has no SKU"}
	}

	payload := &woocommerce.VariationPayload{
		SKU:        variant.SKU,
		Attributes: variationSelection(variant),
	}

	if settings.SyncPrice {
		payload.RegularPrice = variant.Price.String()
	}
	if settings.SyncStock {
		payload.ManageStock = boolPtr(true)
		payload.StockQuantity = intPtr(variant.StockQuantity)
		payload.StockStatus = stockStatus(variant.StockQuantity)
	}

	return payload, nil
}

// ImagePayload builds the follow-up update that attaches an uploaded
// image to an existing storefront product by its public URL.
func (m *Mapper) ImagePayload(url string) *woocommerce.ProductPayload {
	return &woocommerce.ProductPayload{
		Images: []woocommerce.Image{{Src: url}},
	}
}

// variationAxes collects the attribute axes a variable product's variations
// select from. Axis names and options are sorted so repeated mappings of
// the same product produce identical payloads.
func variationAxes(variants []entities.Variant) []woocommerce.Attribute {
	options := make(map[string]map[string]struct{})
	for _, variant := range variants {
		for name, value := range variant.Attributes {
			if options[name] == nil {
				options[name] = make(map[string]struct{})
			}
			options[name][attributeOption(value)] = struct{}{}
		}
	}
	if len(options) == 0 {
		return nil
	}

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	axes := make([]woocommerce.Attribute, 0, len(names))
	for _, name := range names {
		values := make([]string, 0, len(options[name]))
		for value := range options[name] {
			values = append(values, value)
		}
		sort.Strings(values)
		axes = append(axes, woocommerce.Attribute{
			Name:      name,
			Visible:   true,
			Variation: true,
			Options:   values,
		})
	}
	return axes
}

func variationSelection(variant *entities.Variant) []woocommerce.VariationAttribute {
	if len(variant.Attributes) == 0 {
		return nil
	}

	names := make([]string, 0, len(variant.Attributes))
	for name := range variant.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	selection := make([]woocommerce.VariationAttribute, 0, len(names))
	for _, name := range names {
		selection = append(selection, woocommerce.VariationAttribute{
			Name:   name,
			Option: attributeOption(variant.Attributes[name]),
		})
	}
	return selection
}

// attributeOption renders a JSON attribute value as the option string the
// storefront expects. Numbers decoded from JSON arrive as float64.
func attributeOption(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stockStatus(quantity int) string {
	if quantity > 0 {
		return woocommerce.StockStatusInStock
	}
	return woocommerce.StockStatusOutOfStock
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }
