package mapper

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/woocommerce"
)

type stubCategoryResolver struct {
	ids map[string]int
}

func (s *stubCategoryResolver) IDByName(name string) (int, bool) {
	id, ok := s.ids[name]
	return id, ok
}

func allToggles() entities.SyncSettings {
	return entities.SyncSettings{
		SyncStock:       true,
		SyncPrice:       true,
		SyncDescription: true,
		SyncImages:      true,
	}
}

func TestProductPayload_SimpleProduct(t *testing.T) {
	product := &entities.Product{
		ID:          1,
		Name:        "Steel Water Bottle",
		SKU:         "BOTTLE-01",
		Description: "Keeps drinks cold.",
		Category:    "Drinkware",
		Brand:       "Aqua",
		Variants: []entities.Variant{
			{SKU: "BOTTLE-01", Price: decimal.NewFromFloat(19.99), StockQuantity: 12},
		},
	}

	m := NewMapper(&stubCategoryResolver{ids: map[string]int{"Drinkware": 7}})

	payload, err := m.ProductPayload(product, allToggles())
	if err != nil {
		t.Fatalf("ProductPayload failed: %v", err)
	}

	if payload.Name != "Steel Water Bottle" {
		t.Errorf("expected name to be mapped, got %q", payload.Name)
	}
	if payload.SKU != "BOTTLE-01" {
		t.Errorf("expected SKU to be mapped, got %q", payload.SKU)
	}
	if payload.Type != woocommerce.ProductTypeSimple {
		t.Errorf("expected simple product, got %q", payload.Type)
	}
	if payload.Status != woocommerce.StatusPublish {
		t.Errorf("expected publish status, got %q", payload.Status)
	}
	if payload.RegularPrice != "19.99" {
		t.Errorf("expected price hoisted from single variant, got %q", payload.RegularPrice)
	}
	if payload.ManageStock == nil || !*payload.ManageStock {
		t.Error("expected manage_stock to be enabled")
	}
	if payload.StockQuantity == nil || *payload.StockQuantity != 12 {
		t.Errorf("expected stock quantity 12, got %v", payload.StockQuantity)
	}
	if payload.StockStatus != woocommerce.StockStatusInStock {
		t.Errorf("expected instock, got %q", payload.StockStatus)
	}
	if payload.Description != "Keeps drinks cold." {
		t.Errorf("expected description to be mapped, got %q", payload.Description)
	}
	if len(payload.Categories) != 1 || payload.Categories[0].ID != 7 {
		t.Errorf("expected category ID 7, got %+v", payload.Categories)
	}
	if len(payload.Attributes) != 1 || payload.Attributes[0].Name != "Brand" {
		t.Fatalf("expected brand attribute, got %+v", payload.Attributes)
	}
	if payload.Attributes[0].Variation {
		t.Error("brand attribute must not be a variation axis")
	}
	if len(payload.Attributes[0].Options) != 1 || payload.Attributes[0].Options[0] != "Aqua" {
		t.Errorf("expected brand option Aqua, got %+v", payload.Attributes[0].Options)
	}
}

func TestProductPayload_VariableProduct(t *testing.T) {
	product := &entities.Product{
		ID:   2,
		Name: "Cotton Shirt",
		SKU:  "SHIRT",
		Variants: []entities.Variant{
			{SKU: "SHIRT-S-RED", Price: decimal.NewFromInt(25), StockQuantity: 3,
				Attributes: datatypes.JSONMap{"Size": "S", "Color": "Red"}},
			{SKU: "SHIRT-M-RED", Price: decimal.NewFromInt(25), StockQuantity: 0,
				Attributes: datatypes.JSONMap{"Size": "M", "Color": "Red"}},
			{SKU: "SHIRT-M-BLUE", Price: decimal.NewFromInt(27), StockQuantity: 5,
				Attributes: datatypes.JSONMap{"Size": "M", "Color": "Blue"}},
		},
	}

	m := NewMapper(nil)

	payload, err := m.ProductPayload(product, allToggles())
	if err != nil {
		t.Fatalf("ProductPayload failed: %v", err)
	}

	if payload.Type != woocommerce.ProductTypeVariable {
		t.Errorf("expected variable product, got %q", payload.Type)
	}
	// Price and stock live on the variations, never on a variable parent.
	if payload.RegularPrice != "" {
		t.Errorf("variable parent must not carry a price, got %q", payload.RegularPrice)
	}
	if payload.ManageStock != nil {
		t.Error("variable parent must not manage stock")
	}

	if len(payload.Attributes) != 2 {
		t.Fatalf("expected 2 variation axes, got %+v", payload.Attributes)
	}
	color := payload.Attributes[0]
	if color.Name != "Color" || !color.Variation {
		t.Errorf("expected Color axis first, got %+v", color)
	}
	if len(color.Options) != 2 || color.Options[0] != "Blue" || color.Options[1] != "Red" {
		t.Errorf("expected sorted distinct color options, got %+v", color.Options)
	}
	size := payload.Attributes[1]
	if size.Name != "Size" || len(size.Options) != 2 {
		t.Errorf("expected Size axis with 2 options, got %+v", size)
	}
}

func TestProductPayload_TogglesOff(t *testing.T) {
	product := &entities.Product{
		ID:          3,
		Name:        "Lamp",
		SKU:         "LAMP-01",
		Description: "A lamp.",
		Variants: []entities.Variant{
			{SKU: "LAMP-01", Price: decimal.NewFromInt(40), StockQuantity: 2},
		},
	}

	m := NewMapper(nil)

	payload, err := m.ProductPayload(product, entities.SyncSettings{})
	if err != nil {
		t.Fatalf("ProductPayload failed: %v", err)
	}

	// Identity fields are always mapped regardless of toggles.
	if payload.Name != "Lamp" || payload.SKU != "LAMP-01" {
		t.Errorf("identity fields must always be mapped, got %+v", payload)
	}
	if payload.RegularPrice != "" {
		t.Errorf("price must not be mapped with toggle off, got %q", payload.RegularPrice)
	}
	if payload.ManageStock != nil || payload.StockQuantity != nil {
		t.Error("stock must not be mapped with toggle off")
	}
	if payload.Description != "" {
		t.Errorf("description must not be mapped with toggle off, got %q", payload.Description)
	}
}

func TestProductPayload_MissingSKU(t *testing.T) {
	m := NewMapper(nil)

	_, err := m.ProductPayload(&entities.Product{Name: "No SKU"}, allToggles())

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "sku" {
		t.Errorf("expected sku field, got %q", validationErr.Field)
	}
}

func TestProductPayload_MissingName(t *testing.T) {
	m := NewMapper(nil)

	_, err := m.ProductPayload(&entities.Product{SKU: "X-1"}, allToggles())

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "name" {
		t.Errorf("expected name field, got %q", validationErr.Field)
	}
}

func TestProductPayload_UnknownCategorySkipped(t *testing.T) {
	product := &entities.Product{
		Name:     "Lamp",
		SKU:      "LAMP-01",
		Category: "Does Not Exist",
	}

	m := NewMapper(&stubCategoryResolver{ids: map[string]int{"Drinkware": 7}})

	payload, err := m.ProductPayload(product, allToggles())
	if err != nil {
		t.Fatalf("ProductPayload failed: %v", err)
	}
	if len(payload.Categories) != 0 {
		t.Errorf("unknown category must be skipped, got %+v", payload.Categories)
	}
}

func TestVariationPayload(t *testing.T) {
	variant := &entities.Variant{
		SKU:           "SHIRT-M-RED",
		Price:         decimal.NewFromFloat(25.5),
		StockQuantity: 0,
		Attributes:    datatypes.JSONMap{"Size": "M", "Color": "Red"},
	}

	m := NewMapper(nil)

	payload, err := m.VariationPayload(variant, allToggles())
	if err != nil {
		t.Fatalf("VariationPayload failed: %v", err)
	}

	if payload.SKU != "SHIRT-M-RED" {
		t.Errorf("expected SKU to be mapped, got %q", payload.SKU)
	}
	if payload.RegularPrice != "25.5" {
		t.Errorf("expected price 25.5, got %q", payload.RegularPrice)
	}
	if payload.StockStatus != woocommerce.StockStatusOutOfStock {
		t.Errorf("expected outofstock for zero quantity, got %q", payload.StockStatus)
	}
	if len(payload.Attributes) != 2 {
		t.Fatalf("expected 2 attribute selections, got %+v", payload.Attributes)
	}
	if payload.Attributes[0].Name != "Color" || payload.Attributes[0].Option != "Red" {
		t.Errorf("expected Color=Red first, got %+v", payload.Attributes[0])
	}
	if payload.Attributes[1].Name != "Size" || payload.Attributes[1].Option != "M" {
		t.Errorf("expected Size=M second, got %+v", payload.Attributes[1])
	}
}

func TestVariationPayload_MissingSKU(t *testing.T) {
	m := NewMapper(nil)

	_, err := m.VariationPayload(&entities.Variant{}, allToggles())

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestImagePayload(t *testing.T) {
	m := NewMapper(nil)

	payload := m.ImagePayload("https://shop.example.com/wp-content/uploads/bottle.jpg")

	if len(payload.Images) != 1 || payload.Images[0].Src != "https://shop.example.com/wp-content/uploads/bottle.jpg" {
		t.Errorf("expected single image with source URL, got %+v", payload.Images)
	}
	// Everything else stays empty so the follow-up update only touches images.
	if payload.Name != "" || payload.SKU != "" || payload.Status != "" {
		t.Errorf("image payload must not carry identity fields, got %+v", payload)
	}
}

func TestAttributeOption(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "Red", want: "Red"},
		{name: "whole number", value: float64(42), want: "42"},
		{name: "fractional number", value: 1.5, want: "1.5"},
		{name: "bool", value: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attributeOption(tt.value); got != tt.want {
				t.Errorf("attributeOption(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
