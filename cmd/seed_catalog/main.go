// Command seed_catalog fills a catalog database with sample products for
// trying the sync engine against a staging storefront.
// Usage: go run cmd/seed_catalog/main.go [-db path/to/catalog.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/worldapptech/woosync/internal/database"
	"github.com/worldapptech/woosync/internal/entities"
)

const defaultSeedDatabasePath = "./demo/catalog.db"

func main() {
	dbPath := flag.String("db", defaultSeedDatabasePath, "path to the catalog database file")
	flag.Parse()

	log.Printf("Seeding sample catalog at %s...", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	for _, product := range sampleCatalog() {
		if err := db.DB.Create(&product).Error; err != nil {
			log.Printf("Failed to save product %s: %v", product.Name, err)
			continue
		}
		log.Printf("Saved: %s [%s] (%d variants)", product.Name, product.SKU, len(product.Variants))
	}

	log.Println("Sample catalog seeded successfully!")
}

// sampleCatalog returns a small but varied catalog: simple and variable
// products, with and without images, a couple left disabled and a couple
// without descriptions so enrichment has something to do. Image paths
// point into ./demo/images; drop files there to exercise media upload.
func sampleCatalog() []entities.Product {
	return []entities.Product{
		{
			Name:        "Classic Crewneck Tee",
			SKU:         "TEE-CLASSIC",
			Category:    "Shirts",
			Brand:       "Field & Form",
			Description: "A midweight organic cotton tee with a ribbed collar that keeps its shape.",
			ImagePath:   "./demo/images/tee-classic.jpg",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "TEE-CLASSIC-S", Price: decimal.RequireFromString("24.00"), StockQuantity: 40, Attributes: datatypes.JSONMap{"Size": "S"}},
				{SKU: "TEE-CLASSIC-M", Price: decimal.RequireFromString("24.00"), StockQuantity: 35, Attributes: datatypes.JSONMap{"Size": "M"}},
				{SKU: "TEE-CLASSIC-L", Price: decimal.RequireFromString("24.00"), StockQuantity: 18, Attributes: datatypes.JSONMap{"Size": "L"}},
			},
		},
		{
			Name:        "Heavyweight Zip Hoodie",
			SKU:         "HOOD-HVY",
			Category:    "Outerwear",
			Brand:       "Field & Form",
			ImagePath:   "./demo/images/hoodie-heavyweight.jpg",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "HOOD-HVY-M-CHAR", Price: decimal.RequireFromString("72.00"), StockQuantity: 12, Attributes: datatypes.JSONMap{"Size": "M", "Color": "Charcoal"}},
				{SKU: "HOOD-HVY-L-CHAR", Price: decimal.RequireFromString("72.00"), StockQuantity: 9, Attributes: datatypes.JSONMap{"Size": "L", "Color": "Charcoal"}},
				{SKU: "HOOD-HVY-M-MOSS", Price: decimal.RequireFromString("72.00"), StockQuantity: 7, Attributes: datatypes.JSONMap{"Size": "M", "Color": "Moss"}},
				{SKU: "HOOD-HVY-L-MOSS", Price: decimal.RequireFromString("72.00"), StockQuantity: 0, Attributes: datatypes.JSONMap{"Size": "L", "Color": "Moss"}},
			},
		},
		{
			Name:        "Canvas Weekend Tote",
			SKU:         "TOTE-CANVAS",
			Category:    "Accessories",
			Brand:       "Field & Form",
			Description: "Waxed canvas tote with a zip pocket and leather handles.",
			ImagePath:   "./demo/images/tote-canvas.jpg",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "TOTE-CANVAS-1", Price: decimal.RequireFromString("38.00"), StockQuantity: 25},
			},
		},
		{
			Name:        "Enamel Camp Mug",
			SKU:         "MUG-CAMP",
			Category:    "Home",
			Brand:       "Hearthware",
			ImagePath:   "./demo/images/mug-camp.jpg",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "MUG-CAMP-1", Price: decimal.RequireFromString("16.50"), StockQuantity: 60},
			},
		},
		{
			Name:        "Wool Rib Beanie",
			SKU:         "BEANIE-WOOL",
			Category:    "Accessories",
			Brand:       "Field & Form",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "BEANIE-WOOL-NAVY", Price: decimal.RequireFromString("28.00"), StockQuantity: 14, Attributes: datatypes.JSONMap{"Color": "Navy"}},
				{SKU: "BEANIE-WOOL-OAT", Price: decimal.RequireFromString("28.00"), StockQuantity: 11, Attributes: datatypes.JSONMap{"Color": "Oatmeal"}},
			},
		},
		{
			Name:        "Washed Linen Tablecloth",
			SKU:         "LINEN-TBL",
			Category:    "Home",
			Brand:       "Hearthware",
			Description: "Stonewashed linen in a generous 160x260cm cut.",
			ImagePath:   "./demo/images/linen-tablecloth.jpg",
			SyncEnabled: false,
			Variants: []entities.Variant{
				{SKU: "LINEN-TBL-1", Price: decimal.RequireFromString("89.00"), StockQuantity: 8},
			},
		},
		{
			Name:        "Trail Socks 3-Pack",
			SKU:         "SOCK-TRAIL3",
			Category:    "Accessories",
			Brand:       "Field & Form",
			SyncEnabled: false,
			Variants: []entities.Variant{
				{SKU: "SOCK-TRAIL3-ML", Price: decimal.RequireFromString("21.00"), StockQuantity: 30, Attributes: datatypes.JSONMap{"Size": "M/L"}},
				{SKU: "SOCK-TRAIL3-SM", Price: decimal.RequireFromString("21.00"), StockQuantity: 22, Attributes: datatypes.JSONMap{"Size": "S/M"}},
			},
		},
		{
			Name:        "Stoneware Pour-Over Set",
			SKU:         "POUR-STONE",
			Category:    "Home",
			Brand:       "Hearthware",
			Description: "Dripper and carafe in matte stoneware, fired in small batches.",
			ImagePath:   "./demo/images/pour-over-set.jpg",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "POUR-STONE-1", Price: decimal.RequireFromString("64.00"), StockQuantity: 10},
			},
		},
		{
			Name:        "Recycled Down Vest",
			SKU:         "VEST-RDWN",
			Category:    "Outerwear",
			Brand:       "Field & Form",
			ImagePath:   "./demo/images/vest-down.jpg",
			SyncEnabled: true,
			Variants: []entities.Variant{
				{SKU: "VEST-RDWN-S", Price: decimal.RequireFromString("98.00"), StockQuantity: 6, Attributes: datatypes.JSONMap{"Size": "S"}},
				{SKU: "VEST-RDWN-M", Price: decimal.RequireFromString("98.00"), StockQuantity: 13, Attributes: datatypes.JSONMap{"Size": "M"}},
				{SKU: "VEST-RDWN-L", Price: decimal.RequireFromString("98.00"), StockQuantity: 4, Attributes: datatypes.JSONMap{"Size": "L"}},
			},
		},
		{
			// No variants: published with no price or stock until the
			// catalog feed fills them in
			Name:        "Walnut Desk Organizer",
			SKU:         "DESK-WALNUT",
			Category:    "Home",
			Brand:       "Hearthware",
			Description: "Five-slot organizer milled from a single walnut block.",
			SyncEnabled: true,
		},
	}
}
