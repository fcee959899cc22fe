package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/worldapptech/woosync/internal/database/products"
)

// EnableImagesCommand enables sync for every product that has an image
type EnableImagesCommand struct {
	DatabasePath string
}

// NewEnableImagesCommand creates a new EnableImagesCommand
func NewEnableImagesCommand() *EnableImagesCommand {
	return &EnableImagesCommand{}
}

// ParseFlags parses command line flags
func (cmd *EnableImagesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("enable-images", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", defaultDatabasePath(), "Path to the catalog database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s enable-images [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Turn sync on for every catalog product that carries a primary image.\n")
		fmt.Fprintf(os.Stderr, "Products without an image are left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the bulk enable
func (cmd *EnableImagesCommand) Run() error {
	fmt.Println("🖼  Enable Products With Images")
	fmt.Println("==============================")

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	productsRepo := products.NewRepository(db.DB)

	count, err := productsRepo.EnableSyncForProductsWithImages()
	if err != nil {
		return fmt.Errorf("failed to enable products: %w", err)
	}

	enabled, err := productsRepo.CountEnabled()
	if err != nil {
		return fmt.Errorf("failed to count enabled products: %w", err)
	}

	fmt.Printf("✅ Enabled %d products with images (%d enabled in total)\n", count, enabled)
	return nil
}
