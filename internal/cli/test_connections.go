package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/worldapptech/woosync/internal/database/categories"
	"github.com/worldapptech/woosync/internal/database/products"
	"github.com/worldapptech/woosync/internal/database/settings"
	"github.com/worldapptech/woosync/internal/engine"
	"github.com/worldapptech/woosync/internal/settingsstore"
)

// TestConnectionsCommand verifies the configured service credentials
type TestConnectionsCommand struct {
	DatabasePath string
}

// NewTestConnectionsCommand creates a new TestConnectionsCommand
func NewTestConnectionsCommand() *TestConnectionsCommand {
	return &TestConnectionsCommand{}
}

// ParseFlags parses command line flags
func (cmd *TestConnectionsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("test-connections", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", defaultDatabasePath(), "Path to the catalog database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s test-connections [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Probe the WooCommerce, WordPress media and OpenAI credentials with\n")
		fmt.Fprintf(os.Stderr, "read-only calls. No sync state is touched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the connection tests
func (cmd *TestConnectionsCommand) Run() error {
	fmt.Println("🔌 Connection Test")
	fmt.Println("==================")

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := settingsstore.New(settings.NewRepository(db.DB))
	syncSettings := store.ResolveSyncSettings()

	eng := engine.NewEngine(products.NewRepository(db.DB), categories.NewRepository(db.DB), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report := eng.TestConnections(ctx, syncSettings)

	printServiceStatus("WooCommerce storefront", report.Storefront)
	printServiceStatus("WordPress media", report.Media)
	printServiceStatus("OpenAI enrichment", report.Enrichment)

	if report.Storefront.Status == engine.ServiceFailed ||
		report.Media.Status == engine.ServiceFailed ||
		report.Enrichment.Status == engine.ServiceFailed {
		return fmt.Errorf("one or more connection tests failed")
	}

	return nil
}

func printServiceStatus(label string, status engine.ConnectionStatus) {
	switch status.Status {
	case engine.ServiceOK:
		fmt.Printf("  ✅ %s: ok\n", label)
	case engine.ServiceNotConfigured:
		fmt.Printf("  ⚪ %s: not configured (%s)\n", label, status.Detail)
	default:
		fmt.Printf("  ❌ %s: %s\n", label, status.Detail)
	}
}
