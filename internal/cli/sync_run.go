package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/worldapptech/woosync/internal/database/categories"
	"github.com/worldapptech/woosync/internal/database/products"
	"github.com/worldapptech/woosync/internal/database/runs"
	"github.com/worldapptech/woosync/internal/database/settings"
	"github.com/worldapptech/woosync/internal/engine"
	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/settingsstore"
)

// SyncRunCommand pushes catalog products to the storefront in one blocking run
type SyncRunCommand struct {
	IDs          string
	All          bool
	WithImages   bool
	DatabasePath string
	Verbose      bool
}

// NewSyncRunCommand creates a new SyncRunCommand
func NewSyncRunCommand() *SyncRunCommand {
	return &SyncRunCommand{}
}

// ParseFlags parses command line flags
func (cmd *SyncRunCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync-run", flag.ExitOnError)

	fs.StringVar(&cmd.IDs, "ids", "", "Comma-separated product IDs to sync")
	fs.BoolVar(&cmd.All, "all", false, "Sync all sync-enabled products")
	fs.BoolVar(&cmd.WithImages, "with-images", false, "Restrict the selection to products that have images")
	fs.StringVar(&cmd.DatabasePath, "db", defaultDatabasePath(), "Path to the catalog database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every product outcome, not only failures")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync-run [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run one synchronization pass against the WooCommerce storefront.\n\n")
		fmt.Fprintf(os.Stderr, "The command blocks until every selected product is processed. The run\n")
		fmt.Fprintf(os.Stderr, "is recorded in the run history exactly like API-submitted runs; Ctrl-C\n")
		fmt.Fprintf(os.Stderr, "cancels between batches and records the run as cancelled.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s sync-run -all\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s sync-run -all -with-images\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s sync-run -ids 12,34,56 -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.IDs == "" && !cmd.All {
		fs.Usage()
		return fmt.Errorf("either -ids or -all is required")
	}

	return nil
}

// Run executes one blocking sync run
func (cmd *SyncRunCommand) Run() error {
	fmt.Println("🔄 WooCommerce Sync")
	fmt.Println("===================")

	ids, err := parseProductIDs(cmd.IDs)
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("📁 Database: %s\n", cmd.DatabasePath)

	store := settingsstore.New(settings.NewRepository(db.DB))
	syncSettings := store.ResolveSyncSettings()
	if !syncSettings.Active {
		return fmt.Errorf("sync is not active; set SYNC_ACTIVE=true or enable it via the settings API")
	}
	if !syncSettings.StorefrontConfigured() {
		return fmt.Errorf("storefront credentials are not configured")
	}

	runsRepo := runs.NewRepository(db.DB)
	eng := engine.NewEngine(products.NewRepository(db.DB), categories.NewRepository(db.DB), runsRepo)

	run, err := runsRepo.CreateRun(entities.SyncTriggerCLI)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	fmt.Printf("🆔 Run: %s\n", run.ID)
	fmt.Printf("🌐 Storefront: %s\n\n", syncSettings.WooBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := eng.Run(ctx, run.ID, engine.Request{
		ProductIDs:     ids,
		AllEnabled:     cmd.All,
		WithImagesOnly: cmd.WithImages,
	}, syncSettings)
	if err != nil {
		_ = runsRepo.FailRun(run.ID, err.Error())
		return fmt.Errorf("sync run failed: %w", err)
	}

	items, jsonErr := json.Marshal(report.Results)
	if jsonErr != nil {
		items = nil
	}
	status := entities.SyncRunStatusCompleted
	if report.Cancelled {
		status = entities.SyncRunStatusCancelled
	}
	if err := runsRepo.CompleteRun(run.ID, status, report.Succeeded, report.Failed, report.Skipped, "", items); err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}

	cmd.printReport(report)
	return nil
}

func (cmd *SyncRunCommand) printReport(report *engine.Report) {
	if report.Cancelled {
		fmt.Println("\n🛑 Run cancelled; unprocessed products were skipped")
	}

	for _, result := range report.Results {
		switch {
		case result.Status == engine.StatusFailed:
			fmt.Printf("  ❌ %s (#%d): %s\n", result.Name, result.ProductID, result.Error)
		case cmd.Verbose && result.Status == engine.StatusSuccess:
			line := fmt.Sprintf("  ✅ %s (#%d) → woo ID %s", result.Name, result.ProductID, result.WooID)
			if result.Error != "" {
				line += " (" + result.Error + ")"
			}
			fmt.Println(line)
		case cmd.Verbose && result.Status == engine.StatusSkipped:
			fmt.Printf("  ⏭️  %s (#%d) skipped\n", result.Name, result.ProductID)
		}
	}

	fmt.Printf("\n✅ Done: %d succeeded, %d failed, %d skipped (%d batches)\n",
		report.Succeeded, report.Failed, report.Skipped, report.Batches)
}
