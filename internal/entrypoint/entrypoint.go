package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/worldapptech/woosync/internal/config"
	"github.com/worldapptech/woosync/internal/database"
	"github.com/worldapptech/woosync/internal/database/categories"
	"github.com/worldapptech/woosync/internal/database/products"
	"github.com/worldapptech/woosync/internal/database/runs"
	"github.com/worldapptech/woosync/internal/database/settings"
	"github.com/worldapptech/woosync/internal/engine"
	http_controllers "github.com/worldapptech/woosync/internal/http"
	"github.com/worldapptech/woosync/internal/scheduler"
	"github.com/worldapptech/woosync/internal/settingsstore"
	"github.com/worldapptech/woosync/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (stops the scheduler and task workers)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting woosync v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	productsRepo := products.NewRepository(db.DB)
	runsRepo := runs.NewRepository(db.DB)
	categoriesRepo := categories.NewRepository(db.DB)
	settingsStore := settingsstore.New(settings.NewRepository(db.DB))

	if !settingsStore.ResolveSyncSettings().StorefrontConfigured() {
		log.Printf("WARNING: WooCommerce credentials are not set. Sync runs will be rejected until WOO_BASE_URL, WOO_CONSUMER_KEY and WOO_CONSUMER_SECRET are provided or saved via the settings API.")
	}

	// The runs repository doubles as the engine's per-product progress sink.
	eng := engine.NewEngine(productsRepo, categoriesRepo, runsRepo)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		// ReleaseAfter must exceed the longest queue timeout or an
		// in-flight run would be handed to a second worker.
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewSyncRunQueue(eng, settingsStore, runsRepo),
			tasks.NewCleanupRunsQueue(runsRepo),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	} else {
		log.Printf("Task queue disabled. API-submitted sync runs will be rejected; use the sync-run command instead.")
	}

	// The scheduler submits runs through the same queue the API uses, so
	// it only exists when the task queue does.
	var sched *scheduler.WooSyncScheduler
	if taskClient != nil {
		sched = scheduler.NewWooSyncScheduler(settingsStore, runsRepo, taskClient)
		if err := sched.Start(context.Background()); err != nil {
			log.Printf("WARNING: Failed to start sync scheduler: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:      db,
		SettingsStore: settingsStore,
		Engine:        eng,
		Runs:          runsRepo,
		Products:      productsRepo,
		Scheduler:     sched,
		TaskClient:    taskClient,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
