package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/worldapptech/woosync/internal/database/runs"
	"github.com/worldapptech/woosync/internal/entities"
	"github.com/worldapptech/woosync/internal/settingsstore"
	"github.com/worldapptech/woosync/internal/tasks"
)

// runRetentionSchedule prunes old run records once a day, independent of
// whether periodic sync is enabled.
const runRetentionSchedule = "30 3 * * *"

// WooSyncScheduler submits catalog pushes on a cron schedule. A scheduled
// tick goes through the same run queue as API-submitted runs, so polling,
// progress and retention behave identically; the scheduler never talks to
// the storefront itself.
type WooSyncScheduler struct {
	settingsStore *settingsstore.SettingsStore
	runs          *runs.Repository
	tasks         *tasks.Client

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewWooSyncScheduler creates a new scheduler instance
func NewWooSyncScheduler(settingsStore *settingsstore.SettingsStore, runsRepo *runs.Repository, taskClient *tasks.Client) *WooSyncScheduler {
	return &WooSyncScheduler{
		settingsStore: settingsStore,
		runs:          runsRepo,
		tasks:         taskClient,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. The run retention job is always scheduled;
// the periodic sync job only when enabled in settings.
func (s *WooSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(runRetentionSchedule, func() {
		s.submitCleanup()
	}); err != nil {
		return fmt.Errorf("failed to schedule run retention job: %w", err)
	}

	if s.settingsStore.GetWooSyncScheduleEnabled() {
		schedule := s.settingsStore.GetWooSyncSchedule()

		// Validate schedule
		if err := settingsstore.ValidateCronSchedule(schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
		}

		entryID, err := s.cron.AddFunc(schedule, func() {
			s.submitRun()
		})
		if err != nil {
			return fmt.Errorf("failed to schedule sync job: %w", err)
		}
		s.entryID = entryID

		nextRun, _ := settingsstore.GetNextRunTime(schedule)
		log.Printf("WooCommerce sync scheduler: started with schedule '%s' (%s). Next run: %v",
			schedule,
			settingsstore.GetCronDescription(schedule),
			nextRun)
	} else {
		log.Printf("WooCommerce sync scheduler: periodic sync disabled")
	}

	// Create cancellable context
	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *WooSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("WooCommerce sync scheduler: stopped")
}

// Reschedule updates the schedule (call after settings change)
func (s *WooSyncScheduler) Reschedule() error {
	s.mu.Lock()
	wasRunning := s.isRunning
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}

	// A fresh cron instance drops the old entries
	s.mu.Lock()
	s.cron = cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
	s.entryID = 0
	s.mu.Unlock()

	return s.Start(context.Background())
}

// RunNow submits an immediate full sync outside the schedule
func (s *WooSyncScheduler) RunNow() error {
	go s.submitRun()
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *WooSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next scheduled sync will occur
func (s *WooSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || s.entryID == 0 {
		return nil
	}

	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// submitRun queues a full catalog push for all sync-enabled products.
func (s *WooSyncScheduler) submitRun() {
	if !s.settingsStore.GetWooSyncActive() {
		log.Printf("WooCommerce sync: skipped (sync is not active)")
		return
	}

	settings := s.settingsStore.ResolveSyncSettings()
	if !settings.StorefrontConfigured() {
		log.Printf("WooCommerce sync: skipped (storefront credentials not configured)")
		_ = s.settingsStore.SetWooSyncStatus("failed", "Storefront credentials are not configured")
		return
	}

	active, err := s.runs.IsRunActive()
	if err != nil {
		log.Printf("WooCommerce sync: failed to check for active runs: %v", err)
		return
	}
	if active {
		log.Printf("WooCommerce sync: skipped (a run is already in progress)")
		return
	}

	run, err := s.runs.CreateRun(entities.SyncTriggerScheduled)
	if err != nil {
		errMsg := fmt.Sprintf("Failed to create run record: %v", err)
		log.Printf("WooCommerce sync: %s", errMsg)
		_ = s.settingsStore.SetWooSyncStatus("failed", errMsg)
		return
	}

	if _, err := s.tasks.Add(tasks.SyncRunTask{RunID: run.ID, AllEnabled: true}).Save(); err != nil {
		errMsg := fmt.Sprintf("Failed to queue sync run: %v", err)
		log.Printf("WooCommerce sync: %s", errMsg)
		if failErr := s.runs.FailRun(run.ID, errMsg); failErr != nil {
			log.Printf("WooCommerce sync: failed to mark run %s failed: %v", run.ID, failErr)
		}
		_ = s.settingsStore.SetWooSyncStatus("failed", errMsg)
		return
	}

	_ = s.settingsStore.SetWooSyncStatus("submitted", fmt.Sprintf("Run %s submitted for all enabled products", run.ID))
	log.Printf("WooCommerce sync: run %s submitted for all enabled products", run.ID)
}

// submitCleanup queues run record pruning with the default retention.
func (s *WooSyncScheduler) submitCleanup() {
	if _, err := s.tasks.Add(tasks.CleanupRunsTask{}).Save(); err != nil {
		log.Printf("WooCommerce sync: failed to queue run cleanup: %v", err)
	}
}
