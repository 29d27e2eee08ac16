package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/infrastructure/integrator/zoho"
	"github.com/indubai/portal-api/infrastructure/repository"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/internal/metrics"
	"github.com/indubai/portal-api/internal/usecases/summarizing"
	"github.com/indubai/portal-api/pkg/clock"
	"github.com/indubai/portal-api/pkg/utils"
)

// ErrSyncInProgress is returned when a sync pass is requested while another one runs.
var ErrSyncInProgress = errors.New("zoho snapshot sync already in progress")

type ZohoSnapshotSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// ZohoSnapshotSyncService refreshes the Zoho snapshot of every eligible client, on a cron
// schedule or on demand.
type ZohoSnapshotSyncService struct {
	scheduler    *gocron.Scheduler
	config       ZohoSnapshotSyncConfig
	clientRepo   repository.ClientRepository
	snapshotRepo repository.ZohoSnapshotRepository
	zohoService  zoho.ZohoIntegrator
	summarizer   summarizing.Summarizer
	clock        clock.Clock

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastResult          *domain.SyncResult
	lastError           string
}

func NewZohoSnapshotSyncService(
	clientRepo repository.ClientRepository,
	snapshotRepo repository.ZohoSnapshotRepository,
	zohoService zoho.ZohoIntegrator,
	summarizer summarizing.Summarizer,
	appConfig *config.Config,
	clk clock.Clock,
) *ZohoSnapshotSyncService {
	syncConfig := ZohoSnapshotSyncConfig{
		CronSchedule:      appConfig.ZohoSync.CronSchedule,
		MaxConcurrentJobs: appConfig.ZohoSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.ZohoSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Zoho snapshot sync configuration loaded")

	return &ZohoSnapshotSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		clientRepo:   clientRepo,
		snapshotRepo: snapshotRepo,
		zohoService:  zohoService,
		summarizer:   summarizer,
		clock:        clk,
	}
}

// Start schedules the sync pass. The scheduler stops when ctx is done.
func (s *ZohoSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Zoho snapshot sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting Zoho snapshot sync scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunSync(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
			logrus.WithError(err).Error("Scheduled Zoho snapshot sync failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling zoho snapshot sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping Zoho snapshot sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ZohoSnapshotSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.clock.Now()
	return true
}

func (s *ZohoSnapshotSyncService) release(runID string, result *domain.SyncResult, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = s.clock.Now()
	s.lastRunID = runID
	s.lastResult = result
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}

// RunSync computes and stores the snapshot of every eligible client. A failing client is
// counted in Errors and never stops the others. The pass itself fails only when the token
// or the client list cannot be obtained.
func (s *ZohoSnapshotSyncService) RunSync(ctx context.Context) (result *domain.SyncResult, err error) {
	if !s.acquire() {
		logrus.Info("Zoho snapshot sync already running, skipping")
		return nil, ErrSyncInProgress
	}

	runID, idErr := utils.GenerateRunID()
	if idErr != nil {
		runID = "unknown"
	}
	logger := logrus.WithField("run_id", runID)
	startTime := time.Now()

	defer func() {
		s.release(runID, result, err)
		metrics.SyncRuns.WithLabelValues(metrics.Result(err)).Inc()
		metrics.SyncDuration.Observe(time.Since(startTime).Seconds())
	}()

	logger.Info("Starting Zoho snapshot sync")

	token, err := s.zohoService.AccessToken(ctx)
	if err != nil {
		logger.WithError(err).Error("Could not obtain Zoho access token for the sync")
		return nil, err
	}

	links, err := s.clientRepo.ListSyncEligible(ctx)
	if err != nil {
		logger.WithError(err).Error("Could not list clients eligible for the sync")
		return nil, fmt.Errorf("listing eligible clients: %w", err)
	}

	if len(links) == 0 {
		logger.Info("No clients linked to a Zoho organization")
		return &domain.SyncResult{}, nil
	}

	var synced, failed int64
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, link := range links {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(link domain.ClientOrgLink) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if err := s.syncClient(ctx, token, link); err != nil {
				atomic.AddInt64(&failed, 1)
				metrics.SyncClients.WithLabelValues(metrics.ResultError).Inc()
				logger.WithFields(logrus.Fields{
					"client_id":   link.ClientID,
					"zoho_org_id": link.ZohoOrgID,
				}).WithError(err).Error("Zoho snapshot sync failed for client")
				return
			}

			atomic.AddInt64(&synced, 1)
			metrics.SyncClients.WithLabelValues(metrics.ResultSuccess).Inc()
		}(link)
	}

	wg.Wait()

	result = &domain.SyncResult{
		Synced: int(synced),
		Errors: int(failed),
	}

	logger.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"clients":  len(links),
		"synced":   result.Synced,
		"errors":   result.Errors,
	}).Info("Zoho snapshot sync finished")

	return result, nil
}

// syncClient turns a panic into an error so one client cannot bring the pass down.
func (s *ZohoSnapshotSyncService) syncClient(ctx context.Context, token string, link domain.ClientOrgLink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while syncing client %s: %v", link.ClientID, r)
		}
	}()

	summary, err := s.summarizer.CalcSummary(ctx, token, link.ZohoOrgID)
	if err != nil {
		return err
	}

	snapshot := domain.NewZohoSnapshot(link.ClientID, summary, s.clock.Now())
	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		var persistenceErr *repository.PersistenceError
		if !errors.As(err, &persistenceErr) {
			err = &repository.PersistenceError{ClientID: link.ClientID, Err: err}
		}
		return err
	}

	logrus.WithFields(logrus.Fields{
		"client_id":     link.ClientID,
		"rolling12_aed": snapshot.Rolling12AED,
		"vat_status":    snapshot.VatStatus,
	}).Debug("Zoho snapshot stored")

	return nil
}

// TriggerManualSync starts a sync pass in the background.
func (s *ZohoSnapshotSyncService) TriggerManualSync() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		return ErrSyncInProgress
	}

	logrus.Info("Starting manual Zoho snapshot sync")
	go func() {
		if _, err := s.RunSync(context.Background()); err != nil && !errors.Is(err, ErrSyncInProgress) {
			logrus.WithError(err).Error("Manual Zoho snapshot sync failed")
		}
	}()

	return nil
}

func (s *ZohoSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_result":            s.lastResult,
		"last_error":             s.lastError,
	}
}
