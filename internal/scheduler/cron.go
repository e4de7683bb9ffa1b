package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/config"
)

// refreshTimeout bounds a single catalog refresh
const refreshTimeout = 2 * time.Minute

// CatalogRefresher reloads the region catalog
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron        *cron.Cron
	refreshSpec string
	catalog     CatalogRefresher
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.Config, catalog CatalogRefresher, logger *logrus.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:        cron.New(),
		refreshSpec: cfg.CatalogRefreshCron,
		catalog:     catalog,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start registers the jobs, starts the scheduler and runs an initial
// catalog refresh in the background
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.refreshSpec, func() {
		s.runCatalogRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add catalog refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("catalog_refresh", s.refreshSpec).Info("Scheduler started")

	go s.runCatalogRefresh()

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
}

// runCatalogRefresh executes the catalog refresh job. The compiled-in
// region lists stay in use for any variant that fails.
func (s *Scheduler) runCatalogRefresh() {
	s.logger.Info("Running region catalog refresh")
	ctx, cancel := context.WithTimeout(s.ctx, refreshTimeout)
	defer cancel()

	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.WithError(err).Error("Catalog refresh job failed")
	} else {
		s.logger.Info("Catalog refresh job completed successfully")
	}
}
