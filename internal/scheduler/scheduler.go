package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"netops/internal/infra"
	"netops/internal/services"
	"netops/pkg/logger"
	"netops/pkg/metrics"
)

const (
	JobRouterOffline = "router_offline"
	JobLogRetention  = "log_retention"

	routerOfflineSpec = "@every 1m"
	logRetentionSpec  = "@daily"

	jobTimeout = 2 * time.Minute
)

// Scheduler runs the background maintenance jobs.
type Scheduler struct {
	cron          *cron.Cron
	routerService services.RouterServiceInterface
	auditService  services.AuditServiceInterface
	cfg           infra.SchedulerConfig
	now           func() time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg infra.SchedulerConfig, routerService services.RouterServiceInterface, auditService services.AuditServiceInterface) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		routerService: routerService,
		auditService:  auditService,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.cfg.RouterOfflineAfter > 0 {
		if _, err := s.cron.AddFunc(routerOfflineSpec, func() { s.run(JobRouterOffline, s.SweepOfflineRouters) }); err != nil {
			return err
		}
	}
	if s.cfg.LogRetention > 0 {
		if _, err := s.cron.AddFunc(logRetentionSpec, func() { s.run(JobLogRetention, s.PurgeLogs) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	logger.Info("Cron scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn("Cron scheduler stop timed out")
	}
	logger.Info("Cron scheduler stopped")
}

func (s *Scheduler) run(job string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	err := fn(ctx)
	metrics.SchedulerRun(job, err)
	if err != nil {
		logger.Error("Scheduled job failed", "job", job, "error", err)
	}
}

// SweepOfflineRouters marks routers silent for longer than the configured
// window as OFFLINE.
func (s *Scheduler) SweepOfflineRouters(ctx context.Context) error {
	marked, err := s.routerService.MarkStaleOffline(ctx, s.cfg.RouterOfflineAfter)
	if err != nil {
		return err
	}
	if marked > 0 {
		logger.Info("Routers marked offline", "count", marked)
	}
	return nil
}

// PurgeLogs deletes audit entries older than the retention window.
func (s *Scheduler) PurgeLogs(ctx context.Context) error {
	cutoff := s.now().Add(-s.cfg.LogRetention).Unix()
	deleted, err := s.auditService.Purge(ctx, cutoff)
	if err != nil {
		return err
	}
	logger.Info("Audit logs purged", "deleted", deleted)
	return nil
}
