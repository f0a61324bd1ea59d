package scheduler_fx

import (
	"context"

	"go.uber.org/fx"

	"netops/internal/infra"
	"netops/internal/scheduler"
	"netops/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideScheduler),
	fx.Invoke(startScheduler),
)

func provideScheduler(cfg *infra.Config, routerService services.RouterServiceInterface, auditService services.AuditServiceInterface) *scheduler.Scheduler {
	return scheduler.NewScheduler(cfg.Scheduler, routerService, auditService)
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
}
