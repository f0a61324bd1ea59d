package dashboard

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/infra"
	"netops/internal/repositories"
	"netops/internal/services"
	mem "netops/pkg/memcache"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository, cache mem.StatsStore, cfg *infra.Config, audit services.AuditServiceInterface) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, cache, cfg.Cache.StatsTTL, audit)
}
