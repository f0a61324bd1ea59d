package router_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/repositories"
	"netops/internal/services"
)

var Module = fx.Provide(
	provideRouterRepo, provideRouterService)

func provideRouterRepo(db *gorm.DB) repositories.RouterRepository {
	return repositories.NewRouterRepository(db)
}

func provideRouterService(
	routerRepo repositories.RouterRepository,
	townRepo repositories.TownRepository,
	alertRepo repositories.AlertRepository,
	audit services.AuditServiceInterface,
) services.RouterServiceInterface {
	return services.NewRouterService(routerRepo, townRepo, alertRepo, audit)
}
