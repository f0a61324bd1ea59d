package alert_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/repositories"
	"netops/internal/services"
)

var Module = fx.Provide(
	provideAlertRepo, provideAlertService)

func provideAlertRepo(db *gorm.DB) repositories.AlertRepository {
	return repositories.NewAlertRepository(db)
}

func provideAlertService(alertRepo repositories.AlertRepository, routerRepo repositories.RouterRepository, audit services.AuditServiceInterface) services.AlertServiceInterface {
	return services.NewAlertService(alertRepo, routerRepo, audit)
}
