package audit_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/repositories"
	"netops/internal/services"
)

var Module = fx.Provide(
	provideLogRepo, provideAuditService)

func provideLogRepo(db *gorm.DB) repositories.LogRepository {
	return repositories.NewLogRepository(db)
}

func provideAuditService(logRepo repositories.LogRepository) services.AuditServiceInterface {
	return services.NewAuditService(logRepo)
}
