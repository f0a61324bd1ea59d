package setting_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/repositories"
	"netops/internal/services"
)

var Module = fx.Provide(
	provideSettingRepo, provideSettingService)

func provideSettingRepo(db *gorm.DB) repositories.SettingRepository {
	return repositories.NewSettingRepository(db)
}

func provideSettingService(settingRepo repositories.SettingRepository, audit services.AuditServiceInterface) services.SettingServiceInterface {
	return services.NewSettingService(settingRepo, audit)
}
