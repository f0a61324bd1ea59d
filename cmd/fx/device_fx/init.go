package device_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/infra"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/logger"
)

var Module = fx.Provide(
	provideFirewallClient, provideDeviceRepo, provideDeviceService)

func provideFirewallClient(cfg *infra.Config) services.FirewallClient {
	client := services.NewFirewallClient(cfg.Firewall)
	if client.Enabled() {
		logger.Info("Firewall integration enabled", "host", client.Host())
	}
	return client
}

func provideDeviceRepo(db *gorm.DB) repositories.ConnectedUserRepository {
	return repositories.NewConnectedUserRepository(db)
}

func provideDeviceService(
	deviceRepo repositories.ConnectedUserRepository,
	routerRepo repositories.RouterRepository,
	firewall services.FirewallClient,
	audit services.AuditServiceInterface,
) services.ConnectedUserServiceInterface {
	return services.NewConnectedUserService(deviceRepo, routerRepo, firewall, audit)
}
