package controllers_fx

import (
	"go.uber.org/fx"

	"netops/internal/api/controllers"
	"netops/internal/infra"
	"netops/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideAccountController),
	fx.Provide(controllers.NewProvincesController),
	fx.Provide(controllers.NewDistrictsController),
	fx.Provide(controllers.NewTownsController),
	fx.Provide(controllers.NewRoutersController),
	fx.Provide(controllers.NewStaffController),
	fx.Provide(controllers.NewAlertsController),
	fx.Provide(controllers.NewConnectedUsersController),
	fx.Provide(controllers.NewSettingsController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewLogsController),
	fx.Provide(controllers.NewHealthController))

func provideAccountController(accountService services.AccountServiceInterface, cfg *infra.Config) *controllers.AccountController {
	return controllers.NewAccountController(accountService, cfg.Server.CookieSecure)
}
