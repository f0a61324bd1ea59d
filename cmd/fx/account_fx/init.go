package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/infra"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/authz"
	"netops/pkg/middleware"
	"netops/pkg/utils"
)

var Module = fx.Provide(
	provideUserRepo,
	provideTokenManager,
	provideAccountService,
	authz.NewEnforcer,
	provideAuthMiddleware,
	provideLoginLimiter,
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideTokenManager(cfg *infra.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager, audit services.AuditServiceInterface) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, tokens, audit)
}

func provideAuthMiddleware(accountService services.AccountServiceInterface, enforcer *authz.Enforcer, cfg *infra.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(accountService, enforcer, cfg.UnassignedStaffSeesAll)
}

func provideLoginLimiter(cfg *infra.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.Auth.LoginRatePerMinute)
}
