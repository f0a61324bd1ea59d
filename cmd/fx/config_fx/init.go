package config_fx

import (
	"go.uber.org/fx"

	"netops/internal/infra"
	"netops/pkg/logger"
	"netops/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Invoke(initLogger),
)

func provideConfig() (*infra.Config, error) {
	return infra.LoadConfig()
}

func initLogger(cfg *infra.Config) {
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	utils.SetExposeErrorDetails(cfg.IsDevelopment())
}
