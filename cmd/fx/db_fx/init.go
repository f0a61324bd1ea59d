package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"netops/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *infra.Config) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg.Database, cfg.IsDevelopment() && cfg.LogLevel == "debug")
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		infra.CloseDatabase(db)
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db)
			return nil
		},
	})
	return db, nil
}
