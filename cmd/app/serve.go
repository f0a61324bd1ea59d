package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"netops/cmd/fx/account_fx"
	"netops/cmd/fx/alert_fx"
	"netops/cmd/fx/audit_fx"
	"netops/cmd/fx/config_fx"
	"netops/cmd/fx/controllers_fx"
	"netops/cmd/fx/dashboard"
	"netops/cmd/fx/db_fx"
	"netops/cmd/fx/device_fx"
	"netops/cmd/fx/memcache_fx"
	"netops/cmd/fx/province_fx"
	"netops/cmd/fx/router_fx"
	"netops/cmd/fx/scheduler_fx"
	"netops/cmd/fx/setting_fx"
	"netops/cmd/fx/staff_fx"
	"netops/internal/infra"
	"netops/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Migrate the database, start the background jobs and serve the API until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp()
			app.Run()
			return app.Err()
		},
	}
}

func newApp() *fx.App {
	return fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		audit_fx.Module,
		account_fx.Module,
		province_fx.Module,
		staff_fx.Module,
		router_fx.Module,
		alert_fx.Module,
		device_fx.Module,
		setting_fx.Module,
		dashboard.Module,
		controllers_fx.Module,
		scheduler_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)
}

func StartServer(lc fx.Lifecycle, cfg *infra.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting HTTP server", "addr", srv.Addr, "env", cfg.Env)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
