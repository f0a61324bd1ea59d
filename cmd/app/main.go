// @title           netops API
// @version         1.0
// @description     Administration API for routers, regions, devices and alerts of a managed network.
// @BasePath        /api

// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        auth-token

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "netops",
		Short:        "netops - network operations admin API",
		Long:         `netops serves the administration API for routers, regions, connected devices and alerts, and ships the database and bootstrap tooling it needs.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newCreateAdminCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
