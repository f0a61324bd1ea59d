package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"netops/internal/infra"
	"netops/internal/repositories"
	"netops/internal/services"
	"netops/pkg/logger"
	"netops/pkg/utils"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long:  `Apply the schema for every table the service owns and exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *infra.Config, db *gorm.DB) error {
				if err := infra.Migrate(db); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				logger.Info("Database schema is up to date")
				return nil
			})
		},
	}
}

func newCreateAdminCommand() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  `Bootstrap an ADMIN account. The password is prompted for when --password is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptPassword(); err != nil {
					return err
				}
			}

			return withDatabase(func(cfg *infra.Config, db *gorm.DB) error {
				if err := infra.Migrate(db); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}

				userRepo := repositories.NewUserRepository(db)
				audit := services.NewAuditService(repositories.NewLogRepository(db))
				accounts := services.NewAccountService(userRepo, utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), audit)

				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()

				user, err := accounts.CreateAdmin(ctx, name, email, password)
				if err != nil {
					return err
				}
				logger.Info("Administrator created", "id", user.ID, "email", user.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "Administrator", "Display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Login email (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password, at least 8 characters")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func withDatabase(fn func(cfg *infra.Config, db *gorm.DB) error) error {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := infra.OpenDatabase(cfg.Database, false)
	if err != nil {
		return err
	}
	defer infra.CloseDatabase(db)

	return fn(cfg, db)
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
