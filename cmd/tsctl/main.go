// tsctl - операторская утилита: миграции и заведение администраторов
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shenikar/tourist_safety_system/internal/auth"
	"github.com/shenikar/tourist_safety_system/internal/config"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/repository"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/pkg/logger"
	"github.com/shenikar/tourist_safety_system/pkg/postgres"
)

var (
	cfg *config.Config
	log *logrus.Logger

	migrationsPath string
	downSteps      int
	timeout        time.Duration

	adminEmail    string
	adminPassword string
	adminName     string
	adminSuper    bool
)

var rootCmd = &cobra.Command{
	Use:          "tsctl",
	Short:        "Tourist Safety System operator tool",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log = logger.New(cfg.LogLevel)
		if migrationsPath == "" {
			migrationsPath = cfg.MigrationsPath
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := postgres.MigrateUp(cfg.DatabaseURL, migrationsPath); err != nil {
			return err
		}
		log.WithField("source", migrationsPath).Info("Database migrations applied successfully")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if downSteps < 1 {
			return errors.New("--steps must be at least 1")
		}
		if err := postgres.MigrateDown(cfg.DatabaseURL, migrationsPath, downSteps); err != nil {
			return err
		}
		log.WithField("steps", downSteps).Info("Database migrations rolled back")
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a dispatcher account",
	Args:  cobra.NoArgs,
	RunE:  runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()

	// Профили и кэш для заведения администратора не нужны
	authService := service.NewAuthService(
		repository.NewProfileRepository(dbpool, nil),
		repository.NewAdminRepository(dbpool),
		auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		log,
	)

	admin := &models.AdminUser{
		Email:    adminEmail,
		FullName: adminName,
		Role:     models.RoleAdmin,
	}
	if adminSuper {
		admin.Role = models.RoleSuperAdmin
	}

	if err := authService.CreateAdmin(ctx, admin, adminPassword); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fmt.Errorf("admin %s already exists", adminEmail)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", admin.Role, admin.Email, admin.ID)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "", "Migrations source URL (default: MIGRATIONS_PATH)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to roll back")

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Full name (required)")
	createAdminCmd.Flags().BoolVar(&adminSuper, "super", false, "Grant super_admin role")
	createAdminCmd.MarkFlagRequired("email")
	createAdminCmd.MarkFlagRequired("password")
	createAdminCmd.MarkFlagRequired("name")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
