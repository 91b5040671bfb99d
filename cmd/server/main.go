package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medimart-backend/internal/config"
	"medimart-backend/internal/server"
	"medimart-backend/internal/service"
	"medimart-backend/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medimart",
		Short: "Medical-supplies storefront API",
	}
	rootCmd.AddCommand(serveCmd(), seedCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// boot loads config, installs the global logger and opens the stores.
func boot(ctx context.Context) (*config.Config, *store.Stores, func(context.Context) error, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	var logger *zap.Logger
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, nil, err
	}
	zap.ReplaceGlobals(logger)

	stores, closeStores, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, stores, closeStores, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, stores, closeStores, err := boot(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeStores(context.Background()) }()

			accounts := service.NewAccountService(stores.Users, &cfg.JWT)
			catalog := service.NewCatalogService(stores.Products, stores.Categories, stores.Users)
			orders := service.NewOrderService(stores.Orders, stores.Products, stores.Users)
			notifications := service.NewNotificationService(stores.Notifications, stores.Users)
			analytics := service.NewAnalyticsService(stores.Orders, stores.Products, stores.Users)

			srv := server.New(cfg, accounts, catalog, orders, notifications, analytics)

			zap.L().Info("starting server",
				zap.String("addr", cfg.Server.Addr()),
				zap.String("store", cfg.StoreBackend))
			return srv.Router().Run(cfg.Server.Addr())
		},
	}
}

func seedCmd() *cobra.Command {
	var adminEmail, adminPassword string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load an admin account and sample catalog data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, stores, closeStores, err := boot(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeStores(context.Background()) }()
			return seed(ctx, cfg, stores, adminEmail, adminPassword)
		},
	}
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@medimart.local", "admin account email")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "changeme123", "admin account password")
	return cmd
}
