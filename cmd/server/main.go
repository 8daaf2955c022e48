package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/api"
	"github.com/erendoru/panobu-api/internal/config"
	"github.com/erendoru/panobu-api/internal/payments"
	"github.com/erendoru/panobu-api/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Payment provider
	provider, err := payments.NewStripeProvider(cfg.Payments, logger)
	if err != nil {
		logger.Fatal("Failed to initialize payment provider", zap.Error(err))
	}

	// Router
	router := api.NewRouter(cfg, repos, provider, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
