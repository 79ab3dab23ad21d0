// Package main implements the entry point for the storefront API server,
// a REST backend for a small e-commerce catalog with users, products,
// categories, and orders.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/nverra/storefront-api/internal/config"
	"github.com/nverra/storefront-api/internal/platform/logger"
	"github.com/nverra/storefront-api/internal/platform/postgres"
)

// main initializes configuration, logging, the database connection, and the
// wired application, then starts the HTTP server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.cleanup()
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the wired application and any initialization error.
func initializeApp() (*application, error) {
	// Load configuration, re-applying the log level when the config file
	// changes on disk.
	cfg, err := config.LoadAndWatch(
		func(updated *config.Config) {
			level, err := logger.ParseLevel(updated.Server.LogLevel)
			if err != nil {
				slog.Warn("ignoring config change with invalid log level",
					"log_level", updated.Server.LogLevel)
				return
			}
			logger.SetLevel(level)
			slog.Info("log level updated", "log_level", updated.Server.LogLevel)
		},
		func(err error) {
			slog.Warn("ignoring invalid config change", "error", err)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish database connection
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	// Apply pending schema migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			appLogger.Error("failed to close database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			appLogger.Error("failed to close database connection", "error", closeErr)
		}
		return nil, err
	}

	return app, nil
}
