package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nverra/storefront-api/internal/config"
	"github.com/nverra/storefront-api/internal/platform/postgres"
	"github.com/nverra/storefront-api/internal/service/auth"
	"github.com/nverra/storefront-api/internal/store"
	"github.com/nverra/storefront-api/internal/upload"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	categoryStore store.CategoryStore
	productStore  store.ProductStore
	orderStore    store.OrderStore

	// Services
	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
	uploadSaver    *upload.Saver
}

// newApplication creates the application with all dependencies wired.
// The database connection must already be open; the application takes
// ownership of closing it.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      postgres.NewPostgresUserStore(db, logger),
		categoryStore:  postgres.NewPostgresCategoryStore(db, logger),
		productStore:   postgres.NewPostgresProductStore(db, logger),
		orderStore:     postgres.NewPostgresOrderStore(db, logger),
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(),
		uploadSaver:    upload.NewSaver(cfg.Upload.Dir),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
