package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nverra/storefront-api/internal/api"
	apiMiddleware "github.com/nverra/storefront-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Every route declares its access level explicitly: public
// routes are mounted outside the authenticated group.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordHasher)
	categoryHandler := api.NewCategoryHandler(app.categoryStore)
	productHandler := api.NewProductHandler(
		app.productStore,
		app.categoryStore,
		app.uploadSaver,
		app.config.Upload.PublicPath,
	)
	searchHandler := api.NewSearchHandler(app.productStore)
	orderHandler := api.NewOrderHandler(app.orderStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	requireAdmin := authMiddleware.RequireAdmin(app.config.Auth.RequireAdminWrites)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/users/register", authHandler.Register)
		r.Post("/users/login", authHandler.Login)
		r.Post("/users/refresh", authHandler.RefreshToken)

		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{id}", categoryHandler.Get)

		r.Get("/products", productHandler.List)
		r.Get("/products/get/count", productHandler.Count)
		r.Get("/products/get/featured/{count}", productHandler.Featured)
		r.Get("/products/{id}", productHandler.Get)

		r.Get("/search", searchHandler.Search)

		r.Get("/api-docs", api.Docs)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// User endpoints
			r.Get("/users", userHandler.List)
			r.Post("/users", authHandler.Register)
			r.Get("/users/get/count", userHandler.Count)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)

			// Order endpoints
			r.Get("/orders", orderHandler.List)
			r.Post("/orders", orderHandler.Create)
			r.Get("/orders/get/count", orderHandler.Count)
			r.Get("/orders/get/totalsales", orderHandler.TotalSales)
			r.Get("/orders/get/userorders/{userId}", orderHandler.UserOrders)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Put("/orders/{id}", orderHandler.Update)
			r.Delete("/orders/{id}", orderHandler.Delete)

			// Catalog writes, admin-gated when configured
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Post("/categories", categoryHandler.Create)
				r.Put("/categories/{id}", categoryHandler.Update)
				r.Delete("/categories/{id}", categoryHandler.Delete)

				r.Post("/products", productHandler.Create)
				r.Put("/products/gallery-images/{id}", productHandler.GalleryImages)
				r.Put("/products/{id}", productHandler.Update)
				r.Delete("/products/{id}", productHandler.Delete)
			})
		})
	})

	// Static file serving for uploaded images
	fileServer := http.StripPrefix(
		app.config.Upload.PublicPath,
		http.FileServer(http.Dir(app.config.Upload.Dir)),
	)
	r.Get(app.config.Upload.PublicPath+"/*", fileServer.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
