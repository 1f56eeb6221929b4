package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"inventory-rest-api/internal/handler"
	"inventory-rest-api/internal/middleware"
)

// Config holds the configuration for creating a router.
type Config struct {
	HealthHandler   *handler.HealthHandler
	ItemHandler     *handler.ItemHandler
	CategoryHandler *handler.CategoryHandler
	ReportHandler   *handler.ReportHandler
	Logger          *logrus.Logger
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", cfg.HealthHandler.Health)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", cfg.ItemHandler.List)
			r.Post("/", cfg.ItemHandler.Create)
			r.Get("/{id}", cfg.ItemHandler.Get)
			r.Put("/{id}", cfg.ItemHandler.Update)
			r.Delete("/{id}", cfg.ItemHandler.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", cfg.CategoryHandler.List)
			r.Post("/", cfg.CategoryHandler.Create)
			r.Put("/{id}", cfg.CategoryHandler.Update)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/categories", cfg.ReportHandler.Categories)
			r.Get("/top-items", cfg.ReportHandler.TopItems)
			r.Get("/low-stock", cfg.ReportHandler.LowStock)
		})
	})

	return r
}
