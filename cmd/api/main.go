package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"inventory-rest-api/internal/cache"
	"inventory-rest-api/internal/config"
	"inventory-rest-api/internal/handler"
	"inventory-rest-api/internal/repository"
	"inventory-rest-api/internal/router"
	"inventory-rest-api/internal/service"
)

func main() {
	cfg := config.MustLoad()
	logger := config.NewLogger(cfg.App)

	logger.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	}).Info("starting inventory API")

	// Initialize catalog repository based on config
	var catalogRepo repository.CatalogRepository
	var err error
	switch cfg.CatalogDB.Type {
	case "sqlite":
		catalogRepo, err = repository.NewSQLiteCatalogRepository(cfg.CatalogDB.Path, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize SQLite catalog")
		}
	case "mysql":
		catalogRepo, err = repository.NewMySQLCatalogRepository(cfg.CatalogDB.MySQLDSN(), logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize MySQL catalog")
		}
	default: // file
		catalogRepo, err = repository.NewFileCatalogRepository(cfg.CatalogDB.DataDir, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize file catalog")
		}
	}
	defer catalogRepo.Close()
	logger.WithField("type", cfg.CatalogDB.Type).Info("catalog repository initialized")

	// Initialize snapshot cache
	var snapshot cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.WithError(err).Warn("redis cache unavailable, continuing without cache")
		} else {
			snapshot = redisCache
			logger.Info("redis snapshot cache initialized")
		}
	case "none":
		// reads always hit the repository
	default: // memory
		snapshot = cache.NewMemoryCache()
		logger.Info("memory snapshot cache initialized")
	}
	if snapshot != nil {
		defer snapshot.Close()
	}

	// Initialize catalog service
	var catalog *service.Catalog
	if snapshot != nil {
		catalog = service.NewCatalogWithCache(catalogRepo, snapshot, cfg.Cache.TTL, logger)
	} else {
		catalog = service.NewCatalog(catalogRepo, logger)
	}

	// Create router
	r := router.New(router.Config{
		HealthHandler:   handler.NewHealthHandler(),
		ItemHandler:     handler.NewItemHandler(catalog),
		CategoryHandler: handler.NewCategoryHandler(catalog),
		ReportHandler:   handler.NewReportHandler(catalog),
		Logger:          logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.WithField("address", cfg.Server.Address()).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}

	logger.Info("server stopped")
}
