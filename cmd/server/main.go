package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmaier/beerlog-backend/config"
	"github.com/dmaier/beerlog-backend/internal/app/controller"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/internal/db"
	"github.com/dmaier/beerlog-backend/internal/router"
	"github.com/dmaier/beerlog-backend/internal/scheduler"
	"github.com/dmaier/beerlog-backend/internal/storage"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting beerlog backend server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	breweryRepo := repository.NewBreweryRepository(db.GetDB())
	beerRepo := repository.NewBeerRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	// Initialize services
	breweryService := service.NewBreweryService(breweryRepo)
	beerService := service.NewBeerService(beerRepo, breweryRepo)
	reviewService := service.NewReviewService(reviewRepo, db.GetDB())

	// Initialize image storage
	var imageStore storage.ImageStore
	switch cfg.Storage.Driver {
	case "s3":
		imageStore = storage.NewS3Storage(
			cfg.Storage.S3.Region,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.AccessKeyID,
			cfg.Storage.S3.SecretAccessKey,
			cfg.Storage.S3.BaseURL,
		)
	default:
		imageStore, err = storage.NewLocalStorage(cfg.Storage.ImageDir)
		if err != nil {
			logger.Fatal("Failed to initialize image storage", err)
		}
	}

	// Initialize controllers
	breweryController := controller.NewBreweryController(breweryService)
	beerController := controller.NewBeerController(beerService)
	reviewController := controller.NewReviewController(reviewService)
	imageController := controller.NewImageController(beerService, imageStore)

	// Start the score reconciliation scheduler
	if cfg.Scheduler.ScoreReconcileEnabled {
		scoreScheduler := scheduler.NewScoreScheduler(reviewService, cfg.Scheduler.ScoreReconcileCron)
		if err := scoreScheduler.Start(); err != nil {
			logger.Fatal("Failed to start score scheduler", err)
		}
		defer scoreScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		breweryController,
		beerController,
		reviewController,
		imageController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
