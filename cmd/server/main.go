package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/Mdev98/fast-food-api/internal/application/catalog"
	orderingapp "github.com/Mdev98/fast-food-api/internal/application/ordering"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/cache"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/config"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/logger"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/persistence"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/sms"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/storage"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/handler"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting fast-food API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Response cache (Redis, with in-memory fallback)
	store, err := cache.NewStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing cache store", zap.Error(err))
		}
	}()

	// Object storage for product images
	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3ObjectStorage(cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure image bucket, uploads may fail", zap.Error(err))
		}
		cancel()
		objectStorage = s3Store
	} else {
		log.Warn("Object storage not configured, image hosting disabled")
	}

	// SMS gateway
	smsClient, err := sms.NewGatewayClient(cfg.SMS, sms.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize SMS client", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	productPrefix := cfg.Cache.Prefix + ":/products"
	orderPrefix := cfg.Cache.Prefix + ":/orders"

	productService := catalogapp.NewProductService(productRepo, store, productPrefix, log)
	var imageService *catalogapp.ImageService
	if objectStorage != nil {
		imageService = catalogapp.NewImageService(productService, productRepo, objectStorage, log)
	}
	notifier := orderingapp.NewNotifier(smsClient, cfg.SMS.ManagerMobile, log)
	orderService := orderingapp.NewOrderService(orderRepo, productRepo, notifier, store, orderPrefix, log)

	engine := router.New(router.Dependencies{
		Config:   cfg,
		Logger:   log,
		Cache:    store,
		Products: handler.NewProductHandler(productService, imageService),
		Orders:   handler.NewOrderHandler(orderService),
		System:   handler.NewSystemHandler(db, store, cfg.Cache.Prefix),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
