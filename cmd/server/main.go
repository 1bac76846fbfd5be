package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apprating "github.com/shipkaro/backend/internal/application/rating"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/infrastructure/cache"
	"github.com/shipkaro/backend/internal/infrastructure/config"
	"github.com/shipkaro/backend/internal/infrastructure/logger"
	"github.com/shipkaro/backend/internal/infrastructure/persistence"
	"github.com/shipkaro/backend/internal/infrastructure/rates"
	"github.com/shipkaro/backend/internal/interfaces/http/handler"
	"github.com/shipkaro/backend/internal/interfaces/http/middleware"
	"github.com/shipkaro/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShipKaro Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.DB.AutoMigrate(&rating.CourierContract{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Load the embedded aggregator buy-rate table
	rateTable, err := rates.Load(log)
	if err != nil {
		log.Fatal("Failed to load rate table", zap.Error(err))
	}
	log.Info("Rate table loaded", zap.Int("aggregators", len(rateTable.Aggregators())))

	// Quote cache (in-memory or Redis, per config)
	quoteCache, err := cache.NewQuoteCache(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize quote cache", zap.Error(err))
	}
	defer func() {
		if err := quoteCache.Close(); err != nil {
			log.Error("Error closing quote cache", zap.Error(err))
		}
	}()

	// Repositories
	contractRepo := persistence.NewGormContractRepository(db.DB)

	// Application services
	serviceabilityService := apprating.NewServiceabilityService(contractRepo, quoteCache, cfg.Quote.TTL, log)
	orderPricingService := apprating.NewOrderPricingService(rateTable.NewCalculator(), log)
	contractService := apprating.NewContractService(contractRepo)

	// HTTP handlers
	ratingHandler := handler.NewRatingHandler(serviceabilityService, orderPricingService)
	contractHandler := handler.NewContractHandler(contractService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.New(engine).
		Register(ratingHandler, contractHandler, systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
