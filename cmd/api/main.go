package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/data"
	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/handler"
	"github.com/studyhub/progress/internal/infrastructure"
	"github.com/studyhub/progress/internal/middleware"
	"github.com/studyhub/progress/internal/service"
)

const (
	sessionEvictionInterval = 5 * time.Minute
	sessionIdleTimeout      = 30 * time.Minute
)

func main() {
	// Load configuration
	config := infrastructure.LoadConfig()

	// Initialize logger
	logger, err := infrastructure.NewLogger(config.Server.Environment, config.Telemetry.ServiceName)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.SyncLogger(logger)

	logger.Info("Starting StudyHub progress API",
		zap.String("environment", config.Server.Environment),
		zap.Int("port", config.Server.Port),
		zap.String("store_backend", config.Store.Backend),
	)

	// Initialize context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize telemetry
	telemetry, err := infrastructure.NewTelemetry(ctx, &config.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	metrics, err := telemetry.CreateMetrics()
	if err != nil {
		logger.Error("Failed to create metrics", zap.Error(err))
		os.Exit(1)
	}

	// Load the problem and contest catalog
	catalog, err := data.LoadCatalog(config.Catalog.Path, infrastructure.ComponentLogger(logger, "catalog"))
	if err != nil {
		logger.Error("Failed to load catalog", zap.Error(err))
		os.Exit(1)
	}

	// Open the progress store
	store, healthCheck, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to open progress store", zap.Error(err))
		os.Exit(1)
	}
	defer closeStore()

	clock := domain.SystemClock{}

	// Initialize services
	catalogService := service.NewCatalogService(catalog, clock, telemetry.Tracer)
	sessionService := service.NewSessionService(&config.Session, clock, telemetry.Tracer, logger)
	registry := service.NewSessionRegistry(store, clock, telemetry.Tracer, infrastructure.ComponentLogger(logger, "progress"), metrics)
	go registry.RunEviction(ctx, sessionEvictionInterval, sessionIdleTimeout)

	// Initialize handlers
	handlers := handler.Handlers{
		Session:  handler.NewSessionHandler(sessionService),
		Problem:  handler.NewProblemHandler(catalogService),
		Contest:  handler.NewContestHandler(catalogService, registry, clock, config.Server.CountdownInterval),
		Progress: handler.NewProgressHandler(catalogService, registry),
	}

	// Setup Gin router
	if config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(middleware.NewCORSConfig(config.Server.AllowedOrigins)))
	router.Use(middleware.TracingMiddleware(telemetry.Tracer))
	router.Use(middleware.MetricsMiddleware(metrics))

	router.GET("/health", func(c *gin.Context) {
		if err := healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "progress store unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  config.Telemetry.ServiceVersion,
			"store":    config.Store.Backend,
			"sessions": registry.Len(),
		})
	})

	// Metrics endpoint for Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterRoutes(router, handlers, sessionService)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server starting",
			zap.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stops eviction and ends open countdown streams
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
