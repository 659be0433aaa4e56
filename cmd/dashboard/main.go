package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/sqglp/config"
	"github.com/epeers/sqglp/docs"
	"github.com/epeers/sqglp/internal/app"
	"github.com/epeers/sqglp/internal/cache"
	"github.com/epeers/sqglp/internal/handlers"
	"github.com/epeers/sqglp/internal/middleware"
	"github.com/epeers/sqglp/internal/services"
	"github.com/epeers/sqglp/internal/util"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	ctx := context.Background()

	// Pipeline, result stores and provider clients
	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer pipeline.Close()

	// Initialize caches
	memCache := cache.NewMemoryCache(5 * time.Minute)

	// Initialize services
	var history services.ScoreHistorySource
	if pipeline.History != nil {
		history = pipeline.History
	}
	resultsSvc := services.NewResultsService(pipeline.CSVStore, history, memCache, logger)
	technicalsSvc := services.NewTechnicalsService(pipeline.Yahoo, memCache, logger)

	// Initialize handlers
	resultsHandler := handlers.NewResultsHandler(resultsSvc, technicalsSvc)
	adminHandler := handlers.NewAdminHandler(pipeline.Service)

	// Scheduled refresh
	if cfg.RefreshSchedule != "" {
		scheduler, err := services.NewRefreshScheduler(cfg.RefreshSchedule, util.MarketLocation(), pipeline.Service, logger)
		if err != nil {
			logger.Fatalf("Failed to schedule refresh: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Result routes
	router.GET("/results", resultsHandler.GetResults)
	router.GET("/results/download", resultsHandler.DownloadResults)
	router.GET("/sectors", resultsHandler.GetSectors)
	router.GET("/sectors/heatmap", resultsHandler.GetSectorHeatmap)
	router.GET("/tickers/:ticker/technicals", resultsHandler.GetTechnicals)
	router.GET("/tickers/:ticker/history", resultsHandler.GetHistory)

	// Admin routes
	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is not set; /admin routes are unauthenticated")
	}
	admin := router.Group("/admin", middleware.RequireAdminToken(cfg.AdminToken))
	admin.POST("/run", adminHandler.RunPipeline)

	// API docs
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
