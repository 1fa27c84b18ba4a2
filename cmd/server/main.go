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

	"github.com/tagumdiocese/directory/internal/airtable"
	"github.com/tagumdiocese/directory/internal/config"
	"github.com/tagumdiocese/directory/internal/engagement"
	"github.com/tagumdiocese/directory/internal/handlers"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/middleware"
	"github.com/tagumdiocese/directory/internal/repository"
	"github.com/tagumdiocese/directory/internal/services"
	"github.com/tagumdiocese/directory/internal/sheets"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting diocese directory API", map[string]interface{}{
		"version":       handlers.APIVersion,
		"environment":   cfg.Server.Env,
		"port":          cfg.Server.Port,
		"parish_source": cfg.ParishSource,
	})

	// Create remote data source clients
	ctx := context.Background()
	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets, log)
	if err != nil {
		log.Fatal("Failed to create spreadsheet client", err, map[string]interface{}{
			"spreadsheet_id": cfg.Sheets.SpreadsheetID,
		})
	}
	airtableClient := airtable.NewClient(ctx, cfg.Airtable, log)

	log.Info("Data sources initialized", map[string]interface{}{
		"sheets_configured":   sheetsClient.Configured(),
		"airtable_configured": airtableClient.Configured(),
		"spreadsheet_id":      cfg.Sheets.SpreadsheetID,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Session -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Session())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	readiness := map[string]handlers.Checker{config.ParishSourceSheets: sheetsClient}
	if cfg.ParishSource == config.ParishSourceAirtable {
		readiness[config.ParishSourceAirtable] = airtableClient
	}
	healthHandler := handlers.NewHealthHandler(cfg.Server.Env, cfg.ParishSource, readiness)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	directoryRepo := repository.NewDirectoryRepository(sheetsClient, airtableClient, repository.Options{
		ParishSource:  cfg.ParishSource,
		ParishTableID: cfg.Airtable.TableID,
	}, log)
	directoryService := services.NewDirectoryService(directoryRepo, log)
	searchService := services.NewSearchService(directoryRepo, log)
	engagementService := services.NewEngagementService(directoryRepo, engagement.NewStoreWithLimit(nil, cfg.MaxSessions), log)

	// Initialize handlers
	directoryHandler := handlers.NewDirectoryHandler(directoryService)
	searchHandler := handlers.NewSearchHandler(searchService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	videoHandler := handlers.NewVideoHandler()

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		parishes := v1.Group("/parishes")
		{
			parishes.GET("", directoryHandler.ListParishes)
			parishes.GET("/:position", directoryHandler.GetParish)
			parishes.GET("/:position/directions", directoryHandler.Directions)
		}
		v1.GET("/becs", directoryHandler.ListBECs)
		v1.GET("/becs/:position", directoryHandler.GetBEC)
		v1.GET("/schools", directoryHandler.ListSchools)
		v1.GET("/schools/:position", directoryHandler.GetSchool)
		v1.GET("/ministries", directoryHandler.ListMinistries)
		v1.GET("/ministries/:position", directoryHandler.GetMinistry)
		v1.GET("/corporations", directoryHandler.ListCorporations)
		v1.GET("/corporations/:position", directoryHandler.GetCorporation)
		v1.GET("/congregations", directoryHandler.ListCongregations)
		v1.GET("/congregations/:position", directoryHandler.GetCongregation)
		v1.GET("/dclaim", directoryHandler.ListDclaimGroups)
		v1.GET("/dclaim/:position", directoryHandler.GetDclaimGroup)
		v1.GET("/vicariates", directoryHandler.ListVicariates)
		v1.GET("/priests", directoryHandler.ListPriests)

		v1.GET("/search", searchHandler.Search)

		engage := v1.Group("/engagement")
		{
			engage.GET("", engagementHandler.Snapshot)
			engage.POST("/taps", engagementHandler.Tap)
			engage.DELETE("/sponsor", engagementHandler.DismissSponsor)
			engage.DELETE("/video", engagementHandler.DismissVideo)
		}

		v1.GET("/videos/embed", videoHandler.Embed)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
