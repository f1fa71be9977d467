package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/shoprank/internal/api"
	"github.com/codyseavey/shoprank/internal/config"
	"github.com/codyseavey/shoprank/internal/database"
	"github.com/codyseavey/shoprank/internal/services"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve timezone: %v", err)
	}
	clock := services.NewDayClock(loc)

	// Initialize database
	db, err := database.Open(cfg.Database, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize services
	dashboardService := services.NewDashboardService(db, clock)
	rankingService := services.NewRankingService(db, clock)
	productService := services.NewProductService(db, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	watchlistService := services.NewWatchlistService(db, productService)
	snapshotService := services.NewSnapshotService(db, dashboardService, clock, cfg.Snapshot.Hour, cfg.Snapshot.SnapshotCheckInterval())

	// No platform scraper ships with the server; runs only record audit logs
	// until a Collector is plugged in.
	collectionService := services.NewCollectionService(db, services.LogOnlyCollector{}, clock)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start snapshot service in background with panic recovery
	if cfg.Snapshot.Enabled {
		go func() {
			for {
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in snapshot service: %v - restarting in 30 seconds", r)
						}
					}()
					snapshotService.Start(ctx)
				}()

				select {
				case <-ctx.Done():
					return
				case <-time.After(30 * time.Second):
					log.Println("Snapshot service restarting after panic recovery...")
				}
			}
		}()
	}

	var scheduler *services.CollectionScheduler
	if cfg.Collection.Enabled {
		scheduler = services.NewCollectionScheduler(collectionService, cfg.Collection.Schedule)
		if err := scheduler.Start(ctx); err != nil {
			log.Fatalf("Failed to start collection scheduler: %v", err)
		}
	}

	// Setup router
	router := api.SetupRouter(cfg, api.Services{
		Dashboard:  dashboardService,
		History:    snapshotService,
		Rankings:   rankingService,
		Products:   productService,
		Watchlist:  watchlistService,
		Collection: collectionService,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop background workers
	cancel()
	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited")
}
