package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/shoprank/internal/api/handlers"
	"github.com/codyseavey/shoprank/internal/config"
)

// Services bundles what the router needs from the service layer
type Services struct {
	Dashboard  handlers.DashboardReader
	History    handlers.HistoryReader
	Rankings   handlers.RankingReader
	Products   handlers.ProductReader
	Watchlist  handlers.WatchlistStore
	Collection handlers.CollectionRunner
}

func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID(), Metrics())

	frontendPath := cfg.Server.FrontendDistPath
	serveFrontend := frontendPath != "" && dirExists(frontendPath)

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CORSAllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))

	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, svc.History)
	rankingHandler := handlers.NewRankingHandler(svc.Rankings)
	productHandler := handlers.NewProductHandler(svc.Products)
	watchlistHandler := handlers.NewWatchlistHandler(svc.Watchlist)
	collectionHandler := handlers.NewCollectionHandler(svc.Collection)

	// API routes
	api := router.Group("/api")
	if cfg.RateLimit.Enabled {
		limiter, err := NewRateLimiter(cfg.RateLimit)
		if err != nil {
			log.Printf("Rate limiting disabled: %v", err)
		} else {
			api.Use(limiter.Middleware())
		}
	}
	{
		api.GET("/dashboard/stats", dashboardHandler.GetStats)
		api.GET("/dashboard/history", dashboardHandler.GetHistory)
		api.GET("/platforms", dashboardHandler.GetPlatforms)
		api.GET("/categories", dashboardHandler.GetCategories)
		api.GET("/categories/tree", dashboardHandler.GetCategoryTree)
		api.GET("/categories/:id/path", dashboardHandler.GetCategoryPath)
		api.GET("/categories/:id/children", dashboardHandler.GetCategoryChildren)
		api.GET("/compare/platforms", dashboardHandler.ComparePlatforms)

		rankings := api.Group("/rankings")
		{
			rankings.GET("/top", rankingHandler.GetTopRankings)
			rankings.GET("/top/export", rankingHandler.ExportTopRankings)
			rankings.GET("/platform/:platformId", rankingHandler.GetPlatformRankings)
		}

		products := api.Group("/products")
		{
			products.GET("/search", productHandler.Search)
			products.GET("/trending", rankingHandler.GetTrendingProducts)
			products.GET("/:id/analysis", productHandler.GetAnalysis)
			products.GET("/:id/price-history", productHandler.GetPriceHistory)
		}

		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("", watchlistHandler.GetWatchlist)
			watchlist.POST("", watchlistHandler.AddToWatchlist)
			watchlist.GET("/:userEmail", watchlistHandler.GetUserWatchlist)
		}

		collection := api.Group("/collection")
		{
			collection.GET("/logs", collectionHandler.GetLogs)
			collection.POST("/run", collectionHandler.RunCollection)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve frontend static files
	if serveFrontend {
		indexPath := filepath.Join(frontendPath, "index.html")

		router.Static("/assets", filepath.Join(frontendPath, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(frontendPath, "favicon.ico"))

		router.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})

		// SPA fallback - serve index.html for all non-API routes
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(indexPath)
		})
	} else {
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
	}

	return router
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
