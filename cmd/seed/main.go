// Command seed wipes the database and fills it with sample platforms,
// products, rankings and history for local development.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/codyseavey/shoprank/internal/config"
	"github.com/codyseavey/shoprank/internal/database"
	"github.com/codyseavey/shoprank/internal/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	seed := flag.Int64("seed", 0, "random seed (0 uses the current time)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve timezone: %v", err)
	}

	db, err := database.Open(cfg.Database, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("Seeding %s database (seed %d)", cfg.Database.Driver, *seed)

	summary, err := services.Seed(context.Background(), db, services.NewDayClock(loc), rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Seeded %d platforms, %d categories, %d products, %d rankings, %d price points, %d analyses, %d watchlist entries, %d collection logs",
		summary.Platforms, summary.Categories, summary.Products, summary.Rankings,
		summary.PriceHistory, summary.Analyses, summary.Watchlist, summary.Logs)
}
