package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/codyseavey/shoprank/internal/models"
)

func TestSeed(t *testing.T) {
	f := newFixture(t)
	// leftovers must be cleared
	f.platform("stale", "Stale", true)

	summary, err := Seed(context.Background(), f.db, testClock(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	want := SeedSummary{
		Platforms:    5,
		Categories:   8,
		Products:     35,
		Rankings:     35,
		PriceHistory: 35 * (priceHistoryDays + 1),
		Analyses:     35,
		Watchlist:    3,
		Logs:         3,
	}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}

	var platforms int64
	f.db.Model(&models.Platform{}).Count(&platforms)
	if platforms != 5 {
		t.Errorf("Expected 5 platforms after clearing, got %d", platforms)
	}

	clock := testClock()
	stats, err := NewDashboardService(f.db, clock).GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TodayRankings != 35 || stats.TotalProducts != 35 {
		t.Errorf("Unexpected stats after seed: %+v", stats)
	}

	trending, err := NewRankingService(f.db, clock).GetTrendingProducts()
	if err != nil {
		t.Fatalf("GetTrendingProducts failed: %v", err)
	}
	for _, tp := range trending {
		if tp.RankChange >= 0 || tp.RankChange < -5 {
			t.Errorf("seeded rank change out of range: %d", tp.RankChange)
		}
	}

	var logs []models.DataCollectionLog
	f.db.Where("status = ?", models.CollectionPartial).Find(&logs)
	if len(logs) != 1 || logs[0].ErrorMessage == nil || *logs[0].ErrorMessage != "Rate limit exceeded" {
		t.Errorf("Unexpected partial logs: %+v", logs)
	}

	// reseeding is repeatable
	if _, err := Seed(context.Background(), f.db, clock, rand.New(rand.NewSource(2))); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	var products int64
	f.db.Model(&models.Product{}).Count(&products)
	if products != 35 {
		t.Errorf("Expected 35 products after reseed, got %d", products)
	}
}
