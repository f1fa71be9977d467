package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codyseavey/shoprank/internal/models"
)

func TestGetAnalysis(t *testing.T) {
	f := newFixture(t)
	p := f.platform("coupang", "쿠팡", true)
	prod := f.product(p, "galaxy", "1000")
	other := f.product(p, "iphone", "1000")

	strong := models.MarketPositionStrong
	weak := models.MarketPositionWeak
	f.create(&models.ProductAnalysis{ProductID: prod.ID, MarketPosition: &weak, LastAnalyzed: testNow.Add(-48 * time.Hour)})
	f.create(&models.ProductAnalysis{ProductID: prod.ID, MarketPosition: &strong, LastAnalyzed: testNow})
	f.create(&models.ProductAnalysis{ProductID: prod.ID, MarketPosition: &weak, LastAnalyzed: testNow.Add(-time.Hour)})

	svc := NewProductService(f.db, 20, 100)

	analysis, err := svc.GetAnalysis(prod.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if analysis.MarketPosition == nil || *analysis.MarketPosition != models.MarketPositionStrong {
		t.Errorf("Expected the latest (strong) analysis, got %+v", analysis)
	}

	_, err = svc.GetAnalysis(other.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetAnalysisTieBreaksOnNewestRow(t *testing.T) {
	f := newFixture(t)
	p := f.platform("coupang", "쿠팡", true)
	prod := f.product(p, "galaxy", "1000")

	first := models.ProductAnalysis{ProductID: prod.ID, LastAnalyzed: testNow}
	second := models.ProductAnalysis{ProductID: prod.ID, LastAnalyzed: testNow}
	f.create(&first)
	f.create(&second)

	analysis, err := NewProductService(f.db, 20, 100).GetAnalysis(prod.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if analysis.ID != second.ID {
		t.Errorf("Expected analysis %d, got %d", second.ID, analysis.ID)
	}
}

func TestGetPriceHistory(t *testing.T) {
	f := newFixture(t)
	p := f.platform("coupang", "쿠팡", true)
	prod := f.product(p, "galaxy", "1000")

	for i := 0; i < 35; i++ {
		f.create(&models.PriceHistory{
			ProductID:  prod.ID,
			Price:      decimal.NewFromInt(int64(1000 + i)),
			RecordedAt: testNow.Add(time.Duration(-i) * time.Hour),
		})
	}

	svc := NewProductService(f.db, 20, 100)
	history, err := svc.GetPriceHistory(prod.ID)
	if err != nil {
		t.Fatalf("GetPriceHistory failed: %v", err)
	}
	if len(history) != PriceHistoryLimit {
		t.Fatalf("Expected %d rows, got %d", PriceHistoryLimit, len(history))
	}
	if !history[0].Price.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected newest price first, got %s", history[0].Price)
	}
	for i := 1; i < len(history); i++ {
		if history[i].RecordedAt.After(history[i-1].RecordedAt) {
			t.Errorf("history not descending at %d", i)
		}
	}

	empty, err := svc.GetPriceHistory(9999)
	if err != nil {
		t.Fatalf("GetPriceHistory failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", empty)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	p := f.platform("coupang", "쿠팡", true)
	f.product(p, "Samsung Galaxy S24", "1200000", updatedAt(testNow.Add(-time.Hour)))
	f.product(p, "galaxy buds", "150000")
	f.product(p, "Galaxy Tab (sold out)", "500000", unavailable)
	f.product(p, "iPhone 15", "1550000")

	svc := NewProductService(f.db, 20, 100)

	for _, q := range []string{"galaxy", "GALAXY", "GaLaXy"} {
		t.Run(q, func(t *testing.T) {
			rows, err := svc.Search(RawFilter{Query: q})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("Expected 2 results, got %d: %+v", len(rows), rows)
			}
			// most recently updated first
			if rows[0].Name != "galaxy buds" || rows[1].Name != "Samsung Galaxy S24" {
				t.Errorf("Unexpected order: %s, %s", rows[0].Name, rows[1].Name)
			}
			if rows[0].PlatformName != "쿠팡" {
				t.Errorf("PlatformName = %s", rows[0].PlatformName)
			}
		})
	}
}

func TestSearchFiltersAndLimit(t *testing.T) {
	f := newFixture(t)
	coupang := f.platform("coupang", "쿠팡", true)
	naver := f.platform("naver_shopping", "네이버 쇼핑", true)
	legacy := f.platform("legacy", "Legacy", false)
	beauty := f.category("beauty", "뷰티", nil)

	for i := 0; i < 120; i++ {
		f.product(coupang, fmt.Sprintf("item %03d", i), "100", updatedAt(testNow.Add(time.Duration(-i)*time.Minute)))
	}
	f.product(naver, "serum", "32000", inCategory(beauty.ID))
	f.product(naver, "50% off_deal", "1000")
	f.product(legacy, "legacy serum", "1")

	svc := NewProductService(f.db, 20, 100)

	tests := []struct {
		name string
		raw  RawFilter
		want int
	}{
		{"default limit", RawFilter{}, 20},
		{"explicit limit", RawFilter{Limit: "7"}, 7},
		{"limit clamped to max", RawFilter{Limit: "1000"}, 100},
		{"platform filter", RawFilter{Platform: "naver_shopping"}, 2},
		{"category filter", RawFilter{Category: fmt.Sprint(beauty.ID)}, 1},
		{"inactive platform excluded", RawFilter{Query: "serum"}, 1},
		{"percent is literal", RawFilter{Query: "50%"}, 1},
		{"underscore is literal", RawFilter{Query: "f_d"}, 1},
		{"no match", RawFilter{Query: "nothing"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := svc.Search(tt.raw)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(rows) != tt.want {
				t.Errorf("Expected %d rows, got %d", tt.want, len(rows))
			}
		})
	}
}

func TestNewProductServiceLimits(t *testing.T) {
	svc := NewProductService(nil, 0, 0)
	if svc.defaultLimit != DefaultSearchLimit || svc.maxLimit != MaxSearchLimit {
		t.Errorf("Expected fallback limits, got %d/%d", svc.defaultLimit, svc.maxLimit)
	}
	svc = NewProductService(nil, 50, 10)
	if svc.maxLimit != 50 {
		t.Errorf("Expected max raised to default, got %d", svc.maxLimit)
	}
}
