package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/models"
)

// SeedSummary counts the rows Seed created
type SeedSummary struct {
	Platforms    int
	Categories   int
	Products     int
	Rankings     int
	PriceHistory int
	Analyses     int
	Watchlist    int
	Logs         int
}

type seedProduct struct {
	name, description, brand string
	price, originalPrice     string
	discountRate, rating     string
	reviewCount              int
	category                 string
	image                    string
}

var seedPlatforms = []models.Platform{
	{Name: "coupang", DisplayName: "쿠팡", BaseURL: "https://www.coupang.com", IsActive: true},
	{Name: "naver_shopping", DisplayName: "네이버 쇼핑", BaseURL: "https://shopping.naver.com", IsActive: true},
	{Name: "11st", DisplayName: "11번가", BaseURL: "https://www.11st.co.kr", IsActive: true},
	{Name: "gmarket", DisplayName: "G마켓", BaseURL: "https://www.gmarket.co.kr", IsActive: true},
	{Name: "auction", DisplayName: "옥션", BaseURL: "https://www.auction.co.kr", IsActive: true},
}

var seedCategories = []models.Category{
	{Name: "electronics", DisplayName: "전자제품", IsActive: true},
	{Name: "fashion", DisplayName: "패션/의류", IsActive: true},
	{Name: "beauty", DisplayName: "뷰티/화장품", IsActive: true},
	{Name: "home_living", DisplayName: "홈/리빙", IsActive: true},
	{Name: "food", DisplayName: "식품/건강", IsActive: true},
	{Name: "books", DisplayName: "도서/문구", IsActive: true},
	{Name: "sports", DisplayName: "스포츠/레저", IsActive: true},
	{Name: "baby_kids", DisplayName: "유아/아동", IsActive: true},
}

var seedCatalog = []seedProduct{
	{"삼성 갤럭시 S24 256GB", "최신 플래그십 스마트폰", "Samsung", "1200000", "1350000", "11.11", "4.5", 1523, "electronics", "galaxy-s24.jpg"},
	{"애플 아이폰 15 Pro 128GB", "프리미엄 스마트폰", "Apple", "1550000", "1650000", "6.06", "4.7", 892, "electronics", "iphone-15-pro.jpg"},
	{"LG 32인치 4K 모니터", "고해상도 컴퓨터 모니터", "LG", "450000", "520000", "13.46", "4.3", 456, "electronics", "lg-monitor.jpg"},
	{"나이키 에어맥스 90", "클래식 운동화", "Nike", "150000", "180000", "16.67", "4.4", 2341, "fashion", "nike-airmax.jpg"},
	{"유니클로 히트텍 이너웨어", "보온 속옷", "Uniqlo", "25000", "29000", "13.79", "4.2", 1876, "fashion", "uniqlo-heattech.jpg"},
	{"설화수 윤조에센스", "프리미엄 스킨케어", "Sulwhasoo", "120000", "135000", "11.11", "4.6", 567, "beauty", "sulwhasoo-essence.jpg"},
	{"이니스프리 그린티 씨드 세럼", "자연주의 스킨케어", "Innisfree", "32000", "38000", "15.79", "4.1", 1234, "beauty", "innisfree-serum.jpg"},
}

const priceHistoryDays = 7

// Seed clears every table and fills the database with a demo data set:
// five Korean marketplaces, eight categories, the catalog on every platform,
// today's rankings, a week of prices, analyses, watchlist entries and
// collection logs. rng drives every random value so runs are reproducible.
func Seed(ctx context.Context, db *gorm.DB, clock DayClock, rng *rand.Rand) (SeedSummary, error) {
	var summary SeedSummary
	now := clock.now()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearTables(tx); err != nil {
			return err
		}

		platforms := append([]models.Platform(nil), seedPlatforms...)
		if err := tx.Create(&platforms).Error; err != nil {
			return fmt.Errorf("seed platforms: %w", err)
		}
		summary.Platforms = len(platforms)

		categories := append([]models.Category(nil), seedCategories...)
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		summary.Categories = len(categories)
		categoryIDs := make(map[string]uint, len(categories))
		for _, c := range categories {
			categoryIDs[c.Name] = c.ID
		}

		var products []models.Product
		for _, p := range platforms {
			for i, item := range seedCatalog {
				products = append(products, newSeedProduct(p, i, item, categoryIDs[item.category], now))
			}
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		summary.Products = len(products)

		var rankings []models.Ranking
		for _, p := range platforms {
			rank := 1
			for _, prod := range products {
				if prod.PlatformID != p.ID || rank > TopRankCutoff {
					continue
				}
				change := rng.Intn(11) - 5
				sales := rng.Intn(1000) + 100
				views := rng.Intn(10000) + 1000
				rankings = append(rankings, models.Ranking{
					ProductID:   prod.ID,
					PlatformID:  p.ID,
					CategoryID:  prod.CategoryID,
					Rank:        rank,
					RankDate:    now,
					SalesVolume: &sales,
					ViewCount:   &views,
					RankChange:  &change,
				})
				rank++
			}
		}
		if err := tx.Create(&rankings).Error; err != nil {
			return fmt.Errorf("seed rankings: %w", err)
		}
		summary.Rankings = len(rankings)

		var history []models.PriceHistory
		var analyses []models.ProductAnalysis
		for _, prod := range products {
			for days := priceHistoryDays; days >= 0; days-- {
				// ±5% around the current price
				variation := decimal.NewFromFloat((rng.Float64() - 0.5) * 0.1)
				history = append(history, models.PriceHistory{
					ProductID:     prod.ID,
					Price:         prod.Price.Mul(decimal.NewFromInt(1).Add(variation)).Round(2),
					OriginalPrice: prod.OriginalPrice,
					DiscountRate:  prod.DiscountRate,
					RecordedAt:    now.AddDate(0, 0, -days),
				})
			}

			analysis, err := newSeedAnalysis(prod.ID, rng, now)
			if err != nil {
				return err
			}
			analyses = append(analyses, analysis)
		}
		if err := tx.CreateInBatches(&history, 100).Error; err != nil {
			return fmt.Errorf("seed price history: %w", err)
		}
		summary.PriceHistory = len(history)
		if err := tx.Create(&analyses).Error; err != nil {
			return fmt.Errorf("seed analyses: %w", err)
		}
		summary.Analyses = len(analyses)

		watchlist := []models.WatchlistEntry{
			{UserEmail: "user1@example.com", ProductID: products[0].ID, NotifyPriceChange: true, NotifyRankChange: true,
				TargetPrice: decimal.NewNullDecimal(decimal.RequireFromString("1100000"))},
			{UserEmail: "user1@example.com", ProductID: products[5].ID, NotifyPriceChange: true,
				TargetPrice: decimal.NewNullDecimal(decimal.RequireFromString("140000"))},
			{UserEmail: "user2@example.com", ProductID: products[2].ID, NotifyRankChange: true},
		}
		if err := tx.Create(&watchlist).Error; err != nil {
			return fmt.Errorf("seed watchlist: %w", err)
		}
		summary.Watchlist = len(watchlist)

		logs := seedCollectionLogs(platforms, now)
		if err := tx.Create(&logs).Error; err != nil {
			return fmt.Errorf("seed collection logs: %w", err)
		}
		summary.Logs = len(logs)
		return nil
	})
	if err != nil {
		return SeedSummary{}, err
	}

	log.Printf("Seed: created %d platforms, %d categories, %d products, %d rankings",
		summary.Platforms, summary.Categories, summary.Products, summary.Rankings)
	return summary, nil
}

func clearTables(tx *gorm.DB) error {
	// children first
	tables := []interface{}{
		&models.DataCollectionLog{},
		&models.WatchlistEntry{},
		&models.ProductAnalysis{},
		&models.PriceHistory{},
		&models.Ranking{},
		&models.Product{},
		&models.Category{},
		&models.Platform{},
		&models.DashboardSnapshot{},
	}
	for _, t := range tables {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t).Error; err != nil {
			return fmt.Errorf("clear %T: %w", t, err)
		}
	}
	return nil
}

func newSeedProduct(p models.Platform, index int, item seedProduct, categoryID uint, now time.Time) models.Product {
	description := item.description
	brand := item.brand
	image := "https://example.com/" + item.image
	platformProductID := fmt.Sprintf("%s_%04d", p.Name, index+1)
	cid := categoryID

	return models.Product{
		PlatformID:        p.ID,
		PlatformProductID: platformProductID,
		Name:              item.name,
		Description:       &description,
		CategoryID:        &cid,
		Brand:             &brand,
		Price:             decimal.RequireFromString(item.price),
		OriginalPrice:     decimal.NewNullDecimal(decimal.RequireFromString(item.originalPrice)),
		DiscountRate:      decimal.NewNullDecimal(decimal.RequireFromString(item.discountRate)),
		ImageURL:          &image,
		ProductURL:        p.BaseURL + "/products/" + platformProductID,
		Rating:            decimal.NewNullDecimal(decimal.RequireFromString(item.rating)),
		ReviewCount:       item.reviewCount,
		IsAvailable:       true,
		LastUpdated:       now,
	}
}

func newSeedAnalysis(productID uint, rng *rand.Rand, now time.Time) (models.ProductAnalysis, error) {
	score := func(lo, span float64) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.NewFromFloat(rng.Float64()*span + lo).Round(2))
	}

	position := models.MarketPositionWeak
	switch r := rng.Float64(); {
	case r > 0.7:
		position = models.MarketPositionStrong
	case r > 0.3:
		position = models.MarketPositionModerate
	}

	data, err := json.Marshal(map[string]interface{}{
		"keywords":        []string{"인기", "베스트셀러", "추천"},
		"sentiment":       "positive",
		"competitorCount": rng.Intn(10) + 5,
		"marketShare":     decimal.NewFromFloat(rng.Float64()*20 + 5).Round(2).String(),
	})
	if err != nil {
		return models.ProductAnalysis{}, fmt.Errorf("encode analysis data: %w", err)
	}

	return models.ProductAnalysis{
		ProductID:           productID,
		TrendScore:          score(60, 40),
		PriceStability:      score(70, 30),
		Competitiveness:     score(50, 50),
		MarketPosition:      &position,
		RecommendationScore: score(70, 30),
		AnalysisData:        datatypes.JSON(data),
		LastAnalyzed:        now,
	}, nil
}

func seedCollectionLogs(platforms []models.Platform, now time.Time) []models.DataCollectionLog {
	started := now.Add(-time.Hour)
	at := func(d time.Duration) *time.Time {
		t := started.Add(d)
		return &t
	}
	rateLimited := "Rate limit exceeded"

	return []models.DataCollectionLog{
		{PlatformID: platforms[0].ID, Status: models.CollectionSuccess, ProductsUpdated: 15, RankingsUpdated: 10,
			StartedAt: started, CompletedAt: at(5 * time.Minute)},
		{PlatformID: platforms[1].ID, Status: models.CollectionSuccess, ProductsUpdated: 12, RankingsUpdated: 10,
			StartedAt: started, CompletedAt: at(200 * time.Second)},
		{PlatformID: platforms[2].ID, Status: models.CollectionPartial, ProductsUpdated: 8, RankingsUpdated: 7,
			ErrorMessage: &rateLimited, StartedAt: started, CompletedAt: at(100 * time.Second)},
	}
}
