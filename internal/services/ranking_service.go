package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/models"
)

const (
	// TopRankCutoff is the worst rank shown in ranking lists
	TopRankCutoff = 10
	// TopRankingsLimit caps the cross-platform top list
	TopRankingsLimit = 50
	// TrendingLimit caps the trending list
	TrendingLimit = 20
)

const rankingRowColumns = `rankings.rank, rankings.rank_change, rankings.sales_volume,
	products.id AS product_id, products.name AS product_name, products.brand,
	platforms.display_name AS platform_name,
	products.price, products.original_price, products.discount_rate,
	products.image_url, products.product_url, products.rating, products.review_count`

// RankingService reads today's rankings
type RankingService struct {
	db    *gorm.DB
	clock DayClock
}

// NewRankingService creates a new ranking service
func NewRankingService(db *gorm.DB, clock DayClock) *RankingService {
	return &RankingService{db: db, clock: clock}
}

func (s *RankingService) todayTop() *gorm.DB {
	start, end := s.clock.Today()
	return s.db.Table("rankings").
		Select(rankingRowColumns).
		Joins("JOIN products ON products.id = rankings.product_id").
		Joins("JOIN platforms ON platforms.id = rankings.platform_id").
		Scopes(activePlatforms).
		Where("rankings.rank_date >= ? AND rankings.rank_date < ?", start, end).
		Where("rankings.rank <= ?", TopRankCutoff)
}

// GetTopRankings returns today's top ranked products across active platforms,
// optionally narrowed by platform name and product category
func (s *RankingService) GetTopRankings(raw RawFilter) ([]models.RankingRow, error) {
	f := raw.Normalize(TopRankingsLimit, TopRankingsLimit)
	// only platform and category apply here
	f.Text = ""

	rows := []models.RankingRow{}
	err := s.todayTop().
		Scopes(f.Scopes()...).
		Order("rankings.rank ASC, rankings.id ASC").
		Limit(TopRankingsLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top rankings: %w", err)
	}
	return nonNil(rows), nil
}

// GetPlatformRankings returns today's top ranked products for one platform.
// Unknown or inactive platforms yield an empty list.
func (s *RankingService) GetPlatformRankings(platformID uint) ([]models.RankingRow, error) {
	rows := []models.RankingRow{}
	err := s.todayTop().
		Where("rankings.platform_id = ?", platformID).
		Order("rankings.rank ASC, rankings.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("platform %d rankings: %w", platformID, err)
	}
	return nonNil(rows), nil
}

// GetTrendingProducts returns available products whose rank rose today
// (negative rank change), steepest rise first
func (s *RankingService) GetTrendingProducts() ([]models.TrendingProduct, error) {
	start, end := s.clock.Today()

	rows := []models.TrendingProduct{}
	err := s.db.Table("products").
		Select(productRowColumns+`, rankings.rank, rankings.rank_change`).
		Joins("JOIN platforms ON platforms.id = products.platform_id").
		Joins("JOIN rankings ON rankings.product_id = products.id").
		Scopes(activePlatforms, availableProducts).
		Where("rankings.rank_date >= ? AND rankings.rank_date < ?", start, end).
		Where("rankings.rank_change < ?", 0).
		Order("rankings.rank_change ASC, rankings.rank ASC, rankings.id ASC").
		Limit(TrendingLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("trending products: %w", err)
	}
	return nonNil(rows), nil
}
