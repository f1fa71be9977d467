package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/models"
)

// DashboardService serves the headline counters, lookup lists and the
// cross-platform comparison
type DashboardService struct {
	db    *gorm.DB
	clock DayClock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, clock DayClock) *DashboardService {
	return &DashboardService{db: db, clock: clock}
}

// GetStats counts active platforms, available products on active platforms,
// today's rankings on active platforms and active categories
func (s *DashboardService) GetStats() (models.DashboardStats, error) {
	var stats models.DashboardStats
	start, end := s.clock.Today()

	if err := s.db.Model(&models.Platform{}).
		Where("is_active = ?", true).
		Count(&stats.TotalPlatforms).Error; err != nil {
		return stats, fmt.Errorf("count platforms: %w", err)
	}

	if err := s.db.Model(&models.Product{}).
		Joins("JOIN platforms ON platforms.id = products.platform_id").
		Scopes(activePlatforms, availableProducts).
		Count(&stats.TotalProducts).Error; err != nil {
		return stats, fmt.Errorf("count products: %w", err)
	}

	if err := s.db.Model(&models.Ranking{}).
		Joins("JOIN platforms ON platforms.id = rankings.platform_id").
		Scopes(activePlatforms).
		Where("rankings.rank_date >= ? AND rankings.rank_date < ?", start, end).
		Count(&stats.TodayRankings).Error; err != nil {
		return stats, fmt.Errorf("count rankings: %w", err)
	}

	if err := s.db.Model(&models.Category{}).
		Where("is_active = ?", true).
		Count(&stats.TotalCategories).Error; err != nil {
		return stats, fmt.Errorf("count categories: %w", err)
	}

	return stats, nil
}

// GetPlatforms returns active platforms ordered by display name
func (s *DashboardService) GetPlatforms() ([]models.Platform, error) {
	platforms := []models.Platform{}
	if err := s.db.Where("is_active = ?", true).
		Order("display_name ASC").
		Find(&platforms).Error; err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	return platforms, nil
}

// GetCategories returns active categories ordered by display name
func (s *DashboardService) GetCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Where("is_active = ?", true).
		Order("display_name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryTree returns the active categories arranged as a forest.
// Children of inactive categories surface as roots.
func (s *DashboardService) GetCategoryTree() (*models.CategoryTree, error) {
	categories, err := s.GetCategories()
	if err != nil {
		return nil, err
	}
	return models.NewCategoryTree(categories), nil
}

// topRankProductSQL picks the product holding rank 1 today on the outer platform.
// MIN keeps the result deterministic when a collector recorded two rank-1 rows.
const topRankProductSQL = `(SELECT MIN(p.name) FROM rankings r
	JOIN products p ON p.id = r.product_id
	WHERE r.platform_id = platforms.id AND r.rank = 1
	AND r.rank_date >= ? AND r.rank_date < ?)`

// ComparePlatforms aggregates product count, average price and today's rank 1
// product for every active platform. Platforms without products report zero
// and nulls.
func (s *DashboardService) ComparePlatforms() ([]models.PlatformComparison, error) {
	start, end := s.clock.Today()

	rows := []models.PlatformComparison{}
	err := s.db.Table("platforms").
		Select(`platforms.id AS platform_id,
			platforms.display_name AS platform_name,
			COUNT(products.id) AS total_products,
			AVG(products.price) AS avg_price,
			`+topRankProductSQL+` AS top_rank_product`, start, end).
		Joins("LEFT JOIN products ON products.platform_id = platforms.id").
		Where("platforms.is_active = ?", true).
		Group("platforms.id, platforms.display_name").
		Order("platforms.display_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("compare platforms: %w", err)
	}

	for i := range rows {
		if rows[i].AvgPrice.Valid {
			rows[i].AvgPrice.Decimal = rows[i].AvgPrice.Decimal.Round(2)
		}
	}
	return nonNil(rows), nil
}

// AveragePrice returns the mean price of available products on active
// platforms, or an invalid NullDecimal when there are none
func (s *DashboardService) AveragePrice() (decimal.NullDecimal, error) {
	var avg decimal.NullDecimal
	err := s.db.Model(&models.Product{}).
		Select("AVG(products.price)").
		Joins("JOIN platforms ON platforms.id = products.platform_id").
		Scopes(activePlatforms, availableProducts).
		Row().
		Scan(&avg)
	if err != nil {
		return avg, fmt.Errorf("average price: %w", err)
	}
	if avg.Valid {
		avg.Decimal = avg.Decimal.Round(2)
	}
	return avg, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
