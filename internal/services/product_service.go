package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/models"
)

const (
	// PriceHistoryLimit is how many snapshots a product's history returns
	PriceHistoryLimit = 30

	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

const productRowColumns = `products.id, products.name, products.brand,
	products.price, products.original_price, products.discount_rate,
	products.image_url, products.product_url, products.rating, products.review_count,
	platforms.display_name AS platform_name`

// ProductService provides product search, analysis and price history reads
type ProductService struct {
	db           *gorm.DB
	defaultLimit int
	maxLimit     int
}

// NewProductService creates a new product service. Non-positive limits fall
// back to 20 and 100.
func NewProductService(db *gorm.DB, defaultLimit, maxLimit int) *ProductService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultSearchLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxSearchLimit
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &ProductService{db: db, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// GetAnalysis returns the most recently analyzed record for a product.
// Ties on LastAnalyzed go to the newest row.
func (s *ProductService) GetAnalysis(productID uint) (*models.ProductAnalysis, error) {
	var analysis models.ProductAnalysis
	err := s.db.Where("product_id = ?", productID).
		Order("last_analyzed DESC, id DESC").
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("analysis for product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("analysis for product %d: %w", productID, err)
	}
	return &analysis, nil
}

// GetPriceHistory returns up to the 30 most recent price snapshots, newest first
func (s *ProductService) GetPriceHistory(productID uint) ([]models.PriceHistory, error) {
	history := []models.PriceHistory{}
	err := s.db.Where("product_id = ?", productID).
		Order("recorded_at DESC, id DESC").
		Limit(PriceHistoryLimit).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("price history for product %d: %w", productID, err)
	}
	return history, nil
}

// Search finds available products whose name contains the query text,
// ignoring case, most recently updated first
func (s *ProductService) Search(raw RawFilter) ([]models.ProductRow, error) {
	f := raw.Normalize(s.defaultLimit, s.maxLimit)

	rows := []models.ProductRow{}
	err := s.db.Table("products").
		Select(productRowColumns).
		Joins("JOIN platforms ON platforms.id = products.platform_id").
		Scopes(activePlatforms, availableProducts).
		Scopes(f.Scopes()...).
		Order("products.last_updated DESC, products.id DESC").
		Limit(f.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return nonNil(rows), nil
}

// Exists reports whether a product with the given ID exists
func (s *ProductService) Exists(productID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup product %d: %w", productID, err)
	}
	return count > 0, nil
}
