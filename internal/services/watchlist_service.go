package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/models"
)

const watchlistRowColumns = `watchlist.id, watchlist.user_email, watchlist.product_id,
	products.name AS product_name, products.price AS current_price,
	watchlist.target_price, watchlist.notify_price_change, watchlist.notify_rank_change,
	platforms.display_name AS platform_name, products.image_url, products.product_url,
	watchlist.created_at`

// WatchlistService manages user watchlists. The same user may watch the same
// product any number of times.
type WatchlistService struct {
	db       *gorm.DB
	products *ProductService
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(db *gorm.DB, products *ProductService) *WatchlistService {
	return &WatchlistService{db: db, products: products}
}

// Add inserts a watchlist entry and returns it joined with current product data
func (s *WatchlistService) Add(req models.AddToWatchlistRequest) (*models.WatchlistRow, error) {
	email := strings.TrimSpace(req.UserEmail)
	if email == "" {
		return nil, fmt.Errorf("userEmail is required: %w", ErrInvalidArgument)
	}
	if req.ProductID == 0 {
		return nil, fmt.Errorf("productId is required: %w", ErrInvalidArgument)
	}
	if req.TargetPrice.Valid && req.TargetPrice.Decimal.IsNegative() {
		return nil, fmt.Errorf("targetPrice must not be negative: %w", ErrInvalidArgument)
	}

	productID := uint(req.ProductID)
	exists, err := s.products.Exists(productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("product %d does not exist: %w", productID, ErrInvalidArgument)
	}

	entry := models.WatchlistEntry{
		UserEmail:         email,
		ProductID:         productID,
		NotifyPriceChange: req.NotifyPriceChange,
		NotifyRankChange:  req.NotifyRankChange,
		TargetPrice:       req.TargetPrice,
	}
	if entry.TargetPrice.Valid {
		entry.TargetPrice.Decimal = entry.TargetPrice.Decimal.Round(2)
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("insert watchlist entry: %w", err)
	}

	rows, err := s.list(s.db.Where("watchlist.id = ?", entry.ID))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("watchlist entry %d vanished after insert", entry.ID)
	}
	return &rows[0], nil
}

// List returns watchlist entries, newest first. A blank email returns every
// user's entries.
func (s *WatchlistService) List(userEmail string) ([]models.WatchlistRow, error) {
	q := s.db
	if email := strings.TrimSpace(userEmail); email != "" {
		q = q.Where("watchlist.user_email = ?", email)
	}
	return s.list(q)
}

func (s *WatchlistService) list(q *gorm.DB) ([]models.WatchlistRow, error) {
	rows := []models.WatchlistRow{}
	err := q.Table("watchlist").
		Select(watchlistRowColumns).
		Joins("JOIN products ON products.id = watchlist.product_id").
		Joins("JOIN platforms ON platforms.id = products.platform_id").
		Order("watchlist.created_at DESC, watchlist.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	for i := range rows {
		rows[i].TargetReached = models.IsTargetReached(rows[i].CurrentPrice, rows[i].TargetPrice)
	}
	return nonNil(rows), nil
}
