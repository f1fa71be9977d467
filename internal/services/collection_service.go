package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/metrics"
	"github.com/codyseavey/shoprank/internal/models"
)

// ErrCollectionInProgress is returned when RunOnce is called while a run is active
var ErrCollectionInProgress = errors.New("collection already in progress")

// DefaultCollectionLogLimit is how many logs RecentLogs returns without a limit
const DefaultCollectionLogLimit = 20

// CollectedListing is one ranked listing reported by a collector
type CollectedListing struct {
	PlatformProductID string
	Name              string
	Brand             *string
	CategoryID        *uint
	Price             decimal.Decimal
	OriginalPrice     decimal.NullDecimal
	DiscountRate      decimal.NullDecimal
	Rating            decimal.NullDecimal
	ReviewCount       int
	ImageURL          *string
	ProductURL        string
	Rank              int
	SalesVolume       *int
	ViewCount         *int
}

// CollectionResult is what a collector gathered for one platform. Partial is
// set when the collector stopped early but the listings it has are usable.
type CollectionResult struct {
	Listings []CollectedListing
	Partial  bool
	Warning  string
}

// Collector gathers the current ranked listings of a platform
type Collector interface {
	Collect(ctx context.Context, platform models.Platform) (CollectionResult, error)
}

// LogOnlyCollector is the default collector. It gathers nothing.
type LogOnlyCollector struct{}

func (LogOnlyCollector) Collect(_ context.Context, platform models.Platform) (CollectionResult, error) {
	log.Printf("Collection: no collector configured for %s, skipping", platform.Name)
	return CollectionResult{}, nil
}

// RecordStats counts what a recorder wrote
type RecordStats struct {
	ProductsUpdated int
	RankingsUpdated int
}

// RankingRecorder writes collected listings as products, price history and
// today's rankings
type RankingRecorder struct {
	db    *gorm.DB
	clock DayClock
}

// NewRankingRecorder creates a new ranking recorder
func NewRankingRecorder(db *gorm.DB, clock DayClock) *RankingRecorder {
	return &RankingRecorder{db: db, clock: clock}
}

// Record stores listings for a platform in a single transaction.
// A product already ranked today has its ranking replaced rather than duplicated.
func (r *RankingRecorder) Record(ctx context.Context, platform models.Platform, listings []CollectedListing) (RecordStats, error) {
	var stats RecordStats
	start, end := r.clock.Today()
	now := r.clock.now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range listings {
			if l.Rank < 1 {
				return fmt.Errorf("listing %s has invalid rank %d: %w", l.PlatformProductID, l.Rank, ErrInvalidArgument)
			}

			product, err := r.upsertProduct(tx, platform, l, now)
			if err != nil {
				return err
			}
			stats.ProductsUpdated++

			previous, err := r.previousRank(tx, product.ID, platform.ID, start)
			if err != nil {
				return err
			}

			ranking := models.Ranking{
				ProductID:   product.ID,
				PlatformID:  platform.ID,
				CategoryID:  l.CategoryID,
				Rank:        l.Rank,
				RankDate:    now,
				SalesVolume: l.SalesVolume,
				ViewCount:   l.ViewCount,
				RankChange:  models.ComputeRankChange(previous, l.Rank),
			}

			var existing models.Ranking
			err = tx.Where("product_id = ? AND platform_id = ? AND rank_date >= ? AND rank_date < ?",
				product.ID, platform.ID, start, end).
				Order("id DESC").
				First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&ranking).Error; err != nil {
					return fmt.Errorf("insert ranking: %w", err)
				}
			case err != nil:
				return fmt.Errorf("lookup today's ranking: %w", err)
			default:
				ranking.ID = existing.ID
				ranking.CreatedAt = existing.CreatedAt
				if err := tx.Save(&ranking).Error; err != nil {
					return fmt.Errorf("update ranking: %w", err)
				}
			}
			stats.RankingsUpdated++
		}
		return nil
	})
	if err != nil {
		return RecordStats{}, err
	}
	return stats, nil
}

func (r *RankingRecorder) upsertProduct(tx *gorm.DB, platform models.Platform, l CollectedListing, now time.Time) (*models.Product, error) {
	var product models.Product
	err := tx.Where("platform_id = ? AND platform_product_id = ?", platform.ID, l.PlatformProductID).
		Order("id ASC").
		First(&product).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, fmt.Errorf("lookup product %s: %w", l.PlatformProductID, err)
	}

	priceChanged := isNew || !product.Price.Equal(l.Price)

	product.PlatformID = platform.ID
	product.PlatformProductID = l.PlatformProductID
	product.Name = l.Name
	product.Brand = l.Brand
	product.CategoryID = l.CategoryID
	product.Price = l.Price
	product.OriginalPrice = l.OriginalPrice
	product.DiscountRate = l.DiscountRate
	product.Rating = l.Rating
	product.ReviewCount = l.ReviewCount
	product.ImageURL = l.ImageURL
	product.ProductURL = l.ProductURL
	product.IsAvailable = true
	product.LastUpdated = now

	if err := tx.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("save product %s: %w", l.PlatformProductID, err)
	}

	if priceChanged {
		history := models.PriceHistory{
			ProductID:     product.ID,
			Price:         l.Price,
			OriginalPrice: l.OriginalPrice,
			DiscountRate:  l.DiscountRate,
			RecordedAt:    now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return nil, fmt.Errorf("record price history: %w", err)
		}
	}
	return &product, nil
}

// previousRank returns the best rank the product held on the platform the day
// before dayStart, or nil when it was not ranked
func (r *RankingRecorder) previousRank(tx *gorm.DB, productID, platformID uint, dayStart time.Time) (*int, error) {
	var prev models.Ranking
	err := tx.Where("product_id = ? AND platform_id = ? AND rank_date >= ? AND rank_date < ?",
		productID, platformID, dayStart.AddDate(0, 0, -1), dayStart).
		Order("rankings.rank ASC").
		First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup previous rank: %w", err)
	}
	return &prev.Rank, nil
}

// CollectionService runs collectors against every active platform and audits
// each run in data_collection_logs
type CollectionService struct {
	db        *gorm.DB
	collector Collector
	recorder  *RankingRecorder
	clock     DayClock
	mu        sync.Mutex
}

// NewCollectionService creates a new collection service. A nil collector
// falls back to LogOnlyCollector.
func NewCollectionService(db *gorm.DB, collector Collector, clock DayClock) *CollectionService {
	if collector == nil {
		collector = LogOnlyCollector{}
	}
	return &CollectionService{
		db:        db,
		collector: collector,
		recorder:  NewRankingRecorder(db, clock),
		clock:     clock,
	}
}

// RunOnce collects every active platform once and returns the written logs
func (s *CollectionService) RunOnce(ctx context.Context) ([]models.DataCollectionLog, error) {
	if !s.mu.TryLock() {
		return nil, ErrCollectionInProgress
	}
	defer s.mu.Unlock()

	var platforms []models.Platform
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&platforms).Error; err != nil {
		return nil, fmt.Errorf("list active platforms: %w", err)
	}

	logs := make([]models.DataCollectionLog, 0, len(platforms))
	for _, p := range platforms {
		if err := ctx.Err(); err != nil {
			return logs, err
		}
		entry := s.runPlatform(ctx, p)
		if err := s.db.Create(&entry).Error; err != nil {
			log.Printf("Collection: failed to write log for %s: %v", p.Name, err)
			continue
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

func (s *CollectionService) runPlatform(ctx context.Context, platform models.Platform) models.DataCollectionLog {
	started := s.clock.now()
	entry := models.DataCollectionLog{
		PlatformID: platform.ID,
		StartedAt:  started,
	}

	finish := func(status models.CollectionStatus, message string) models.DataCollectionLog {
		completed := s.clock.now()
		entry.Status = status
		entry.CompletedAt = &completed
		if message != "" {
			entry.ErrorMessage = &message
		}
		metrics.CollectionRunsTotal.WithLabelValues(platform.Name, string(status)).Inc()
		metrics.CollectionDuration.WithLabelValues(platform.Name).Observe(completed.Sub(started).Seconds())
		log.Printf("Collection: %s finished with %s (%d products, %d rankings)",
			platform.Name, status, entry.ProductsUpdated, entry.RankingsUpdated)
		return entry
	}

	result, err := s.collector.Collect(ctx, platform)
	if err != nil {
		return finish(models.CollectionFailed, err.Error())
	}

	stats, err := s.recorder.Record(ctx, platform, result.Listings)
	if err != nil {
		return finish(models.CollectionFailed, err.Error())
	}
	entry.ProductsUpdated = stats.ProductsUpdated
	entry.RankingsUpdated = stats.RankingsUpdated

	if result.Partial {
		return finish(models.CollectionPartial, result.Warning)
	}
	return finish(models.CollectionSuccess, "")
}

// RecentLogs returns the newest collection logs with their platform display name
func (s *CollectionService) RecentLogs(limit int) ([]models.CollectionLogRow, error) {
	if limit <= 0 {
		limit = DefaultCollectionLogLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	rows := []models.CollectionLogRow{}
	err := s.db.Table("data_collection_logs").
		Select("data_collection_logs.*, platforms.display_name AS platform_name").
		Joins("JOIN platforms ON platforms.id = data_collection_logs.platform_id").
		Order("data_collection_logs.started_at DESC, data_collection_logs.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list collection logs: %w", err)
	}
	return nonNil(rows), nil
}
