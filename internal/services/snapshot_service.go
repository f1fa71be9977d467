package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/codyseavey/shoprank/internal/metrics"
	"github.com/codyseavey/shoprank/internal/models"
)

// SnapshotService records the dashboard counters once a day for history charts
type SnapshotService struct {
	db            *gorm.DB
	dashboard     *DashboardService
	clock         DayClock
	mu            sync.Mutex
	snapshotHour  int // Hour of day to take snapshot (0-23)
	checkInterval time.Duration
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(db *gorm.DB, dashboard *DashboardService, clock DayClock, snapshotHour int, checkInterval time.Duration) *SnapshotService {
	if checkInterval <= 0 {
		checkInterval = 15 * time.Minute
	}
	return &SnapshotService{
		db:            db,
		dashboard:     dashboard,
		clock:         clock,
		snapshotHour:  snapshotHour,
		checkInterval: checkInterval,
	}
}

// Start begins the background snapshot worker
func (s *SnapshotService) Start(ctx context.Context) {
	log.Println("Snapshot service started: will record daily dashboard counters")

	// Check if we need to take a snapshot for today on startup
	s.checkAndSnapshot()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot service stopping...")
			return
		case <-ticker.C:
			s.checkAndSnapshot()
		}
	}
}

func (s *SnapshotService) checkAndSnapshot() {
	now := s.clock.now()

	has, err := s.hasSnapshotForDate(now)
	if err != nil {
		log.Printf("Snapshot service: failed to check today's snapshot: %v", err)
		return
	}
	if has {
		return
	}

	// Only take automatic snapshots at or after the configured hour
	if now.Hour() >= s.snapshotHour {
		if _, err := s.TakeSnapshot(); err != nil {
			log.Printf("Snapshot service: failed to take snapshot: %v", err)
		}
	}
}

func (s *SnapshotService) hasSnapshotForDate(date time.Time) (bool, error) {
	startOfDay := s.clock.StartOfDay(date)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	var count int64
	err := s.db.Model(&models.DashboardSnapshot{}).
		Where("snapshot_date >= ? AND snapshot_date < ?", startOfDay, endOfDay).
		Count(&count).Error
	return count > 0, err
}

// TakeSnapshot records the current dashboard counters for today, replacing any
// snapshot already stored for the day
func (s *SnapshotService) TakeSnapshot() (*models.DashboardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	snapshotDate := s.clock.StartOfDay(now)

	stats, err := s.dashboard.GetStats()
	if err != nil {
		return nil, err
	}
	avg, err := s.dashboard.AveragePrice()
	if err != nil {
		return nil, err
	}

	snapshot := models.DashboardSnapshot{
		SnapshotDate: snapshotDate,
		CreatedAt:    now,
	}

	// Upsert on the day. A map keeps zero counters in the update.
	result := s.db.Where("snapshot_date >= ? AND snapshot_date < ?", snapshotDate, snapshotDate.AddDate(0, 0, 1)).
		Assign(map[string]interface{}{
			"total_platforms":  stats.TotalPlatforms,
			"total_products":   stats.TotalProducts,
			"today_rankings":   stats.TodayRankings,
			"total_categories": stats.TotalCategories,
			"average_price":    avg,
		}).
		FirstOrCreate(&snapshot)
	if result.Error != nil {
		return nil, fmt.Errorf("save snapshot: %w", result.Error)
	}

	metrics.UpdateDashboardMetrics(snapshot)
	log.Printf("Snapshot service: recorded dashboard snapshot for %s (products: %d, rankings today: %d)",
		snapshotDate.Format("2006-01-02"), stats.TotalProducts, stats.TodayRankings)

	return &snapshot, nil
}

// GetHistory retrieves snapshots for a period: week, month, 3month, year or
// all. Anything else means month.
func (s *SnapshotService) GetHistory(period string) ([]models.DashboardSnapshot, string, error) {
	snapshots := []models.DashboardSnapshot{}

	now := s.clock.now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "3month":
		startDate = now.AddDate(0, -3, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	case "all":
		startDate = time.Time{} // No filter
	default:
		period = "month"
		startDate = now.AddDate(0, -1, 0)
	}

	query := s.db.Order("snapshot_date ASC")
	if !startDate.IsZero() {
		query = query.Where("snapshot_date >= ?", s.clock.StartOfDay(startDate))
	}

	if err := query.Find(&snapshots).Error; err != nil {
		return nil, period, fmt.Errorf("snapshot history: %w", err)
	}

	return snapshots, period, nil
}
