package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSnapshot stores the daily dashboard counters for historical tracking
type DashboardSnapshot struct {
	ID              uint                `json:"id" gorm:"primaryKey;autoIncrement"`
	SnapshotDate    time.Time           `json:"snapshotDate" gorm:"uniqueIndex;not null"`
	TotalPlatforms  int64               `json:"totalPlatforms"`
	TotalProducts   int64               `json:"totalProducts"`
	TodayRankings   int64               `json:"todayRankings"`
	TotalCategories int64               `json:"totalCategories"`
	AveragePrice    decimal.NullDecimal `json:"averagePrice" gorm:"type:decimal(12,2)"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// DashboardHistoryResponse is the API response for dashboard history
type DashboardHistoryResponse struct {
	Snapshots []DashboardSnapshot `json:"snapshots"`
	Period    string              `json:"period"` // "week", "month", "3month", "year", "all"
}
