package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistEntry is a product a user tracks. The email is the only identity;
// the same user may watch the same product more than once.
type WatchlistEntry struct {
	ID                uint                `json:"id" gorm:"primaryKey"`
	UserEmail         string              `json:"userEmail" gorm:"not null;index"`
	ProductID         uint                `json:"productId" gorm:"not null;index"`
	Product           *Product            `json:"-" gorm:"foreignKey:ProductID"`
	NotifyPriceChange bool                `json:"notifyPriceChange"`
	NotifyRankChange  bool                `json:"notifyRankChange"`
	TargetPrice       decimal.NullDecimal `json:"targetPrice" gorm:"type:decimal(12,2)"`
	CreatedAt         time.Time           `json:"createdAt" gorm:"index"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}

// AddToWatchlistRequest is the POST /watchlist body
type AddToWatchlistRequest struct {
	UserEmail         string              `json:"userEmail"`
	ProductID         FlexibleID          `json:"productId"`
	NotifyPriceChange bool                `json:"notifyPriceChange"`
	NotifyRankChange  bool                `json:"notifyRankChange"`
	TargetPrice       decimal.NullDecimal `json:"targetPrice"`
}

// WatchlistRow is a watchlist entry joined with current product and platform data
type WatchlistRow struct {
	ID                uint                `json:"id"`
	UserEmail         string              `json:"userEmail"`
	ProductID         uint                `json:"productId"`
	ProductName       string              `json:"productName"`
	CurrentPrice      decimal.Decimal     `json:"currentPrice"`
	TargetPrice       decimal.NullDecimal `json:"targetPrice"`
	TargetReached     bool                `json:"targetReached" gorm:"-"`
	NotifyPriceChange bool                `json:"notifyPriceChange"`
	NotifyRankChange  bool                `json:"notifyRankChange"`
	PlatformName      string              `json:"platformName"`
	ImageURL          *string             `json:"imageUrl"`
	ProductURL        string              `json:"productUrl"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// IsTargetReached reports whether the current price is at or below the target.
// Entries without a target never reach it.
func IsTargetReached(current decimal.Decimal, target decimal.NullDecimal) bool {
	if !target.Valid {
		return false
	}
	return current.LessThanOrEqual(target.Decimal)
}
