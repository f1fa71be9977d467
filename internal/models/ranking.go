package models

import (
	"time"
)

// Ranking is a product's position within a platform (optionally a category)
// on a given day. Rank is 1-based, lower is better.
//
// RankChange is the signed delta against the previous day's rank:
// negative means the product rose, positive means it fell.
type Ranking struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"productId" gorm:"not null;index"`
	Product     *Product  `json:"-" gorm:"foreignKey:ProductID"`
	PlatformID  uint      `json:"platformId" gorm:"not null;index:idx_rankings_platform_date"`
	Platform    *Platform `json:"-" gorm:"foreignKey:PlatformID"`
	CategoryID  *uint     `json:"categoryId" gorm:"index"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID"`
	Rank        int       `json:"rank" gorm:"column:rank;not null"`
	RankDate    time.Time `json:"rankDate" gorm:"not null;index;index:idx_rankings_platform_date"`
	SalesVolume *int      `json:"salesVolume"`
	ViewCount   *int      `json:"viewCount"`
	RankChange  *int      `json:"rankChange"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ComputeRankChange returns current - previous, so a product moving from
// rank 7 to rank 2 yields -5. A nil previous rank yields nil.
func ComputeRankChange(previous *int, current int) *int {
	if previous == nil {
		return nil
	}
	change := current - *previous
	return &change
}
