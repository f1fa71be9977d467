package models

import (
	"time"
)

// Platform is a marketplace integration. Inactive platforms are excluded from
// every aggregate read.
type Platform struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"` // coupang, naver_shopping, 11st, ...
	DisplayName string    `json:"displayName" gorm:"not null"`
	BaseURL     string    `json:"baseUrl" gorm:"not null"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Sentinel filter values meaning "no filter"
const (
	AllPlatforms  = "all_platforms"
	AllCategories = "all_categories"
)
