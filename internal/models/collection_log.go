package models

import (
	"strings"
	"time"
)

// CollectionStatus is the outcome of one ingestion run
type CollectionStatus string

const (
	CollectionSuccess CollectionStatus = "success"
	CollectionFailed  CollectionStatus = "failed"
	CollectionPartial CollectionStatus = "partial"
)

// NormalizeCollectionStatus maps legacy or mixed-case values onto the enum.
// Anything unrecognized is treated as failed.
func NormalizeCollectionStatus(s string) CollectionStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "ok", "completed":
		return CollectionSuccess
	case "partial":
		return CollectionPartial
	default:
		return CollectionFailed
	}
}

// DataCollectionLog audits one ingestion run for one platform
type DataCollectionLog struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	PlatformID      uint             `json:"platformId" gorm:"not null;index"`
	Platform        *Platform        `json:"-" gorm:"foreignKey:PlatformID"`
	Status          CollectionStatus `json:"status" gorm:"not null"`
	ProductsUpdated int              `json:"productsUpdated" gorm:"default:0"`
	RankingsUpdated int              `json:"rankingsUpdated" gorm:"default:0"`
	ErrorMessage    *string          `json:"errorMessage"`
	StartedAt       time.Time        `json:"startedAt" gorm:"not null"`
	CompletedAt     *time.Time       `json:"completedAt"`
	CreatedAt       time.Time        `json:"createdAt" gorm:"index"`
}

// CollectionLogRow is a collection log joined with its platform display name
type CollectionLogRow struct {
	DataCollectionLog
	PlatformName string `json:"platformName"`
}
