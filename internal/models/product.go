package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one listing on one platform.
// (PlatformID, PlatformProductID) is indexed but not unique; collectors may
// record the same listing twice.
type Product struct {
	ID                uint                `json:"id" gorm:"primaryKey"`
	PlatformID        uint                `json:"platformId" gorm:"not null;index:idx_products_platform_item"`
	Platform          *Platform           `json:"-" gorm:"foreignKey:PlatformID"`
	PlatformProductID string              `json:"platformProductId" gorm:"not null;index:idx_products_platform_item"`
	Name              string              `json:"name" gorm:"not null;index"`
	Description       *string             `json:"description"`
	CategoryID        *uint               `json:"categoryId" gorm:"index"`
	Category          *Category           `json:"-" gorm:"foreignKey:CategoryID"`
	Brand             *string             `json:"brand"`
	Price             decimal.Decimal     `json:"price" gorm:"type:decimal(12,2);not null"`
	OriginalPrice     decimal.NullDecimal `json:"originalPrice" gorm:"type:decimal(12,2)"`
	DiscountRate      decimal.NullDecimal `json:"discountRate" gorm:"type:decimal(5,2)"`
	ImageURL          *string             `json:"imageUrl"`
	ProductURL        string              `json:"productUrl" gorm:"not null"`
	Rating            decimal.NullDecimal `json:"rating" gorm:"type:decimal(3,2)"`
	ReviewCount       int                 `json:"reviewCount" gorm:"default:0"`
	IsAvailable       bool                `json:"isAvailable" gorm:"not null"`
	LastUpdated       time.Time           `json:"lastUpdated" gorm:"not null;index"`
	CreatedAt         time.Time           `json:"createdAt"`
}
