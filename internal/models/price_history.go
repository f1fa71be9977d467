package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory is an append-only price snapshot for a product
type PriceHistory struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	ProductID     uint                `json:"productId" gorm:"not null;index"`
	Product       *Product            `json:"-" gorm:"foreignKey:ProductID"`
	Price         decimal.Decimal     `json:"price" gorm:"type:decimal(12,2);not null"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice" gorm:"type:decimal(12,2)"`
	DiscountRate  decimal.NullDecimal `json:"discountRate" gorm:"type:decimal(5,2)"`
	RecordedAt    time.Time           `json:"recordedAt" gorm:"not null;index"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
