package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MarketPosition is the coarse competitive position of a product
type MarketPosition string

const (
	MarketPositionStrong   MarketPosition = "strong"
	MarketPositionModerate MarketPosition = "moderate"
	MarketPositionWeak     MarketPosition = "weak"
)

// ParseMarketPosition normalizes a stored or user supplied value.
// Unknown values return false.
func ParseMarketPosition(s string) (MarketPosition, bool) {
	switch MarketPosition(strings.ToLower(strings.TrimSpace(s))) {
	case MarketPositionStrong:
		return MarketPositionStrong, true
	case MarketPositionModerate:
		return MarketPositionModerate, true
	case MarketPositionWeak:
		return MarketPositionWeak, true
	default:
		return "", false
	}
}

// ProductAnalysis is a derived scoring record. A product may have many;
// readers only ever want the one with the latest LastAnalyzed.
type ProductAnalysis struct {
	ID                  uint                `json:"id" gorm:"primaryKey"`
	ProductID           uint                `json:"productId" gorm:"not null;index"`
	Product             *Product            `json:"-" gorm:"foreignKey:ProductID"`
	TrendScore          decimal.NullDecimal `json:"trendScore" gorm:"type:decimal(5,2)"` // 0-100
	PriceStability      decimal.NullDecimal `json:"priceStability" gorm:"type:decimal(5,2)"`
	Competitiveness     decimal.NullDecimal `json:"competitiveness" gorm:"type:decimal(5,2)"`
	MarketPosition      *MarketPosition     `json:"marketPosition"`
	RecommendationScore decimal.NullDecimal `json:"recommendationScore" gorm:"type:decimal(5,2)"`
	AnalysisData        datatypes.JSON      `json:"analysisData"`
	LastAnalyzed        time.Time           `json:"lastAnalyzed" gorm:"not null;index"`
	CreatedAt           time.Time           `json:"createdAt"`
}

func (ProductAnalysis) TableName() string {
	return "product_analysis"
}
