package models

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is the headline counter block of the dashboard
type DashboardStats struct {
	TotalPlatforms  int64 `json:"totalPlatforms"`
	TotalProducts   int64 `json:"totalProducts"`
	TodayRankings   int64 `json:"todayRankings"`
	TotalCategories int64 `json:"totalCategories"`
}

// RankingRow is a ranking joined with its product and platform
type RankingRow struct {
	Rank          int                 `json:"rank"`
	RankChange    *int                `json:"rankChange"`
	SalesVolume   *int                `json:"salesVolume"`
	ProductID     uint                `json:"productId"`
	ProductName   string              `json:"productName"`
	Brand         *string             `json:"brand"`
	PlatformName  string              `json:"platformName"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	DiscountRate  decimal.NullDecimal `json:"discountRate"`
	ImageURL      *string             `json:"imageUrl"`
	ProductURL    string              `json:"productUrl"`
	Rating        decimal.NullDecimal `json:"rating"`
	ReviewCount   int                 `json:"reviewCount"`
}

// ProductRow is a product joined with its platform display name
type ProductRow struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Brand         *string             `json:"brand"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	DiscountRate  decimal.NullDecimal `json:"discountRate"`
	ImageURL      *string             `json:"imageUrl"`
	ProductURL    string              `json:"productUrl"`
	Rating        decimal.NullDecimal `json:"rating"`
	ReviewCount   int                 `json:"reviewCount"`
	PlatformName  string              `json:"platformName"`
}

// TrendingProduct is a product that rose in today's ranking
type TrendingProduct struct {
	ProductRow
	Rank       int `json:"rank"`
	RankChange int `json:"rankChange"`
}

// PlatformComparison aggregates one active platform
type PlatformComparison struct {
	PlatformID     uint                `json:"platformId"`
	PlatformName   string              `json:"platformName"`
	TotalProducts  int64               `json:"totalProducts"`
	AvgPrice       decimal.NullDecimal `json:"avgPrice"`
	TopRankProduct *string             `json:"topRankProduct"`
}
