package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/shoprank/internal/models"
	"github.com/codyseavey/shoprank/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDashboard struct {
	stats       models.DashboardStats
	platforms   []models.Platform
	categories  []models.Category
	comparisons []models.PlatformComparison
	snapshots   []models.DashboardSnapshot
	period      string
	err         error
}

func (f *fakeDashboard) GetStats() (models.DashboardStats, error) { return f.stats, f.err }
func (f *fakeDashboard) GetPlatforms() ([]models.Platform, error) { return f.platforms, f.err }
func (f *fakeDashboard) GetCategories() ([]models.Category, error) {
	return f.categories, f.err
}
func (f *fakeDashboard) GetCategoryTree() (*models.CategoryTree, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.NewCategoryTree(f.categories), nil
}
func (f *fakeDashboard) ComparePlatforms() ([]models.PlatformComparison, error) {
	return f.comparisons, f.err
}
func (f *fakeDashboard) GetHistory(period string) ([]models.DashboardSnapshot, string, error) {
	f.period = period
	if period != "week" {
		period = "month"
	}
	return f.snapshots, period, f.err
}

type fakeRankings struct {
	top          []models.RankingRow
	platform     []models.RankingRow
	trending     []models.TrendingProduct
	lastFilter   services.RawFilter
	lastPlatform uint
	err          error
}

func (f *fakeRankings) GetTopRankings(raw services.RawFilter) ([]models.RankingRow, error) {
	f.lastFilter = raw
	return f.top, f.err
}
func (f *fakeRankings) GetPlatformRankings(platformID uint) ([]models.RankingRow, error) {
	f.lastPlatform = platformID
	return f.platform, f.err
}
func (f *fakeRankings) GetTrendingProducts() ([]models.TrendingProduct, error) {
	return f.trending, f.err
}

type fakeProducts struct {
	analysis   *models.ProductAnalysis
	history    []models.PriceHistory
	rows       []models.ProductRow
	lastFilter services.RawFilter
	err        error
}

func (f *fakeProducts) GetAnalysis(productID uint) (*models.ProductAnalysis, error) {
	return f.analysis, f.err
}
func (f *fakeProducts) GetPriceHistory(productID uint) ([]models.PriceHistory, error) {
	return f.history, f.err
}
func (f *fakeProducts) Search(raw services.RawFilter) ([]models.ProductRow, error) {
	f.lastFilter = raw
	return f.rows, f.err
}

type fakeWatchlist struct {
	added    []models.AddToWatchlistRequest
	rows     []models.WatchlistRow
	lastUser string
	err      error
}

func (f *fakeWatchlist) Add(req models.AddToWatchlistRequest) (*models.WatchlistRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = append(f.added, req)
	return &models.WatchlistRow{ID: 1, UserEmail: req.UserEmail, ProductID: uint(req.ProductID)}, nil
}
func (f *fakeWatchlist) List(userEmail string) ([]models.WatchlistRow, error) {
	f.lastUser = userEmail
	return f.rows, f.err
}

type fakeCollection struct {
	logs      []models.DataCollectionLog
	rows      []models.CollectionLogRow
	lastLimit int
	err       error
}

func (f *fakeCollection) RunOnce(ctx context.Context) ([]models.DataCollectionLog, error) {
	return f.logs, f.err
}
func (f *fakeCollection) RecentLogs(limit int) ([]models.CollectionLogRow, error) {
	f.lastLimit = limit
	return f.rows, f.err
}
