package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/shoprank/internal/models"
)

// DashboardReader serves the dashboard lookups
type DashboardReader interface {
	GetStats() (models.DashboardStats, error)
	GetPlatforms() ([]models.Platform, error)
	GetCategories() ([]models.Category, error)
	GetCategoryTree() (*models.CategoryTree, error)
	ComparePlatforms() ([]models.PlatformComparison, error)
}

// HistoryReader serves recorded dashboard snapshots
type HistoryReader interface {
	GetHistory(period string) ([]models.DashboardSnapshot, string, error)
}

type DashboardHandler struct {
	dashboard DashboardReader
	history   HistoryReader
}

func NewDashboardHandler(dashboard DashboardReader, history HistoryReader) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		history:   history,
	}
}

// GetStats returns the headline counters
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboard.GetStats()
	if err != nil {
		respondError(c, "fetching dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetPlatforms(c *gin.Context) {
	platforms, err := h.dashboard.GetPlatforms()
	if err != nil {
		respondError(c, "fetching platforms", err)
		return
	}
	c.JSON(http.StatusOK, platforms)
}

func (h *DashboardHandler) GetCategories(c *gin.Context) {
	categories, err := h.dashboard.GetCategories()
	if err != nil {
		respondError(c, "fetching categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryTree returns active categories nested under their parents
func (h *DashboardHandler) GetCategoryTree(c *gin.Context) {
	tree, err := h.dashboard.GetCategoryTree()
	if err != nil {
		respondError(c, "fetching category tree", err)
		return
	}
	c.JSON(http.StatusOK, tree.Nested())
}

// ComparePlatforms returns per-platform product count, average price and
// today's rank 1 product
func (h *DashboardHandler) ComparePlatforms(c *gin.Context) {
	rows, err := h.dashboard.ComparePlatforms()
	if err != nil {
		respondError(c, "fetching platform comparison", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetCategoryPath returns the chain of categories from the root down to :id
func (h *DashboardHandler) GetCategoryPath(c *gin.Context) {
	h.categoryLookup(c, "fetching category path", (*models.CategoryTree).Path)
}

// GetCategoryChildren returns the direct subcategories of :id
func (h *DashboardHandler) GetCategoryChildren(c *gin.Context) {
	h.categoryLookup(c, "fetching category children", (*models.CategoryTree).Children)
}

func (h *DashboardHandler) categoryLookup(c *gin.Context, op string, lookup func(*models.CategoryTree, uint) []models.Category) {
	categoryID, ok := parseID(c, "id", "category ID")
	if !ok {
		return
	}
	tree, err := h.dashboard.GetCategoryTree()
	if err != nil {
		respondError(c, op, err)
		return
	}
	categories := lookup(tree, categoryID)
	if categories == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetHistory returns daily dashboard snapshots for ?period=week|month|3month|year|all
func (h *DashboardHandler) GetHistory(c *gin.Context) {
	snapshots, period, err := h.history.GetHistory(c.DefaultQuery("period", "month"))
	if err != nil {
		respondError(c, "fetching dashboard history", err)
		return
	}
	c.JSON(http.StatusOK, models.DashboardHistoryResponse{
		Snapshots: snapshots,
		Period:    period,
	})
}
