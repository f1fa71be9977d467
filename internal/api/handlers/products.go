package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/shoprank/internal/models"
	"github.com/codyseavey/shoprank/internal/services"
)

// ProductReader serves product lookups
type ProductReader interface {
	GetAnalysis(productID uint) (*models.ProductAnalysis, error)
	GetPriceHistory(productID uint) ([]models.PriceHistory, error)
	Search(raw services.RawFilter) ([]models.ProductRow, error)
}

type ProductHandler struct {
	products ProductReader
}

func NewProductHandler(products ProductReader) *ProductHandler {
	return &ProductHandler{
		products: products,
	}
}

// GetAnalysis returns the latest analysis of a product
func (h *ProductHandler) GetAnalysis(c *gin.Context) {
	productID, ok := parseID(c, "id", "product ID")
	if !ok {
		return
	}

	analysis, err := h.products.GetAnalysis(productID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	if err != nil {
		respondError(c, "fetching product analysis", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GetPriceHistory returns the 30 most recent prices, newest first
func (h *ProductHandler) GetPriceHistory(c *gin.Context) {
	productID, ok := parseID(c, "id", "product ID")
	if !ok {
		return
	}

	history, err := h.products.GetPriceHistory(productID)
	if err != nil {
		respondError(c, "fetching price history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Search handles ?q=&platform=&category=&limit=
func (h *ProductHandler) Search(c *gin.Context) {
	rows, err := h.products.Search(services.RawFilter{
		Query:    c.Query("q"),
		Platform: c.Query("platform"),
		Category: c.Query("category"),
		Limit:    c.Query("limit"),
	})
	if err != nil {
		respondError(c, "searching products", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
