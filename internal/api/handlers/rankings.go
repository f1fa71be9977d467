package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/shoprank/internal/models"
	"github.com/codyseavey/shoprank/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RankingReader serves today's rankings
type RankingReader interface {
	GetTopRankings(raw services.RawFilter) ([]models.RankingRow, error)
	GetPlatformRankings(platformID uint) ([]models.RankingRow, error)
	GetTrendingProducts() ([]models.TrendingProduct, error)
}

type RankingHandler struct {
	rankings RankingReader
}

func NewRankingHandler(rankings RankingReader) *RankingHandler {
	return &RankingHandler{
		rankings: rankings,
	}
}

func topRankingsFilter(c *gin.Context) services.RawFilter {
	return services.RawFilter{
		Platform: c.Query("platform"),
		Category: c.Query("category"),
	}
}

// GetTopRankings returns today's top 10 of every active platform, filtered by
// ?platform= and ?category=
func (h *RankingHandler) GetTopRankings(c *gin.Context) {
	rows, err := h.rankings.GetTopRankings(topRankingsFilter(c))
	if err != nil {
		respondError(c, "fetching top rankings", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportTopRankings returns the same rows as GetTopRankings as an xlsx workbook
func (h *RankingHandler) ExportTopRankings(c *gin.Context) {
	rows, err := h.rankings.GetTopRankings(topRankingsFilter(c))
	if err != nil {
		respondError(c, "exporting top rankings", err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteRankingsXLSX(&buf, rows); err != nil {
		respondError(c, "writing rankings workbook", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="top-rankings.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *RankingHandler) GetPlatformRankings(c *gin.Context) {
	platformID, ok := parseID(c, "platformId", "platform ID")
	if !ok {
		return
	}

	rows, err := h.rankings.GetPlatformRankings(platformID)
	if err != nil {
		respondError(c, "fetching platform rankings", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTrendingProducts returns products that rose in rank today
func (h *RankingHandler) GetTrendingProducts(c *gin.Context) {
	rows, err := h.rankings.GetTrendingProducts()
	if err != nil {
		respondError(c, "fetching trending products", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
