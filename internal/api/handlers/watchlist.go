package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/shoprank/internal/metrics"
	"github.com/codyseavey/shoprank/internal/models"
)

// WatchlistStore adds and lists watchlist entries
type WatchlistStore interface {
	Add(req models.AddToWatchlistRequest) (*models.WatchlistRow, error)
	List(userEmail string) ([]models.WatchlistRow, error)
}

type WatchlistHandler struct {
	watchlist WatchlistStore
}

func NewWatchlistHandler(watchlist WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{
		watchlist: watchlist,
	}
}

// AddToWatchlist creates a watchlist entry and returns it with 201
func (h *WatchlistHandler) AddToWatchlist(c *gin.Context) {
	var req models.AddToWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	row, err := h.watchlist.Add(req)
	if err != nil {
		respondError(c, "adding to watchlist", err)
		return
	}

	metrics.WatchlistAdditionsTotal.Inc()
	c.JSON(http.StatusCreated, row)
}

// GetWatchlist returns every user's entries
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	h.list(c, "")
}

// GetUserWatchlist returns one user's entries. Blank emails are rejected.
func (h *WatchlistHandler) GetUserWatchlist(c *gin.Context) {
	userEmail := strings.TrimSpace(c.Param("userEmail"))
	if userEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user email"})
		return
	}
	h.list(c, userEmail)
}

func (h *WatchlistHandler) list(c *gin.Context, userEmail string) {
	rows, err := h.watchlist.List(userEmail)
	if err != nil {
		respondError(c, "fetching watchlist", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
