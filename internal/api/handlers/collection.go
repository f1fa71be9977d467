package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/shoprank/internal/models"
	"github.com/codyseavey/shoprank/internal/services"
)

// CollectionRunner exposes the collection audit log and manual runs
type CollectionRunner interface {
	RunOnce(ctx context.Context) ([]models.DataCollectionLog, error)
	RecentLogs(limit int) ([]models.CollectionLogRow, error)
}

type CollectionHandler struct {
	collection CollectionRunner
}

func NewCollectionHandler(collection CollectionRunner) *CollectionHandler {
	return &CollectionHandler{
		collection: collection,
	}
}

// GetLogs returns the newest collection logs, ?limit= defaults to 20
func (h *CollectionHandler) GetLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, err := h.collection.RecentLogs(limit)
	if err != nil {
		respondError(c, "fetching collection logs", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// RunCollection runs every active platform's collector once
func (h *CollectionHandler) RunCollection(c *gin.Context) {
	logs, err := h.collection.RunOnce(c.Request.Context())
	if errors.Is(err, services.ErrCollectionInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "Collection already in progress"})
		return
	}
	if err != nil {
		respondError(c, "running collection", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
