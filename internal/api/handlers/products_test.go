package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/codyseavey/shoprank/internal/models"
	"github.com/codyseavey/shoprank/internal/services"
)

func newTestProductRouter(f *fakeProducts) *gin.Engine {
	r := gin.New()
	h := NewProductHandler(f)
	r.GET("/products/search", h.Search)
	r.GET("/products/:id/analysis", h.GetAnalysis)
	r.GET("/products/:id/price-history", h.GetPriceHistory)
	return r
}

func TestGetAnalysis_NotFound(t *testing.T) {
	f := &fakeProducts{err: fmt.Errorf("product 9: %w", services.ErrNotFound)}
	r := newTestProductRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/9/analysis", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Analysis not found", res["error"])
}

func TestGetAnalysis_InvalidID(t *testing.T) {
	r := newTestProductRouter(&fakeProducts{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/abc/analysis", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Invalid product ID", res["error"])
}

func TestGetAnalysis(t *testing.T) {
	pos := models.MarketPositionStrong
	f := &fakeProducts{analysis: &models.ProductAnalysis{
		ID:             3,
		ProductID:      9,
		MarketPosition: &pos,
		LastAnalyzed:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}}
	r := newTestProductRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/9/analysis", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]any
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "strong", res["marketPosition"])
	assert.Equal(t, float64(9), res["productId"])
}

func TestGetPriceHistory_Empty(t *testing.T) {
	r := newTestProductRouter(&fakeProducts{history: []models.PriceHistory{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/9/price-history", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestSearch_PassesQuery(t *testing.T) {
	f := &fakeProducts{rows: []models.ProductRow{{ID: 1, Name: "Galaxy Buds"}}}
	r := newTestProductRouter(f)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/search?q=galaxy&platform=all&category=3&limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.RawFilter{Query: "galaxy", Platform: "all", Category: "3", Limit: "5"}, f.lastFilter)

	var res []models.ProductRow
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
}
