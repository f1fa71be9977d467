// Package metrics provides Prometheus metrics for the shoprank dashboard.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codyseavey/shoprank/internal/models"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprank_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoprank_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shoprank_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Watchlist Metrics
	WatchlistAdditionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shoprank_watchlist_additions_total",
			Help: "Total number of watchlist entries created",
		},
	)

	// Collection Metrics
	CollectionRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprank_collection_runs_total",
			Help: "Collection runs by platform and outcome",
		},
		[]string{"platform", "status"}, // status: "success", "partial", "failed"
	)

	CollectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoprank_collection_run_duration_seconds",
			Help:    "Time taken to collect one platform",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"platform"},
	)

	// Dashboard Metrics
	DashboardPlatforms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprank_dashboard_platforms",
			Help: "Number of active platforms",
		},
	)

	DashboardProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprank_dashboard_products",
			Help: "Number of available products on active platforms",
		},
	)

	DashboardTodayRankings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprank_dashboard_today_rankings",
			Help: "Number of rankings recorded today",
		},
	)

	DashboardCategories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprank_dashboard_categories",
			Help: "Number of active categories",
		},
	)

	DashboardAveragePrice = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprank_dashboard_average_price",
			Help: "Average price of available products",
		},
	)
)

// UpdateDashboardMetrics publishes the dashboard counters from a snapshot
func UpdateDashboardMetrics(s models.DashboardSnapshot) {
	DashboardPlatforms.Set(float64(s.TotalPlatforms))
	DashboardProducts.Set(float64(s.TotalProducts))
	DashboardTodayRankings.Set(float64(s.TodayRankings))
	DashboardCategories.Set(float64(s.TotalCategories))
	if s.AveragePrice.Valid {
		DashboardAveragePrice.Set(s.AveragePrice.Decimal.InexactFloat64())
	}
}
