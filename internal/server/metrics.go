package server

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cdmlens/cdmlens/pkg/observability"
)

// Prometheus metrics. promauto registers them on the default registry at
// package init.
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdmlens_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cdmlens_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// From cache hits (sub-ms) to full SVG renders (seconds).
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	graphViewSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cdmlens_graph_view_size",
			Help: "Nodes and edges in the most recently projected graph view",
		},
		[]string{"kind"},
	)

	cacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdmlens_cache_ops_total",
			Help: "Pipeline cache operations by key type and outcome",
		},
		[]string{"key_type", "op"},
	)
)

// CacheMetrics exports pipeline cache activity as Prometheus counters. It
// implements observability.CacheHooks; register it at startup with
// observability.SetCacheHooks.
type CacheMetrics struct{}

var _ observability.CacheHooks = CacheMetrics{}

func (CacheMetrics) OnCacheHit(_ context.Context, keyType string) {
	cacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (CacheMetrics) OnCacheMiss(_ context.Context, keyType string) {
	cacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (CacheMetrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	cacheOpsTotal.WithLabelValues(keyType, "set").Inc()
}
