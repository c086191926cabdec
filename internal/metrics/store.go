package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront Prometheus metrics.
var (
	SearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "merchstore",
			Name:      "search_total",
			Help:      "Catalog searches by the fallback tier that produced the results",
		},
		[]string{"tier"}, // "scoped" / "widened" / "unfiltered"
	)

	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "merchstore",
			Name:      "orders_total",
			Help:      "Order placements and status changes",
		},
		[]string{"status"},
	)

	OrderValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "merchstore",
			Name:      "order_value_jmd",
			Help:      "Placed order totals in JMD",
			Buckets:   []float64{1000, 2500, 5000, 10000, 20000, 50000, 100000},
		},
	)

	CartLinesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "merchstore",
			Name:      "cart_lines_dropped_total",
			Help:      "Cart entries dropped because the product is gone or hidden",
		},
		[]string{"reason"},
	)
)

var registerStore sync.Once

// RegisterStoreMetrics registers the storefront metrics with the default
// registry. Safe to call more than once.
func RegisterStoreMetrics() {
	registerStore.Do(func() {
		prometheus.MustRegister(SearchTotal, OrdersTotal, OrderValue, CartLinesDropped)
	})
}
