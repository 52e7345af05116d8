// Package metrics holds the service's prometheus collectors, exposed at
// /metrics via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pims_stock_adjustments_total",
		Help: "Stock adjustments processed, by outcome.",
	}, []string{"outcome"})

	PriceUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pims_price_updates_total",
		Help: "Single price updates processed, by outcome.",
	}, []string{"outcome"})

	BulkPriceUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pims_bulk_price_updates_total",
		Help: "Bulk price updates processed, by outcome.",
	}, []string{"outcome"})

	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pims_listing_cache_invalidations_total",
		Help: "Product listing cache invalidations.",
	})
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeNoop     = "noop"
)
