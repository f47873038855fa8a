package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks trading activity.
type Metrics struct {
	OrdersPlaced    prometheus.Counter
	OrdersRejected  *prometheus.CounterVec
	OrdersCancelled prometheus.Counter
	OffersSkipped   prometheus.Counter
	EvidenceLatency *prometheus.HistogramVec
	BookCacheHits   prometheus.Counter
}

// New creates and registers all trading metrics.
func New() *Metrics {
	return &Metrics{
		OrdersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "permix_orders_placed_total",
			Help: "Orders accepted by the ledger",
		}),
		OrdersRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permix_orders_rejected_total",
			Help: "Orders rejected before or at submission, by cause",
		}, []string{"cause"}),
		OrdersCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "permix_orders_cancelled_total",
			Help: "Order cancellations accepted by the ledger",
		}),
		OffersSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "permix_book_offers_skipped_total",
			Help: "Raw offers dropped as malformed during book classification",
		}),
		EvidenceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "permix_eligibility_evidence_seconds",
			Help:    "Latency of ledger lookups feeding the eligibility gate",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		BookCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "permix_book_cache_hits_total",
			Help: "Order book reads served from the snapshot cache",
		}),
	}
}

// ObserveEvidenceLatency records one eligibility evidence fetch.
func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
}
