package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// FundsMetrics tracks request submissions, adjudications and the money they move.
type FundsMetrics struct {
	submissions        *prometheus.CounterVec
	settlements        *prometheus.CounterVec
	settlementDuration *prometheus.HistogramVec
	settledAmount      *prometheus.CounterVec
	pendingBacklog     *prometheus.GaugeVec
	catalogCache       *prometheus.CounterVec
}

func NewFundsMetrics() *FundsMetrics {
	return &FundsMetrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funds_backend_submissions_total",
				Help: "Total number of funds request submissions",
			},
			[]string{"kind", "outcome"},
		),

		settlements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funds_backend_settlements_total",
				Help: "Total number of adjudication attempts",
			},
			[]string{"kind", "action", "outcome"},
		),

		settlementDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funds_backend_settlement_duration_seconds",
				Help:    "Duration of settlement transactions in seconds, lock wait included",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"kind", "outcome"},
		),

		settledAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funds_backend_settled_amount_total",
				Help: "Sum of amounts moved on user balances by approvals",
			},
			[]string{"kind"},
		),

		pendingBacklog: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "funds_backend_pending_requests",
				Help: "Number of requests waiting for an admin decision",
			},
			[]string{"kind"},
		),

		catalogCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funds_backend_catalog_cache_operations_total",
				Help: "Total number of platform catalog cache lookups",
			},
			[]string{"list", "operation"}, // operation: hit, miss
		),
	}
}

func (m *FundsMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.submissions,
		m.settlements,
		m.settlementDuration,
		m.settledAmount,
		m.pendingBacklog,
		m.catalogCache,
	)
}

func (m *FundsMetrics) RecordSubmission(kind, outcome string) {
	m.submissions.WithLabelValues(kind, outcome).Inc()
}

// RecordSettlement counts one adjudication attempt. amount is only added to
// the settled total for successful approvals.
func (m *FundsMetrics) RecordSettlement(kind, action, outcome string, amount decimal.Decimal, seconds float64) {
	m.settlements.WithLabelValues(kind, action, outcome).Inc()
	m.settlementDuration.WithLabelValues(kind, outcome).Observe(seconds)
	if outcome == OutcomeSuccess && action == "approve" && amount.IsPositive() {
		m.settledAmount.WithLabelValues(kind).Add(amount.InexactFloat64())
	}
}

func (m *FundsMetrics) SetPendingBacklog(kind string, count int64) {
	m.pendingBacklog.WithLabelValues(kind).Set(float64(count))
}

func (m *FundsMetrics) RecordCatalogCache(list string, hit bool) {
	operation := "miss"
	if hit {
		operation = "hit"
	}
	m.catalogCache.WithLabelValues(list, operation).Inc()
}

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
