// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reason labels for store operations.
const (
	ReasonNotConnected  = "not_connected"
	ReasonInvalidRecord = "invalid_record"
	ReasonBackend       = "backend"
)

// Metrics holds all Prometheus metrics for the state store.
type Metrics struct {
	// Store metrics
	TradesSaved       prometheus.Counter
	SaveFailures      *prometheus.CounterVec
	PortfolioReads    prometheus.Counter
	PortfolioFailures *prometheus.CounterVec

	// Health metrics
	BackendConnected prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with all metrics registered
// on a dedicated registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "trade_state"
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		TradesSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_saved_total",
			Help:      "Number of trade records persisted successfully.",
		}),
		SaveFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_save_failures_total",
			Help:      "Number of failed trade saves, by failure reason.",
		}, []string{"reason"}),
		PortfolioReads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_reads_total",
			Help:      "Number of portfolio snapshot reads served.",
		}),
		PortfolioFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_read_failures_total",
			Help:      "Number of failed portfolio reads, by failure reason.",
		}, []string{"reason"}),
		BackendConnected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_connected",
			Help:      "1 if a live backend connection exists, 0 otherwise.",
		}),
		registry: registry,
	}
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
