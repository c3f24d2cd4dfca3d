package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "dragboard"
	metricsSubsystem = "sync"
)

// Metrics tracks reconciler statistics
type Metrics struct {
	requests  *prometheus.CounterVec
	retries   *prometheus.CounterVec
	rollbacks *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	inFlight  prometheus.Gauge
}

// NewMetrics creates the reconciler collectors and registers them with reg.
// A nil reg creates working collectors that are not exported anywhere.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: op, outcome (confirmed, failed, superseded, skipped)
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Persistence requests by operation and outcome",
		}, []string{"op", "outcome"}),

		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "retries_total",
			Help:      "Persistence attempts beyond the first",
		}, []string{"op"}),

		rollbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "rollbacks_total",
			Help:      "Optimistic mutations reverted after a failed request",
		}, []string{"op"}),

		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time from first attempt to resolution, including retries",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"op"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "in_flight",
			Help:      "Entities with an unconfirmed mutation",
		}),
	}
}

func (m *Metrics) observeResult(op string, outcome Outcome) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome.String()).Inc()
}

func (m *Metrics) observeRetry(op string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op).Inc()
}

func (m *Metrics) observeRollback(op string) {
	if m == nil {
		return
	}
	m.rollbacks.WithLabelValues(op).Inc()
}

func (m *Metrics) observeLatency(op string, seconds float64) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) setInFlight(n int) {
	if m == nil {
		return
	}
	m.inFlight.Set(float64(n))
}
