package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for event publication.
type Metrics struct {
	Sent                  *prometheus.CounterVec
	Failed                *prometheus.CounterVec
	CircuitBreakerDropped *prometheus.CounterVec
	CircuitBreakerState   prometheus.Gauge
	SendDuration          prometheus.Histogram
}

// NewMetrics registers event metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Sent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signalist_events_sent_total",
			Help: "Total number of events accepted by the event bus",
		}, []string{"event"}),
		Failed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signalist_events_failed_total",
			Help: "Total number of events the event bus failed to accept",
		}, []string{"event"}),
		CircuitBreakerDropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signalist_events_circuit_breaker_dropped_total",
			Help: "Total number of events skipped because the bus circuit breaker was open",
		}, []string{"event"}),
		CircuitBreakerState: f.NewGauge(prometheus.GaugeOpts{
			Name: "signalist_events_circuit_breaker_state",
			Help: "Current bus circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
		SendDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalist_events_send_duration_seconds",
			Help:    "Latency of event bus sends",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) incSent(name string) {
	if m != nil {
		m.Sent.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) incFailed(name string) {
	if m != nil {
		m.Failed.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) incDropped(name string) {
	if m != nil {
		m.CircuitBreakerDropped.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) observe(seconds float64) {
	if m != nil {
		m.SendDuration.Observe(seconds)
	}
}

func (m *Metrics) setBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
