package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	OpSignUp  = "sign_up"
	OpSignIn  = "sign_in"
	OpSignOut = "sign_out"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics provides observability for the auth facade.
// Tracks operation outcomes, provider latency and registrations.
type Metrics struct {
	Operations       *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	UsersCreated     prometheus.Counter
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signalist_auth_operations_total",
			Help: "Total number of auth operations by outcome",
		}, []string{"operation", "outcome"}),
		ProviderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signalist_auth_provider_duration_seconds",
			Help:    "Duration of identity provider calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "signalist_users_created_total",
			Help: "Total number of users registered through the gateway",
		}),
	}
}

// RecordOutcome counts one finished operation.
func (m *Metrics) RecordOutcome(op string, success bool) {
	if m == nil {
		return
	}
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}

// ObserveProvider records the duration of a provider call.
// Call with time.Now() at the start of the call.
func (m *Metrics) ObserveProvider(op string, start time.Time) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncrementUsersCreated records a successful registration.
func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}
