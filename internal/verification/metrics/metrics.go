package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks verification session outcomes.
type Metrics struct {
	SessionsStarted  prometheus.Counter
	SessionOutcomes  *prometheus.CounterVec
	PollsTotal       prometheus.Counter
	SessionDurations prometheus.Histogram
}

// New creates and registers all verification metrics.
func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "permix_verification_sessions_started_total",
			Help: "Total verification sessions created against the verifier backend",
		}),
		SessionOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "permix_verification_session_outcomes_total",
			Help: "Terminal verification session outcomes by status",
		}, []string{"status"}),
		PollsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "permix_verification_polls_total",
			Help: "Total status polls issued to the verifier backend",
		}),
		SessionDurations: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "permix_verification_session_duration_seconds",
			Help:    "Wall time from session creation to terminal outcome",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// ObserveOutcome records one terminal outcome.
func (m *Metrics) ObserveOutcome(status string, seconds float64) {
	if m == nil {
		return
	}
	m.SessionOutcomes.WithLabelValues(status).Inc()
	m.SessionDurations.Observe(seconds)
}

// IncPoll records one poll request.
func (m *Metrics) IncPoll() {
	if m == nil {
		return
	}
	m.PollsTotal.Inc()
}

// IncStarted records one session creation.
func (m *Metrics) IncStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}
