package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the verification core.
type Metrics struct {
	VerificationsTotal   *prometheus.CounterVec
	NameMatchesTotal     *prometheus.CounterVec
	AttestationFailures  prometheus.Counter
	AttestationSignTimes prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idverify_verifications_total",
			Help: "Verification results by resulting trust level",
		}, []string{"level"}),
		NameMatchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idverify_name_matches_total",
			Help: "Name match attempts by winning orientation and outcome",
		}, []string{"orientation", "outcome"}),
		AttestationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "idverify_attestation_failures_total",
			Help: "Attestation attempts that produced no signed result",
		}),
		AttestationSignTimes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idverify_attestation_sign_duration_ms",
			Help:    "Latency of attestation signing in milliseconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100},
		}),
	}
}

// ObserveVerification records a completed verification by trust level.
// Nil-safe so services can hold an optional *Metrics.
func (m *Metrics) ObserveVerification(level string) {
	if m == nil {
		return
	}
	m.VerificationsTotal.WithLabelValues(level).Inc()
}

// ObserveNameMatch records a name match attempt.
func (m *Metrics) ObserveNameMatch(orientation string, passed bool) {
	if m == nil {
		return
	}
	outcome := "fail"
	if passed {
		outcome = "pass"
	}
	m.NameMatchesTotal.WithLabelValues(orientation, outcome).Inc()
}

// ObserveAttestationFailure records an attestation attempt that aborted.
func (m *Metrics) ObserveAttestationFailure() {
	if m == nil {
		return
	}
	m.AttestationFailures.Inc()
}

// ObserveAttestationSignDuration records signing latency.
func (m *Metrics) ObserveAttestationSignDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.AttestationSignTimes.Observe(float64(d.Microseconds()) / 1000.0)
}
