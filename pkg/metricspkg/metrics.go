// Package metricspkg exposes Prometheus collectors for ledger operations.
package metricspkg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Deposit outcomes used as the "outcome" label value.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeFailed    = "failed"
)

const namespace = "pet_ledger"

// Deposits collects deposit counters and latencies.
type Deposits struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  prometheus.Counter
}

// NewDeposits creates deposit collectors and registers them with reg.
func NewDeposits(reg prometheus.Registerer) (*Deposits, error) {
	d := &Deposits{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deposits_total",
				Help:      "Total number of deposit attempts by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "deposit_duration_seconds",
				Help:      "Deposit latencies in seconds by outcome.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deposit_retries_total",
				Help:      "Total number of deposit retries after a concurrency conflict.",
			},
		),
	}

	for _, c := range []prometheus.Collector{d.total, d.duration, d.retries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// ObserveDeposit records one finished deposit attempt.
func (d *Deposits) ObserveDeposit(outcome string, elapsed time.Duration) {
	d.total.WithLabelValues(outcome).Inc()
	d.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveRetry records a retry of the atomic deposit unit.
func (d *Deposits) ObserveRetry() {
	d.retries.Inc()
}
