package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSolved   = "solved"
	outcomeNoPath   = "no_convergence"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"

	metricsNamespace = "qmaze"
)

type Metrics struct {
	solves   *prometheus.CounterVec
	duration prometheus.Histogram
	cycles   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "solves_total",
			Help:      "Solve requests by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent training and extracting a path.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		cycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "training_cycles_total",
			Help:      "Training sweeps run across all requests.",
		}),
	}
}

func (m *Metrics) observe(outcome string, elapsed time.Duration, cycles int) {
	m.solves.WithLabelValues(outcome).Inc()
	if outcome == outcomeRejected {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.cycles.Add(float64(cycles))
}
